package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/dpavlovic/climate-watch/internal/api"
	"github.com/dpavlovic/climate-watch/internal/config"
	"github.com/dpavlovic/climate-watch/internal/integration/openai"
	"github.com/dpavlovic/climate-watch/internal/repository"
	"github.com/dpavlovic/climate-watch/internal/visualizer"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Climate Watch Bot...")

	cfg := config.Load()

	// Initialize repository
	repo, err := repository.NewSQLiteClimateRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Chart renderer for the /chart command
	renderer := visualizer.NewRenderer(repo, filepath.Join(cfg.OutputDir, "temperature_over_time.png"))

	// The digest feature is optional; the bot runs without it
	var digest openai.DigestService
	if cfg.OpenAIAPIKey != "" {
		digest, err = openai.NewDigestService()
		if err != nil {
			log.Printf("Warning: digest feature disabled: %v", err)
		}
	} else {
		log.Println("OPENAI_API_KEY not set, /digest command disabled")
	}

	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	// Initialize Telegram bot
	telegramBot, err := api.NewTelegramBot(cfg.TelegramBotToken, repo, renderer, digest)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	// Start the bot
	telegramBot.Start()
}
