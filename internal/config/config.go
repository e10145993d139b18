// Package config loads runtime configuration for the collection pipeline and bot.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// AppConfig holds the endpoints, paths and credentials used by the commands.
type AppConfig struct {
	// ClimateDataURL is the JSON endpoint for climate payloads.
	ClimateDataURL string
	// NewsURL is the HTML page scraped for climate news articles.
	NewsURL string
	// DBPath is the SQLite database file; empty means the repository default.
	DBPath string
	// OutputDir receives the JSON snapshots and the rendered chart.
	OutputDir string

	TelegramBotToken string
	OpenAIAPIKey     string
}

// Load reads configuration from an optional .env file and the environment.
// Defaults match the original deployment literals.
func Load() *AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	return &AppConfig{
		ClimateDataURL:   getenvDefault("CLIMATE_DATA_URL", "https://jsonplaceholder.typicode.com/todos/1"),
		NewsURL:          getenvDefault("NEWS_URL", "https://example.com/climate-news"),
		DBPath:           os.Getenv("DB_PATH"),
		OutputDir:        getenvDefault("OUTPUT_DIR", "."),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
