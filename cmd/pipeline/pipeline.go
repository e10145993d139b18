package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/dpavlovic/climate-watch/internal/config"
	"github.com/dpavlovic/climate-watch/internal/integration"
	"github.com/dpavlovic/climate-watch/internal/repository"
	"github.com/dpavlovic/climate-watch/internal/usecases"
	"github.com/dpavlovic/climate-watch/internal/visualizer"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Climate Watch Pipeline...")

	cfg := config.Load()

	// Initialize repository
	repo, err := repository.NewSQLiteClimateRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Initialize fetchers
	fetcher := integration.NewClimateFetcher(cfg.ClimateDataURL)
	scraper := integration.NewNewsScraper(cfg.NewsURL)

	// Initialize chart renderer
	renderer := visualizer.NewRenderer(repo, filepath.Join(cfg.OutputDir, "temperature_over_time.png"))

	// Run the full pass once and exit
	pipeline := usecases.NewPipeline(repo, fetcher, scraper, renderer, cfg.OutputDir)
	pipeline.RunOnce()
}
