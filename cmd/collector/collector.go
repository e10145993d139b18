package main

import (
	"log"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/dpavlovic/climate-watch/internal/config"
	"github.com/dpavlovic/climate-watch/internal/integration"
	"github.com/dpavlovic/climate-watch/internal/repository"
	"github.com/dpavlovic/climate-watch/internal/usecases"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting Climate Watch Collector...")

	cfg := config.Load()

	// Initialize repository
	repo, err := repository.NewSQLiteClimateRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize repository: %v", err)
	}

	// Initialize fetchers
	fetcher := integration.NewClimateFetcher(cfg.ClimateDataURL)
	scraper := integration.NewNewsScraper(cfg.NewsURL)

	// Collection never renders, so no chart renderer is wired here
	pipeline := usecases.NewPipeline(repo, fetcher, scraper, nil, cfg.OutputDir)

	// Run collection immediately on startup
	if err := pipeline.Collect(); err != nil {
		log.Printf("Initial collection failed: %v", err)
	}

	// Set up cron scheduler to run every hour
	c := cron.New()
	_, err = c.AddFunc("0 * * * *", func() {
		if err := pipeline.Collect(); err != nil {
			log.Printf("Scheduled collection failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron job: %v", err)
	}

	log.Println("Collector has been scheduled to run hourly")
	c.Start()

	// Keep the program running
	select {}
}
