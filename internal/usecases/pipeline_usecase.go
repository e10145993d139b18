// Package usecases contains the application's business logic
package usecases

import (
	"log"
	"path/filepath"

	"github.com/dpavlovic/climate-watch/internal/entities"
	"github.com/dpavlovic/climate-watch/internal/integration"
	"github.com/dpavlovic/climate-watch/internal/repository"
	"github.com/dpavlovic/climate-watch/internal/serializer"
	"github.com/dpavlovic/climate-watch/internal/visualizer"
)

// File names for the JSON snapshots written during a pipeline run.
const (
	ClimateDataFile       = "climate_data.json"
	NewsArticlesFile      = "news_articles.json"
	ClimateSerializedFile = "climate_serialized.json"
)

// articleDate is stamped on every article inserted during a run.
const articleDate = "2024-11-07"

// exampleReading is inserted on every successful climate fetch until the
// placeholder endpoint is replaced with a real climate API that carries
// temperature and humidity fields.
var exampleReading = entities.ClimateReading{
	Temperature: 25.3,
	Humidity:    60,
	Date:        "2024-11-07",
	Location:    "San Francisco",
}

// Pipeline sequences fetch, persistence and visualization
type Pipeline struct {
	repo      repository.ClimateRepository
	fetcher   *integration.ClimateFetcher
	scraper   *integration.NewsScraper
	renderer  *visualizer.Renderer
	outputDir string
}

// NewPipeline creates a pipeline writing its JSON snapshots into outputDir.
// The renderer is only used by RunOnce; collect-only callers may pass nil.
func NewPipeline(
	repo repository.ClimateRepository,
	fetcher *integration.ClimateFetcher,
	scraper *integration.NewsScraper,
	renderer *visualizer.Renderer,
	outputDir string,
) *Pipeline {
	if outputDir == "" {
		outputDir = "."
	}
	return &Pipeline{
		repo:      repo,
		fetcher:   fetcher,
		scraper:   scraper,
		renderer:  renderer,
		outputDir: outputDir,
	}
}

// RunOnce performs the full pass: schema setup, climate fetch, JSON
// snapshots, database inserts and chart rendering. Every step logs its own
// failure and the remaining steps still run; the errors returned by the
// individual components are deliberately not propagated here.
func (p *Pipeline) RunOnce() {
	log.Println("Starting pipeline run...")

	_ = p.repo.InitSchema()

	climateData, _ := p.fetcher.FetchClimateData()
	if climateData != nil {
		_ = serializer.WriteJSON(climateData, filepath.Join(p.outputDir, ClimateDataFile))

		// Example reading; see exampleReading above
		_ = p.repo.InsertClimateReading(exampleReading)
	}

	articles, err := p.scraper.FetchNewsArticles()
	if err != nil {
		articles = []entities.NewsArticle{}
	}
	for _, article := range articles {
		article.Date = articleDate
		_ = p.repo.InsertNewsArticle(article)
	}
	_ = serializer.WriteJSON(articles, filepath.Join(p.outputDir, NewsArticlesFile))

	_ = serializer.WriteJSON(climateData, filepath.Join(p.outputDir, ClimateSerializedFile))

	if p.renderer != nil {
		if err := p.renderer.RenderTemperatureSeries(); err != nil {
			log.Printf("Warning: chart rendering failed: %v", err)
		}
	}

	log.Println("Pipeline run complete")
}

// Collect runs only the fetch-and-store portion of the pipeline, for
// scheduled runs that keep the database current without touching the
// snapshot files or the chart.
func (p *Pipeline) Collect() error {
	log.Println("Starting collection pass...")

	if err := p.repo.InitSchema(); err != nil {
		return err
	}

	climateData, _ := p.fetcher.FetchClimateData()
	if climateData != nil {
		_ = p.repo.InsertClimateReading(exampleReading)
	}

	articles, _ := p.scraper.FetchNewsArticles()
	for _, article := range articles {
		article.Date = articleDate
		_ = p.repo.InsertNewsArticle(article)
	}

	log.Printf("Collection pass stored %d articles", len(articles))
	return nil
}
