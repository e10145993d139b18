// Package visualizer renders stored climate readings as charts.
package visualizer

import (
	"fmt"
	"log"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dpavlovic/climate-watch/internal/repository"
)

// Renderer draws the temperature time series from the repository
type Renderer struct {
	repo       repository.ClimateRepository
	outputPath string
}

// NewRenderer creates a renderer that writes its chart to outputPath
func NewRenderer(repo repository.ClimateRepository, outputPath string) *Renderer {
	if outputPath == "" {
		outputPath = "temperature_over_time.png"
	}
	return &Renderer{repo: repo, outputPath: outputPath}
}

// OutputPath returns the path the chart is written to
func (r *Renderer) OutputPath() string {
	return r.outputPath
}

// RenderTemperatureSeries queries all stored readings and saves a line
// chart of temperature against date labels. With nothing stored it logs a
// message and returns without rendering.
func (r *Renderer) RenderTemperatureSeries() error {
	points, err := r.repo.QueryAllReadings()
	if err != nil {
		// Already logged at the repository boundary; treat as no data
		points = nil
	}
	if len(points) == 0 {
		log.Println("No data available for visualization.")
		return nil
	}

	pts := make(plotter.XYs, len(points))
	labels := make([]string, len(points))
	for i, p := range points {
		pts[i].X = float64(i)
		pts[i].Y = p.Temperature
		labels[i] = p.Date
	}

	plt := plot.New()
	plt.Title.Text = "Temperature Over Time"
	plt.X.Label.Text = "Date"
	plt.Y.Label.Text = "Temperature (°C)"
	plt.NominalX(labels...)
	plt.X.Tick.Label.Rotation = math.Pi / 4
	plt.X.Tick.Label.XAlign = draw.XRight
	plt.X.Tick.Label.YAlign = draw.YCenter

	line, markers, err := plotter.NewLinePoints(pts)
	if err != nil {
		log.Printf("Error building temperature plot: %v", err)
		return fmt.Errorf("failed to build temperature plot: %v", err)
	}
	plt.Add(line, markers)

	if err := plt.Save(10*vg.Inch, 5*vg.Inch, r.outputPath); err != nil {
		log.Printf("Error rendering chart to %s: %v", r.outputPath, err)
		return fmt.Errorf("failed to save chart: %v", err)
	}

	log.Printf("Rendered temperature chart with %d points to %s", len(pts), r.outputPath)
	return nil
}
