// Package entities contains the core domain objects for the climate-watch application
package entities

// ClimateReading represents a single climate observation in the system
type ClimateReading struct {
	ID          int64   `json:"id,omitempty"`
	Temperature float64 `json:"temperature"` // Air temperature in °C
	Humidity    float64 `json:"humidity"`    // Relative humidity in %
	Date        string  `json:"date"`        // Observation date, YYYY-MM-DD
	Location    string  `json:"location"`
}

// NewsArticle represents one scraped news item
type NewsArticle struct {
	ID    int64  `json:"id,omitempty"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date,omitempty"` // Assigned when the article is stored
}

// TemperaturePoint is one (date, temperature) pair used for charting
type TemperaturePoint struct {
	Date        string
	Temperature float64
}

// Project, User and Enrollment are carried for compatibility with existing
// database files; no collection or query path populates them.
type Project struct {
	ID          int64
	Name        string
	Description string
}

// User represents a participant in a resilience project
type User struct {
	ID   int64
	Name string
}

// Enrollment links a user to a project, unique per (user, project) pair
type Enrollment struct {
	UserID    int64
	ProjectID int64
}
