// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dpavlovic/climate-watch/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// ErrStorage marks database open/write failures.
var ErrStorage = errors.New("storage error")

// ClimateRepository defines the interface for climate data persistence operations
type ClimateRepository interface {
	InitSchema() error
	InsertClimateReading(reading entities.ClimateReading) error
	InsertNewsArticle(article entities.NewsArticle) error
	QueryAllReadings() ([]entities.TemperaturePoint, error)
	AllReadings() ([]entities.ClimateReading, error)
	LatestReading() (*entities.ClimateReading, error)
	AllArticles() ([]entities.NewsArticle, error)
}

// SQLiteClimateRepository implements ClimateRepository using SQLite.
// Every operation opens its own connection and closes it on every exit
// path; no state is shared between calls, so the pipeline, collector and
// bot can point at the same database file.
type SQLiteClimateRepository struct {
	DBPath string
}

// NewSQLiteClimateRepository creates a repository bound to a database path
func NewSQLiteClimateRepository(dbPath string) (*SQLiteClimateRepository, error) {
	if dbPath == "" {
		// Set default path if not specified
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("%w: failed to create database directory: %v", ErrStorage, err)
		}
		dbPath = filepath.Join(dbDir, "climate_risk.db")
	}
	log.Printf("Using database at %s", dbPath)
	return &SQLiteClimateRepository{DBPath: dbPath}, nil
}

// open returns a fresh connection to the database file
func (r *SQLiteClimateRepository) open() (*sql.DB, error) {
	db, err := sql.Open("sqlite3", r.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStorage, err)
	}
	return db, nil
}

// InitSchema creates the tables if they do not exist. Safe to call on
// every startup; the schema is additive-only.
func (r *SQLiteClimateRepository) InitSchema() error {
	db, err := r.open()
	if err != nil {
		log.Printf("Database setup error: %v", err)
		return err
	}
	defer db.Close()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS ClimateData (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		temperature REAL,
		humidity REAL,
		date TEXT,
		location TEXT
	);
	CREATE TABLE IF NOT EXISTS NewsArticles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		link TEXT,
		date TEXT
	);
	CREATE TABLE IF NOT EXISTS Projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		description TEXT
	);
	CREATE TABLE IF NOT EXISTS Users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS Enrollments (
		user_id INTEGER,
		project_id INTEGER,
		PRIMARY KEY (user_id, project_id),
		FOREIGN KEY (user_id) REFERENCES Users(id),
		FOREIGN KEY (project_id) REFERENCES Projects(id)
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		log.Printf("Database setup error: %v", err)
		return fmt.Errorf("%w: failed to create tables: %v", ErrStorage, err)
	}
	return nil
}

// InsertClimateReading stores a single climate reading
func (r *SQLiteClimateRepository) InsertClimateReading(reading entities.ClimateReading) error {
	db, err := r.open()
	if err != nil {
		log.Printf("Error inserting climate data: %v", err)
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		"INSERT INTO ClimateData (temperature, humidity, date, location) VALUES (?, ?, ?, ?)",
		reading.Temperature, reading.Humidity, reading.Date, reading.Location,
	)
	if err != nil {
		log.Printf("Error inserting climate data: %v", err)
		return fmt.Errorf("%w: failed to insert climate reading: %v", ErrStorage, err)
	}
	return nil
}

// InsertNewsArticle stores a single news article
func (r *SQLiteClimateRepository) InsertNewsArticle(article entities.NewsArticle) error {
	db, err := r.open()
	if err != nil {
		log.Printf("Error inserting news article: %v", err)
		return err
	}
	defer db.Close()

	_, err = db.Exec(
		"INSERT INTO NewsArticles (title, link, date) VALUES (?, ?, ?)",
		article.Title, article.Link, article.Date,
	)
	if err != nil {
		log.Printf("Error inserting news article: %v", err)
		return fmt.Errorf("%w: failed to insert news article: %v", ErrStorage, err)
	}
	return nil
}

// QueryAllReadings returns every stored (date, temperature) pair. No order
// is imposed by the query; callers must not assume chronological order.
func (r *SQLiteClimateRepository) QueryAllReadings() ([]entities.TemperaturePoint, error) {
	db, err := r.open()
	if err != nil {
		log.Printf("Error fetching climate data: %v", err)
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT date, temperature FROM ClimateData")
	if err != nil {
		log.Printf("Error fetching climate data: %v", err)
		return nil, fmt.Errorf("%w: failed to query climate data: %v", ErrStorage, err)
	}
	defer rows.Close()

	var points []entities.TemperaturePoint
	for rows.Next() {
		var p entities.TemperaturePoint
		if err := rows.Scan(&p.Date, &p.Temperature); err != nil {
			log.Printf("Error fetching climate data: %v", err)
			return nil, fmt.Errorf("%w: failed to scan row: %v", ErrStorage, err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		log.Printf("Error fetching climate data: %v", err)
		return nil, fmt.Errorf("%w: error during row iteration: %v", ErrStorage, err)
	}

	return points, nil
}

// AllReadings returns every stored climate reading in row-id order
func (r *SQLiteClimateRepository) AllReadings() ([]entities.ClimateReading, error) {
	db, err := r.open()
	if err != nil {
		log.Printf("Error fetching climate readings: %v", err)
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, temperature, humidity, date, location FROM ClimateData ORDER BY id")
	if err != nil {
		log.Printf("Error fetching climate readings: %v", err)
		return nil, fmt.Errorf("%w: failed to query climate readings: %v", ErrStorage, err)
	}
	defer rows.Close()

	var readings []entities.ClimateReading
	for rows.Next() {
		var cr entities.ClimateReading
		if err := rows.Scan(&cr.ID, &cr.Temperature, &cr.Humidity, &cr.Date, &cr.Location); err != nil {
			log.Printf("Error fetching climate readings: %v", err)
			return nil, fmt.Errorf("%w: failed to scan row: %v", ErrStorage, err)
		}
		readings = append(readings, cr)
	}

	if err := rows.Err(); err != nil {
		log.Printf("Error fetching climate readings: %v", err)
		return nil, fmt.Errorf("%w: error during row iteration: %v", ErrStorage, err)
	}

	return readings, nil
}

// LatestReading returns the most recently inserted climate reading, or nil
// when the table is empty
func (r *SQLiteClimateRepository) LatestReading() (*entities.ClimateReading, error) {
	db, err := r.open()
	if err != nil {
		log.Printf("Error fetching latest reading: %v", err)
		return nil, err
	}
	defer db.Close()

	var cr entities.ClimateReading
	err = db.QueryRow(
		"SELECT id, temperature, humidity, date, location FROM ClimateData ORDER BY id DESC LIMIT 1",
	).Scan(&cr.ID, &cr.Temperature, &cr.Humidity, &cr.Date, &cr.Location)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("Error fetching latest reading: %v", err)
		return nil, fmt.Errorf("%w: failed to query latest reading: %v", ErrStorage, err)
	}

	return &cr, nil
}

// AllArticles returns every stored news article in row-id order
func (r *SQLiteClimateRepository) AllArticles() ([]entities.NewsArticle, error) {
	db, err := r.open()
	if err != nil {
		log.Printf("Error fetching news articles: %v", err)
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, title, link, date FROM NewsArticles ORDER BY id")
	if err != nil {
		log.Printf("Error fetching news articles: %v", err)
		return nil, fmt.Errorf("%w: failed to query news articles: %v", ErrStorage, err)
	}
	defer rows.Close()

	var articles []entities.NewsArticle
	for rows.Next() {
		var a entities.NewsArticle
		if err := rows.Scan(&a.ID, &a.Title, &a.Link, &a.Date); err != nil {
			log.Printf("Error fetching news articles: %v", err)
			return nil, fmt.Errorf("%w: failed to scan row: %v", ErrStorage, err)
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		log.Printf("Error fetching news articles: %v", err)
		return nil, fmt.Errorf("%w: error during row iteration: %v", ErrStorage, err)
	}

	return articles, nil
}
