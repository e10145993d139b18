package repository

import (
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dpavlovic/climate-watch/internal/entities"
)

func newTestRepo(t *testing.T) *SQLiteClimateRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test-climate.db")
	repo, err := NewSQLiteClimateRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	if err := repo.InitSchema(); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	return repo
}

// TestInitSchemaIdempotent verifies that schema setup can run repeatedly and
// leaves exactly the declared tables behind
func TestInitSchemaIdempotent(t *testing.T) {
	repo := newTestRepo(t)

	// Second run must be a no-op, not an error
	if err := repo.InitSchema(); err != nil {
		t.Fatalf("second InitSchema failed: %v", err)
	}

	db, err := sql.Open("sqlite3", repo.DBPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		t.Fatalf("failed to list tables: %v", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		tables = append(tables, name)
	}

	want := []string{"ClimateData", "Enrollments", "NewsArticles", "Projects", "Users"}
	if !reflect.DeepEqual(tables, want) {
		t.Errorf("unexpected tables: got %v, want %v", tables, want)
	}
}

// TestInsertAndQueryReading verifies the end-to-end example: insert a
// reading, then find its (date, temperature) pair in the full scan
func TestInsertAndQueryReading(t *testing.T) {
	repo := newTestRepo(t)

	reading := entities.ClimateReading{
		Temperature: 25.3,
		Humidity:    60,
		Date:        "2024-11-07",
		Location:    "San Francisco",
	}
	if err := repo.InsertClimateReading(reading); err != nil {
		t.Fatalf("InsertClimateReading failed: %v", err)
	}

	points, err := repo.QueryAllReadings()
	if err != nil {
		t.Fatalf("QueryAllReadings failed: %v", err)
	}

	found := false
	for _, p := range points {
		if p.Date == "2024-11-07" && p.Temperature == 25.3 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected (2024-11-07, 25.3) in %v", points)
	}
}

// TestQueryAllReadingsEmpty verifies that an empty table yields an empty
// sequence and no error
func TestQueryAllReadingsEmpty(t *testing.T) {
	repo := newTestRepo(t)

	points, err := repo.QueryAllReadings()
	if err != nil {
		t.Fatalf("QueryAllReadings failed: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected no points, got %v", points)
	}
}

// TestLatestReading verifies that the highest row id wins
func TestLatestReading(t *testing.T) {
	repo := newTestRepo(t)

	// Empty table returns nil without error
	reading, err := repo.LatestReading()
	if err != nil {
		t.Fatalf("LatestReading on empty table failed: %v", err)
	}
	if reading != nil {
		t.Fatalf("expected nil reading, got %+v", reading)
	}

	first := entities.ClimateReading{Temperature: 18.2, Humidity: 71, Date: "2024-11-06", Location: "Belgrade"}
	second := entities.ClimateReading{Temperature: 25.3, Humidity: 60, Date: "2024-11-07", Location: "San Francisco"}
	if err := repo.InsertClimateReading(first); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.InsertClimateReading(second); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	reading, err = repo.LatestReading()
	if err != nil {
		t.Fatalf("LatestReading failed: %v", err)
	}
	if reading == nil {
		t.Fatal("expected a reading, got nil")
	}
	if reading.Location != "San Francisco" || reading.Temperature != 25.3 {
		t.Errorf("expected the second insert, got %+v", reading)
	}
}

// TestInsertAndListArticles verifies article persistence and row-id ordering
func TestInsertAndListArticles(t *testing.T) {
	repo := newTestRepo(t)

	articles := []entities.NewsArticle{
		{Title: "Поплаве на западу Србије", Link: "https://example.com/news/floods", Date: "2024-11-07"},
		{Title: "Drought risk rising", Link: "https://example.com/news/drought", Date: "2024-11-07"},
	}
	for _, a := range articles {
		if err := repo.InsertNewsArticle(a); err != nil {
			t.Fatalf("InsertNewsArticle failed: %v", err)
		}
	}

	stored, err := repo.AllArticles()
	if err != nil {
		t.Fatalf("AllArticles failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(stored))
	}
	if stored[0].Title != articles[0].Title || stored[1].Title != articles[1].Title {
		t.Errorf("articles out of order or mangled: %+v", stored)
	}
	if stored[0].ID >= stored[1].ID {
		t.Errorf("expected monotonically increasing ids, got %d then %d", stored[0].ID, stored[1].ID)
	}
	if stored[0].Date != "2024-11-07" {
		t.Errorf("expected stored date 2024-11-07, got %q", stored[0].Date)
	}
}

// TestFailedInsertDoesNotBlockNext verifies that one failing insert leaves
// the repository usable: the next insert on the same repository still lands.
// Connections are scoped per call, so a failure cannot poison later work.
func TestFailedInsertDoesNotBlockNext(t *testing.T) {
	repo := newTestRepo(t)

	// Sabotage the article table so the first insert fails
	db, err := sql.Open("sqlite3", repo.DBPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("DROP TABLE NewsArticles"); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}
	db.Close()

	failing := entities.NewsArticle{Title: "Doomed", Link: "https://example.com/doomed", Date: "2024-11-07"}
	err = repo.InsertNewsArticle(failing)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}

	// A reading insert right after the failure must still succeed
	reading := entities.ClimateReading{Temperature: 25.3, Humidity: 60, Date: "2024-11-07", Location: "San Francisco"}
	if err := repo.InsertClimateReading(reading); err != nil {
		t.Fatalf("insert after failure did not land: %v", err)
	}

	points, err := repo.QueryAllReadings()
	if err != nil {
		t.Fatalf("QueryAllReadings failed: %v", err)
	}
	if len(points) != 1 {
		t.Fatalf("expected 1 reading after recovery, got %d", len(points))
	}

	// Restoring the schema makes article inserts work again
	if err := repo.InitSchema(); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	ok := entities.NewsArticle{Title: "Back on air", Link: "https://example.com/ok", Date: "2024-11-07"}
	if err := repo.InsertNewsArticle(ok); err != nil {
		t.Fatalf("insert after schema restore failed: %v", err)
	}

	articles, err := repo.AllArticles()
	if err != nil {
		t.Fatalf("AllArticles failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "Back on air" {
		t.Errorf("unexpected stored articles: %+v", articles)
	}
}

// TestAllReadings verifies the full reading rows come back intact
func TestAllReadings(t *testing.T) {
	repo := newTestRepo(t)

	want := entities.ClimateReading{Temperature: 25.3, Humidity: 60, Date: "2024-11-07", Location: "San Francisco"}
	if err := repo.InsertClimateReading(want); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	readings, err := repo.AllReadings()
	if err != nil {
		t.Fatalf("AllReadings failed: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(readings))
	}

	got := readings[0]
	if got.ID == 0 {
		t.Error("expected a generated surrogate id")
	}
	if got.Temperature != want.Temperature || got.Humidity != want.Humidity ||
		got.Date != want.Date || got.Location != want.Location {
		t.Errorf("stored reading mismatch: got %+v, want %+v", got, want)
	}
}
