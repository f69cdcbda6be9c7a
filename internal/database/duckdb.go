package database

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDB wraps an embedded DuckDB connection with thread-safety. It is the
// default backend: a single file on disk, good enough for a dataset of a
// few thousand seminar events and the aggregate queries the VOR engine runs.
type DuckDB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

func init() {
	RegisterDatabase("duckdb", func(config interface{}) (Database, error) {
		path, ok := config.(string)
		if !ok {
			return nil, fmt.Errorf("duckdb config must be a file path string")
		}
		return NewDuckDB(path)
	})
}

// NewDuckDB creates a new DuckDB connection
func NewDuckDB(path string) (*DuckDB, error) {
	dsn := fmt.Sprintf("%s?memory_limit=1GB&threads=4", path)

	conn, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB connection: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping DuckDB: %w", err)
	}

	return &DuckDB{conn: conn}, nil
}

// Close closes the database connection
func (db *DuckDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection (thread-safe)
func (db *DuckDB) Conn() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn
}

// Ping verifies the connection is alive
func (db *DuckDB) Ping() error {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.Ping()
}

// CreateSchema creates the events table and its indexes
func (db *DuckDB) CreateSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	// Imports replace the whole dataset, so recreate from scratch
	dropSQL := `DROP TABLE IF EXISTS events`
	if _, err := db.conn.Exec(dropSQL); err != nil {
		return fmt.Errorf("failed to drop existing table: %w", err)
	}

	createSQL := `
	CREATE TABLE events (
		topic TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		venue TEXT NOT NULL,
		event_date DATE,

		-- Attendance and fulfillment metrics
		gross_registrants DOUBLE,
		attended_hh DOUBLE,
		registration_max DOUBLE,
		attendance_rate DOUBLE,
		fulfillment_percent DOUBLE,

		-- Cost metrics
		cpa DOUBLE,
		fb_cpr DOUBLE,
		cpm DOUBLE,
		cost_per_verified_hh DOUBLE,

		-- Media reach metrics
		fb_impressions DOUBLE,
		fb_reach DOUBLE,

		-- Venue policy flags
		image_allowed BOOLEAN DEFAULT FALSE,
		disclosure_needed BOOLEAN DEFAULT FALSE,

		imported_at TIMESTAMP NOT NULL
	)`

	if _, err := db.conn.Exec(createSQL); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	indexes := []string{
		"CREATE INDEX idx_events_market ON events(topic, city, state)",
		"CREATE INDEX idx_events_venue ON events(venue)",
		"CREATE INDEX idx_events_date ON events(event_date)",
	}

	for _, indexSQL := range indexes {
		if _, err := db.conn.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// GetVersion returns the DuckDB version
func (db *DuckDB) GetVersion() (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var version string
	err := db.conn.QueryRow("SELECT version()").Scan(&version)
	if err != nil {
		return "", fmt.Errorf("failed to get DuckDB version: %w", err)
	}

	return version, nil
}
