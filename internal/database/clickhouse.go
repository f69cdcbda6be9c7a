package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseDB wraps a ClickHouse connection with thread-safety. It is the
// shared-deployment backend when several server instances read the same
// event store.
type ClickHouseDB struct {
	conn   driver.Conn
	sqlDB  *sql.DB // used by the storage layer's prepared queries
	mu     sync.RWMutex
	config *ClickHouseConfig
}

// ClickHouseConfig holds ClickHouse connection configuration
type ClickHouseConfig struct {
	Host         string
	Port         int
	Database     string
	Username     string
	Password     string
	UseSSL       bool
	MaxOpenConns int
	MaxIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Compression  string
}

func init() {
	RegisterDatabase("clickhouse", func(config interface{}) (Database, error) {
		chConfig, ok := config.(*ClickHouseConfig)
		if !ok {
			return nil, fmt.Errorf("clickhouse config must be *ClickHouseConfig")
		}
		return NewClickHouse(chConfig)
	})
}

// NewClickHouse creates a new ClickHouse connection
func NewClickHouse(config *ClickHouseConfig) (*ClickHouseDB, error) {
	// IMPORTANT: Do NOT set MaxOpenConns/MaxIdleConns in Options due to driver bug
	// They must be set on the sql.DB after OpenDB
	options := &clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", config.Host, config.Port)},
		Auth: clickhouse.Auth{
			Database: config.Database,
			Username: config.Username,
			Password: config.Password,
		},
		DialTimeout: config.DialTimeout,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	}

	if config.UseSSL {
		options.TLS = &tls.Config{}
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open ClickHouse connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	sqlDB := clickhouse.OpenDB(options)

	// Pool settings must go on the sql.DB, see note above
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &ClickHouseDB{
		conn:   conn,
		sqlDB:  sqlDB,
		config: config,
	}, nil
}

// Close closes the ClickHouse connection
func (db *ClickHouseDB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	var err error
	if db.sqlDB != nil {
		if sqlErr := db.sqlDB.Close(); sqlErr != nil {
			err = sqlErr
		}
	}
	if db.conn != nil {
		if connErr := db.conn.Close(); connErr != nil && err == nil {
			err = connErr
		}
	}
	return err
}

// Conn returns the sql.DB connection (thread-safe)
func (db *ClickHouseDB) Conn() *sql.DB {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.sqlDB
}

// Ping verifies the connection is alive
func (db *ClickHouseDB) Ping() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return db.conn.Ping(ctx)
}

// CreateSchema creates the events table
func (db *ClickHouseDB) CreateSchema() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	ctx := context.Background()

	dropSQL := `DROP TABLE IF EXISTS events`
	if err := db.conn.Exec(ctx, dropSQL); err != nil {
		return fmt.Errorf("failed to drop existing table: %w", err)
	}

	createSQL := `
	CREATE TABLE events (
		topic String,
		city String,
		state String,
		venue String,
		event_date Nullable(Date),

		gross_registrants Nullable(Float64),
		attended_hh Nullable(Float64),
		registration_max Nullable(Float64),
		attendance_rate Nullable(Float64),
		fulfillment_percent Nullable(Float64),

		cpa Nullable(Float64),
		fb_cpr Nullable(Float64),
		cpm Nullable(Float64),
		cost_per_verified_hh Nullable(Float64),

		fb_impressions Nullable(Float64),
		fb_reach Nullable(Float64),

		image_allowed Bool DEFAULT false,
		disclosure_needed Bool DEFAULT false,

		imported_at DateTime
	) ENGINE = MergeTree()
	ORDER BY (topic, state, city, venue)`

	if err := db.conn.Exec(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create events table: %w", err)
	}

	return nil
}

// GetVersion returns the ClickHouse server version
func (db *ClickHouseDB) GetVersion() (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var version string
	err := db.sqlDB.QueryRow("SELECT version()").Scan(&version)
	if err != nil {
		return "", fmt.Errorf("failed to get ClickHouse version: %w", err)
	}

	return version, nil
}
