package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/mashley00/venue-webhook/internal/database"
)

// Operations is the event store surface the API and web layers depend on.
// CachedStorage wraps any implementation with a Badger-backed cache.
type Operations interface {
	InsertEvents(ctx context.Context, events []database.Event) error
	MarketEvents(ctx context.Context, filter database.EventFilter) ([]database.Event, error)
	Markets(ctx context.Context) ([]database.MarketInfo, error)
	Stats(ctx context.Context) (*database.EventStats, error)
	Close() error
}

// Storage provides thread-safe event store operations on top of a
// database backend (DuckDB or ClickHouse).
type Storage struct {
	db        database.Database
	batchSize int
	mu        sync.RWMutex
}

// New creates a new Storage instance
func New(db database.Database) (*Storage, error) {
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	return &Storage{
		db:        db,
		batchSize: 500,
	}, nil
}

// SetBatchSize overrides the default insert batch size
func (s *Storage) SetBatchSize(n int) {
	if n > 0 {
		s.batchSize = n
	}
}

// Close releases storage resources. The database connection itself is
// owned by the caller.
func (s *Storage) Close() error {
	return nil
}
