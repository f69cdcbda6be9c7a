package database

import (
	"database/sql"
	"fmt"
)

// Database defines the common interface for all event store backends
type Database interface {
	// Connection management
	Close() error
	Conn() *sql.DB

	// Schema management
	CreateSchema() error
	GetVersion() (string, error)

	// Health check
	Ping() error
}

// Factory function type for creating database instances
type Factory func(config interface{}) (Database, error)

// Registry holds factory functions for different database types
var Registry = map[string]Factory{}

// RegisterDatabase registers a new database type with its factory function
func RegisterDatabase(dbType string, factory Factory) {
	Registry[dbType] = factory
}

// CreateDatabase creates a database instance based on type and configuration
func CreateDatabase(dbType string, config interface{}) (Database, error) {
	factory, exists := Registry[dbType]
	if !exists {
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	return factory(config)
}
