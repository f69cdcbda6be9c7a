package cache

import (
	"fmt"
	"time"
)

// Config holds configuration for cache creation. Only BadgerCache is
// supported as the backing store.
type Config struct {
	Enabled bool

	BadgerPath           string
	BadgerMaxMemoryMB    int
	BadgerValueLogMaxMB  int
	BadgerCompactL0      bool
	BadgerGCInterval     time.Duration
	BadgerGCDiscardRatio float64
}

// DefaultConfig returns a default cache configuration for BadgerCache
func DefaultConfig() *Config {
	return &Config{
		Enabled:              true,
		BadgerPath:           "./cache/badger",
		BadgerMaxMemoryMB:    64,
		BadgerValueLogMaxMB:  100,
		BadgerCompactL0:      true,
		BadgerGCInterval:     10 * time.Minute,
		BadgerGCDiscardRatio: 0.5,
	}
}

// New creates a new BadgerCache based on the configuration.
// Returns nil if caching is disabled.
func New(config *Config) (Cache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if !config.Enabled {
		return nil, nil
	}

	if config.BadgerPath == "" {
		return nil, fmt.Errorf("BadgerPath is required when cache is enabled")
	}

	return NewBadgerCache(&BadgerConfig{
		Path:             config.BadgerPath,
		MaxMemoryMB:      config.BadgerMaxMemoryMB,
		ValueLogMaxMB:    config.BadgerValueLogMaxMB,
		CompactL0OnClose: config.BadgerCompactL0,
		GCInterval:       config.BadgerGCInterval,
		GCDiscardRatio:   config.BadgerGCDiscardRatio,
	})
}
