package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validator interface for config validation
type Validator interface {
	Validate() error
}

// ValidationErrors collects multiple validation errors
type ValidationErrors struct {
	Errors []error
}

func (ve *ValidationErrors) Add(err error) {
	if err != nil {
		ve.Errors = append(ve.Errors, err)
	}
}

func (ve *ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(ve.Errors))
	for i, err := range ve.Errors {
		messages[i] = fmt.Sprintf("  - %s", err.Error())
	}

	return fmt.Sprintf("configuration validation failed:\n%s",
		strings.Join(messages, "\n"))
}

func (ve *ValidationErrors) HasErrors() bool {
	return len(ve.Errors) > 0
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs.Add(c.Server.Validate())
	errs.Add(c.Database.Validate())

	if c.Database.Type == "clickhouse" {
		if c.ClickHouse.Host == "" {
			errs.Add(fmt.Errorf("clickhouse configuration is required when database.type is clickhouse"))
		} else {
			errs.Add(c.ClickHouse.Validate())
		}
	}

	errs.Add(c.Dataset.Validate())

	if c.Cache.Enabled {
		errs.Add(c.Cache.Validate())
	}

	errs.Add(c.ServerLogging.Validate())
	errs.Add(c.ImporterLogging.Validate())

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	var errs ValidationErrors

	if c.Port < 1 || c.Port > 65535 {
		errs.Add(fmt.Errorf("server.port must be between 1-65535, got %d", c.Port))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates database selection
func (c *DatabaseConfig) Validate() error {
	var errs ValidationErrors

	switch c.Type {
	case "duckdb":
		if c.Path == "" {
			errs.Add(fmt.Errorf("database.path is required for duckdb"))
		}
	case "clickhouse":
		// Connection details validated on ClickHouseConfig
	default:
		errs.Add(fmt.Errorf("database.type must be duckdb or clickhouse, got %q", c.Type))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates ClickHouse configuration
func (c *ClickHouseConfig) Validate() error {
	var errs ValidationErrors

	if c.Host == "" {
		errs.Add(fmt.Errorf("clickhouse.host is required"))
	}

	if c.Port < 1 || c.Port > 65535 {
		errs.Add(fmt.Errorf("clickhouse.port must be between 1-65535, got %d", c.Port))
	}

	if c.Database == "" {
		errs.Add(fmt.Errorf("clickhouse.database is required"))
	}

	if c.MaxOpenConns < 0 {
		errs.Add(fmt.Errorf("clickhouse.max_open_conns cannot be negative"))
	}

	if c.MaxIdleConns < 0 {
		errs.Add(fmt.Errorf("clickhouse.max_idle_conns cannot be negative"))
	}

	if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		errs.Add(fmt.Errorf("clickhouse.max_idle_conns (%d) cannot exceed max_open_conns (%d)",
			c.MaxIdleConns, c.MaxOpenConns))
	}

	switch c.Compression {
	case "", "none", "zstd", "lz4", "gzip":
	default:
		errs.Add(fmt.Errorf("clickhouse.compression must be none, zstd, lz4 or gzip, got %q", c.Compression))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates dataset source configuration
func (c *DatasetConfig) Validate() error {
	var errs ValidationErrors

	if c.File == "" {
		if c.URL == "" {
			errs.Add(fmt.Errorf("dataset.url or dataset.file is required"))
		} else if u, err := url.Parse(c.URL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errs.Add(fmt.Errorf("dataset.url must be an http(s) URL, got %q", c.URL))
		}
	}

	if c.FetchTimeout < 0 {
		errs.Add(fmt.Errorf("dataset.fetch_timeout cannot be negative"))
	}

	if c.BatchSize < 0 {
		errs.Add(fmt.Errorf("dataset.batch_size cannot be negative"))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates cache configuration
func (c *CacheConfig) Validate() error {
	var errs ValidationErrors

	if c.Path == "" {
		errs.Add(fmt.Errorf("cache.path is required when cache is enabled"))
	}

	if c.MaxMemoryMB < 0 {
		errs.Add(fmt.Errorf("cache.max_memory_mb cannot be negative"))
	}

	if c.GCDiscardRatio < 0 || c.GCDiscardRatio > 1 {
		errs.Add(fmt.Errorf("cache.gc_discard_ratio must be between 0 and 1, got %f", c.GCDiscardRatio))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	var errs ValidationErrors

	switch strings.ToLower(c.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs.Add(fmt.Errorf("logging level must be debug, info, warn or error, got %q", c.Level))
	}

	if c.MaxSize < 0 {
		errs.Add(fmt.Errorf("logging max_size cannot be negative"))
	}

	if errs.HasErrors() {
		return &errs
	}
	return nil
}
