package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse,omitempty"`
	Dataset    DatasetConfig    `yaml:"dataset"`
	Cache      CacheConfig      `yaml:"cache"`

	ServerLogging   LoggingConfig `yaml:"server_logging"`
	ImporterLogging LoggingConfig `yaml:"importer_logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig selects and configures the event store backend
type DatabaseConfig struct {
	Type string `yaml:"type"` // duckdb or clickhouse
	Path string `yaml:"path"` // duckdb database file
}

// ClickHouseConfig holds ClickHouse connection configuration
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	UseSSL   bool   `yaml:"use_ssl,omitempty"`

	// Connection settings
	MaxOpenConns int    `yaml:"max_open_conns,omitempty"`
	MaxIdleConns int    `yaml:"max_idle_conns,omitempty"`
	DialTimeout  string `yaml:"dial_timeout,omitempty"`
	ReadTimeout  string `yaml:"read_timeout,omitempty"`
	WriteTimeout string `yaml:"write_timeout,omitempty"`
	Compression  string `yaml:"compression,omitempty"` // none, zstd, lz4, gzip
}

// DatasetConfig describes where the AllEvents CSV comes from
type DatasetConfig struct {
	URL          string        `yaml:"url"`           // HTTP(S) source, GitHub raw by default
	File         string        `yaml:"file"`          // local file overrides URL when set
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // timeout for the HTTP fetch
	BatchSize    int           `yaml:"batch_size"`    // rows per insert batch
}

// CacheConfig holds cache configuration (BadgerCache only)
type CacheConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Path           string        `yaml:"path"`
	MaxMemoryMB    int           `yaml:"max_memory_mb"`
	ValueLogMaxMB  int           `yaml:"value_log_max_mb"`
	DefaultTTL     time.Duration `yaml:"default_ttl"`
	ReportTTL      time.Duration `yaml:"report_ttl"`
	StatsTTL       time.Duration `yaml:"stats_ttl"`
	CompactOnClose bool          `yaml:"compact_on_close"`
	GCInterval     time.Duration `yaml:"gc_interval"`
	GCDiscardRatio float64       `yaml:"gc_discard_ratio"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `yaml:"level"`       // debug, info, warn, error
	File       string `yaml:"file"`        // log file path (optional)
	MaxSize    int    `yaml:"max_size"`    // megabytes
	MaxBackups int    `yaml:"max_backups"` // number of old log files to keep
	MaxAge     int    `yaml:"max_age"`     // days
	Console    bool   `yaml:"console"`     // also log to console
	JSON       bool   `yaml:"json"`        // JSON format instead of text
}

// DefaultDatasetURL is the GitHub-hosted AllEvents CSV the importer pulls
// when no other source is configured.
const DefaultDatasetURL = "https://raw.githubusercontent.com/mashley00/venue-webhook/main/data/AllEvents.csv"

// Default configurations

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host: "localhost",
		Port: 8080,
	}
}

func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Type: "duckdb",
		Path: "./data/events.duckdb",
	}
}

func DefaultClickHouseConfig() ClickHouseConfig {
	return ClickHouseConfig{
		Host:         "localhost",
		Port:         9000,
		Database:     "venues",
		Username:     "default",
		Password:     "",
		UseSSL:       false,
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		DialTimeout:  "30s",
		ReadTimeout:  "5m",
		WriteTimeout: "1m",
		Compression:  "lz4",
	}
}

func DefaultDatasetConfig() DatasetConfig {
	return DatasetConfig{
		URL:          DefaultDatasetURL,
		FetchTimeout: 30 * time.Second,
		BatchSize:    500,
	}
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:        false,
		Path:           "./cache/badger",
		MaxMemoryMB:    64,
		ValueLogMaxMB:  100,
		DefaultTTL:     5 * time.Minute,
		ReportTTL:      15 * time.Minute,
		StatsTTL:       1 * time.Hour,
		CompactOnClose: true,
		GCInterval:     10 * time.Minute,
		GCDiscardRatio: 0.5,
	}
}

func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:      "info",
		Console:    true,
		JSON:       false,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// Default returns a complete default configuration
func Default() *Config {
	return &Config{
		Server:          DefaultServerConfig(),
		Database:        DefaultDatabaseConfig(),
		ClickHouse:      DefaultClickHouseConfig(),
		Dataset:         DefaultDatasetConfig(),
		Cache:           DefaultCacheConfig(),
		ServerLogging:   DefaultLoggingConfig(),
		ImporterLogging: DefaultLoggingConfig(),
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(configPath string) (*Config, error) {
	// Missing config file falls back to the embedded defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ToClickHouseDatabaseConfig converts the YAML config into the database
// package's connection config, parsing the duration strings.
func (c *ClickHouseConfig) ToClickHouseDatabaseConfig() (*database.ClickHouseConfig, error) {
	dialTimeout, err := parseDurationDefault(c.DialTimeout, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid dial_timeout: %w", err)
	}
	readTimeout, err := parseDurationDefault(c.ReadTimeout, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid read_timeout: %w", err)
	}
	writeTimeout, err := parseDurationDefault(c.WriteTimeout, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid write_timeout: %w", err)
	}

	return &database.ClickHouseConfig{
		Host:         c.Host,
		Port:         c.Port,
		Database:     c.Database,
		Username:     c.Username,
		Password:     c.Password,
		UseSSL:       c.UseSSL,
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Compression:  c.Compression,
	}, nil
}

func parseDurationDefault(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
