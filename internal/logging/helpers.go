package logging

import (
	"fmt"
	"log/slog"
	"time"
)

// Common field helpers for consistent structured logging

// Market formats a seminar market as "CITY, ST"
func Market(city, state string) slog.Attr {
	return slog.String("market", fmt.Sprintf("%s, %s", city, state))
}

// Topic creates a seminar topic field
func Topic(topic string) slog.Attr {
	return slog.String("topic", topic)
}

// Venue creates a venue name field
func Venue(name string) slog.Attr {
	return slog.String("venue", name)
}

// Duration logs duration in milliseconds
func Duration(name string, d time.Duration) slog.Attr {
	return slog.Int64(name+"_ms", d.Milliseconds())
}

// Err creates error field
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Count creates count field
func Count(name string, count int) slog.Attr {
	return slog.Int(name+"_count", count)
}

// Database creates database operation fields
func Database(operation, table string) []any {
	return []any{
		slog.String("db_operation", operation),
		slog.String("db_table", table),
	}
}

// HTTP creates HTTP request fields
func HTTP(method, path string, status int) []any {
	return []any{
		slog.String("http_method", method),
		slog.String("http_path", path),
		slog.Int("http_status", status),
	}
}

// File creates file path field
func File(path string) slog.Attr {
	return slog.String("file", path)
}

// BatchSize creates batch size field
func BatchSize(size int) slog.Attr {
	return slog.Int("batch_size", size)
}
