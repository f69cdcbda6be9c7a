package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mashley00/venue-webhook/internal/config"
	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/dataset"
	"github.com/mashley00/venue-webhook/internal/logging"
	"github.com/mashley00/venue-webhook/internal/storage"
	"github.com/mashley00/venue-webhook/internal/version"
)

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to configuration file")
		datasetURL  = flag.String("url", "", "Dataset URL (overrides config)")
		datasetFile = flag.String("file", "", "Local dataset CSV (overrides URL)")
		recreate    = flag.Bool("recreate", true, "Drop and recreate the events table before import")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Venue Webhook Importer %s\n", version.GetFullVersionInfo())
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *datasetURL != "" {
		cfg.Dataset.URL = *datasetURL
	}
	if *datasetFile != "" {
		cfg.Dataset.File = *datasetFile
	}

	if err := logging.Initialize(&logging.Config{
		Level:      cfg.ImporterLogging.Level,
		File:       cfg.ImporterLogging.File,
		MaxSize:    cfg.ImporterLogging.MaxSize,
		MaxBackups: cfg.ImporterLogging.MaxBackups,
		MaxAge:     cfg.ImporterLogging.MaxAge,
		Console:    cfg.ImporterLogging.Console,
		JSON:       cfg.ImporterLogging.JSON,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	logging.Info("Event importer starting",
		slog.String("version", version.GetFullVersionInfo()),
		slog.String("config", *configPath))

	var db database.Database
	switch cfg.Database.Type {
	case "clickhouse":
		chConfig, cerr := cfg.ClickHouse.ToClickHouseDatabaseConfig()
		if cerr != nil {
			logging.Fatalf("Invalid ClickHouse configuration: %v", cerr)
		}
		db, err = database.CreateDatabase("clickhouse", chConfig)
	default:
		db, err = database.CreateDatabase("duckdb", cfg.Database.Path)
	}
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if *recreate {
		logging.Info("Creating schema", slog.String("type", cfg.Database.Type))
		if err := db.CreateSchema(); err != nil {
			logging.Fatalf("Failed to create schema: %v", err)
		}
	}

	storageLayer, err := storage.New(db)
	if err != nil {
		logging.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storageLayer.Close()
	if cfg.Dataset.BatchSize > 0 {
		storageLayer.SetBatchSize(cfg.Dataset.BatchSize)
	}

	source := &dataset.Source{
		URL:     cfg.Dataset.URL,
		File:    cfg.Dataset.File,
		Timeout: cfg.Dataset.FetchTimeout,
	}
	if source.File != "" {
		logging.Info("Loading dataset", logging.File(source.File))
	} else {
		logging.Info("Fetching dataset", slog.String("url", source.URL))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	result, err := source.Load(ctx)
	if err != nil {
		logging.Fatalf("Failed to load dataset: %v", err)
	}

	logging.Info("Dataset parsed",
		logging.Count("events", len(result.Events)),
		logging.Count("skipped", result.Skipped),
		logging.Count("errors", len(result.Errors)))
	for _, parseErr := range result.Errors {
		logging.Warn("Row skipped", slog.String("error", parseErr))
	}

	if len(result.Events) == 0 {
		logging.Fatalf("Dataset produced no events, aborting import")
	}

	if err := storageLayer.InsertEvents(ctx, result.Events); err != nil {
		logging.Fatalf("Failed to insert events: %v", err)
	}

	stats, err := storageLayer.Stats(ctx)
	if err != nil {
		logging.Fatalf("Import verification failed: %v", err)
	}

	logging.Info("Import complete",
		logging.Count("events", stats.TotalEvents),
		logging.Count("venues", stats.TotalVenues),
		logging.Count("markets", stats.TotalMarkets),
		logging.Duration("elapsed", time.Since(start)))
}
