package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mashley00/venue-webhook/internal/api"
	"github.com/mashley00/venue-webhook/internal/cache"
	"github.com/mashley00/venue-webhook/internal/config"
	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/logging"
	"github.com/mashley00/venue-webhook/internal/storage"
	"github.com/mashley00/venue-webhook/internal/version"
	"github.com/mashley00/venue-webhook/internal/web"
)

// loggingMiddleware wraps an http.Handler to log all HTTP requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &loggingResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		logging.Info("HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", wrapped.statusCode),
			slog.Duration("duration", time.Since(start)),
			slog.String("ip", getRealIP(r)),
		)
	})
}

// getRealIP extracts the real client IP from request headers when behind
// a reverse proxy
func getRealIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}

	// X-Forwarded-For may contain multiple IPs; the first one is the
	// original client
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	return r.RemoteAddr
}

// loggingResponseWriter wraps http.ResponseWriter to capture the status code
type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func toLoggingConfig(lc *config.LoggingConfig) *logging.Config {
	return &logging.Config{
		Level:      lc.Level,
		File:       lc.File,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Console:    lc.Console,
		JSON:       lc.JSON,
	}
}

func main() {
	var (
		configPath  = flag.String("config", "config.yaml", "Path to configuration file")
		port        = flag.Int("port", 0, "HTTP server port (overrides config)")
		host        = flag.String("host", "", "HTTP server host (overrides config)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("Venue Webhook Server %s\n", version.GetFullVersionInfo())
		os.Exit(0)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	if err := logging.Initialize(toLoggingConfig(&cfg.ServerLogging)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	logging.Info("Venue webhook server starting",
		slog.String("version", version.GetFullVersionInfo()),
		slog.String("config", *configPath))

	// Open the event store backend
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

	if dbVersion, verr := db.GetVersion(); verr == nil {
		logging.Info("Event store opened",
			slog.String("type", cfg.Database.Type),
			slog.String("version", dbVersion))
	}

	storageLayer, err := storage.New(db)
	if err != nil {
		logging.Fatalf("Failed to initialize storage: %v", err)
	}
	defer storageLayer.Close()
	if cfg.Dataset.BatchSize > 0 {
		storageLayer.SetBatchSize(cfg.Dataset.BatchSize)
	}

	// Wrap storage with the Badger cache if enabled
	var finalStorage storage.Operations = storageLayer
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled {
		cacheImpl, err = cache.New(&cache.Config{
			Enabled:              true,
			BadgerPath:           cfg.Cache.Path,
			BadgerMaxMemoryMB:    cfg.Cache.MaxMemoryMB,
			BadgerValueLogMaxMB:  cfg.Cache.ValueLogMaxMB,
			BadgerCompactL0:      cfg.Cache.CompactOnClose,
			BadgerGCInterval:     cfg.Cache.GCInterval,
			BadgerGCDiscardRatio: cfg.Cache.GCDiscardRatio,
		})
		if err != nil {
			logging.Fatalf("Failed to initialize cache: %v", err)
		}
		defer cacheImpl.Close()

		finalStorage = storage.NewCachedStorage(storageLayer, cacheImpl, &storage.CacheStorageConfig{
			Enabled:    true,
			DefaultTTL: cfg.Cache.DefaultTTL,
			MarketTTL:  cfg.Cache.ReportTTL,
			StatsTTL:   cfg.Cache.StatsTTL,
		})

		logging.Info("BadgerCache initialized",
			logging.File(cfg.Cache.Path),
			logging.Duration("report_ttl", cfg.Cache.ReportTTL),
			logging.Duration("stats_ttl", cfg.Cache.StatsTTL))
	} else {
		logging.Info("Cache is disabled")
	}

	// Initialize API and Web servers
	apiServer := api.New(finalStorage)
	apiServer.SetHealthChecker(&serverHealthChecker{
		db:        db,
		storage:   finalStorage,
		cache:     cacheImpl,
		startTime: time.Now(),
	})

	if cacheImpl != nil {
		apiServer.SetCacheStatsHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics := cacheImpl.GetMetrics()
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"hits":%d,"misses":%d,"sets":%d,"deletes":%d,"size":%d,"keys":%d,"hit_rate":%.2f}`,
				metrics.Hits, metrics.Misses, metrics.Sets, metrics.Deletes,
				metrics.Size, metrics.Keys, metrics.HitRate())
		})
	}

	webServer, err := web.New(finalStorage, web.TemplatesFS, web.StaticFS)
	if err != nil {
		logging.Fatalf("Failed to initialize web server: %v", err)
	}

	apiRouter := apiServer.SetupRouter()

	// Combined routes: Chi handles the JSON endpoints, ServeMux the pages
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/vor", apiRouter)
	mux.Handle("/healthz", apiRouter)
	webServer.SetupRoutes(mux)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           loggingMiddleware(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logging.Info("Server starting", slog.String("address", "http://"+addr))
		logging.Info("Available endpoints:")
		logging.Info("  Web Interface:")
		logging.Infof("    http://%s/          - Report request form", addr)
		logging.Infof("    http://%s/markets   - Market listing", addr)
		logging.Info("  REST API:")
		logging.Infof("    http://%s/vor             - Venue Optimization Report", addr)
		logging.Infof("    http://%s/api/mar         - Market Analysis Report", addr)
		logging.Infof("    http://%s/api/score       - Manual venue scoring", addr)
		logging.Infof("    http://%s/api/stats       - Event store statistics", addr)
		logging.Infof("    http://%s/api/markets     - Market listing (JSON)", addr)
		logging.Infof("    http://%s/api/health      - Health check", addr)
		if cfg.Cache.Enabled {
			logging.Infof("    http://%s/api/cache/stats - Cache statistics", addr)
		}

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown timed out, forcing close", slog.Any("error", err))
		if err := server.Close(); err != nil {
			logging.Error("Server force close error", slog.Any("error", err))
		}
	}

	logging.Info("Server stopped")
}
