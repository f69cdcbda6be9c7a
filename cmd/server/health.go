package main

import (
	"context"
	"time"

	"github.com/mashley00/venue-webhook/internal/api"
	"github.com/mashley00/venue-webhook/internal/cache"
	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/storage"
	"github.com/mashley00/venue-webhook/internal/version"
)

// serverHealthChecker implements api.HealthChecker using concrete server
// dependencies.
type serverHealthChecker struct {
	db        database.Database
	storage   storage.Operations
	cache     cache.Cache
	startTime time.Time
}

func (h *serverHealthChecker) CheckHealth() *api.HealthStatus {
	now := time.Now().UTC()
	uptime := now.Sub(h.startTime)

	status := &api.HealthStatus{
		Status:    "ok",
		Time:      now,
		Uptime:    uptime.Truncate(time.Second).String(),
		UptimeSec: uptime.Seconds(),
		Version: api.VersionInfo{
			Version:   version.Version,
			GitCommit: version.GitCommit,
			BuildTime: version.BuildTime,
		},
	}

	pingStart := time.Now()
	err := h.db.Ping()
	status.Database = api.DatabaseHealth{
		Connected:  err == nil,
		ResponseMs: time.Since(pingStart).Milliseconds(),
	}
	if err != nil {
		status.Database.Error = err.Error()
		status.Status = "degraded"
	}

	// Event data availability
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if stats, err := h.storage.Stats(ctx); err == nil && stats != nil {
		status.Events = api.EventDataInfo{
			LatestDate: stats.LatestEventDate.Format("2006-01-02"),
			Count:      stats.TotalEvents,
		}
	}

	if h.cache != nil {
		metrics := h.cache.GetMetrics()
		status.Cache = &api.CacheHealth{
			Enabled: true,
			Keys:    metrics.Keys,
			HitRate: metrics.HitRate(),
		}
	}

	return status
}
