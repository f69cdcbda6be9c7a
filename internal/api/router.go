package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter creates and configures a Chi router with all API routes
func (s *Server) SetupRouter() http.Handler {
	r := chi.NewRouter()

	// Built-in Chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	// The webhook endpoint keeps its historical top-level path; /api/vor
	// is the same handler for clients that follow the API prefix.
	r.Post("/vor", s.VORHandler)
	r.Post("/api/vor", s.VORHandler)

	r.Post("/api/mar", s.MARHandler)
	r.Post("/api/score", s.ScoreHandler)

	// Health endpoints
	r.Get("/api/health", s.HealthHandler)
	r.Get("/healthz", s.LivenessHandler)

	// Statistics routes
	r.Get("/api/stats", s.StatsHandler)
	r.Get("/api/markets", s.MarketsHandler)
	r.Get("/api/cache/stats", s.CacheStatsHandler)

	return r
}
