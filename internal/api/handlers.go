package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mashley00/venue-webhook/internal/storage"
)

// Server represents the API server
type Server struct {
	storage           storage.Operations
	healthChecker     HealthChecker
	cacheStatsHandler http.HandlerFunc
}

// New creates a new API server
func New(storage storage.Operations) *Server {
	return &Server{
		storage: storage,
	}
}

// SetHealthChecker sets the health checker for the server
func (s *Server) SetHealthChecker(hc HealthChecker) {
	s.healthChecker = hc
}

// SetCacheStatsHandler sets the handler for the /api/cache/stats endpoint
func (s *Server) SetCacheStatsHandler(h http.HandlerFunc) {
	s.cacheStatsHandler = h
}

// HealthHandler handles health check requests
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if s.healthChecker != nil {
		status := s.healthChecker.CheckHealth()
		code := http.StatusOK
		if status.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		WriteJSON(w, status, code)
		return
	}
	// Fallback: trivial liveness response
	response := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(response)
}

// LivenessHandler answers /healthz for load balancers: process is up,
// no dependency checks.
func (s *Server) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// CacheStatsHandler serves cache metrics when a cache is wired in.
func (s *Server) CacheStatsHandler(w http.ResponseWriter, r *http.Request) {
	if s.cacheStatsHandler == nil {
		WriteJSONError(w, "Cache is not enabled.", http.StatusNotFound)
		return
	}
	s.cacheStatsHandler(w, r)
}
