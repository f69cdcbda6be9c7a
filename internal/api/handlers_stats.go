package api

import (
	"fmt"
	"net/http"
)

// StatsHandler reports event store totals.
// GET /api/stats
func (s *Server) StatsHandler(w http.ResponseWriter, r *http.Request) {
	if !CheckMethod(w, r, http.MethodGet) {
		return
	}

	stats, err := s.storage.Stats(r.Context())
	if err != nil {
		WriteJSONError(w, fmt.Sprintf("Failed to get statistics: %v", err), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"stats":             stats,
		"latest_event_date": stats.LatestEventDate.Format("2006-01-02"),
	}

	WriteJSONSuccess(w, response)
}

// MarketsHandler lists every (topic, city, state) market with event and
// venue counts.
// GET /api/markets
func (s *Server) MarketsHandler(w http.ResponseWriter, r *http.Request) {
	if !CheckMethod(w, r, http.MethodGet) {
		return
	}

	markets, err := s.storage.Markets(r.Context())
	if err != nil {
		WriteJSONError(w, fmt.Sprintf("Failed to list markets: %v", err), http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"markets": markets,
		"count":   len(markets),
	}

	WriteJSONSuccess(w, response)
}
