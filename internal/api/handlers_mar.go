package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/vor"
)

// MARRequest is the body of a Market Analysis Report request. EventDate
// is the planned event date (YYYY-MM-DD); empty means today.
type MARRequest struct {
	Topic     string `json:"topic"`
	City      string `json:"city"`
	State     string `json:"state"`
	EventDate string `json:"event_date,omitempty"`
}

// MARHandler predicts performance for a market's most-used venue.
// POST /api/mar {"topic": "TIR", "city": "Tampa", "state": "FL", "event_date": "2025-09-15"}
func (s *Server) MARHandler(w http.ResponseWriter, r *http.Request) {
	if !CheckMethod(w, r, http.MethodPost) {
		return
	}

	var req MARRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	req.Topic = strings.TrimSpace(req.Topic)
	req.City = strings.TrimSpace(req.City)
	req.State = strings.TrimSpace(req.State)
	if req.Topic == "" || req.City == "" || req.State == "" {
		WriteJSONError(w, "topic, city and state are required.", http.StatusBadRequest)
		return
	}

	asOf := time.Now().UTC()
	if req.EventDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EventDate)
		if err != nil {
			WriteJSONError(w, "Invalid event_date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	topic := vor.CanonicalTopic(req.Topic)
	filter := database.EventFilter{
		Topic: &topic,
		City:  &req.City,
		State: &req.State,
	}

	events, err := s.storage.MarketEvents(r.Context(), filter)
	if err != nil {
		WriteJSONError(w, fmt.Sprintf("Failed to query events: %v", err), http.StatusInternalServerError)
		return
	}

	analysis, err := vor.Analyze(events, topic, req.City, req.State, asOf)
	if err != nil {
		if errors.Is(err, vor.ErrNoMatchingEvents) {
			WriteJSONError(w, fmt.Sprintf("No event history for %s in %s, %s.",
				topic, strings.ToUpper(req.City), strings.ToUpper(req.State)), http.StatusNotFound)
			return
		}
		WriteJSONError(w, fmt.Sprintf("Analysis failed: %v", err), http.StatusInternalServerError)
		return
	}

	WriteJSONSuccess(w, analysis)
}
