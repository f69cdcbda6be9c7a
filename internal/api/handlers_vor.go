package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mashley00/venue-webhook/internal/database"
	"github.com/mashley00/venue-webhook/internal/report"
	"github.com/mashley00/venue-webhook/internal/vor"
)

// VORRequest is the body of a Venue Optimization Report request.
type VORRequest struct {
	Topic string `json:"topic"`
	City  string `json:"city"`
	State string `json:"state"`
}

// VORResponse carries the plain-text report plus its pre-rendered HTML,
// so browser clients only assign markup instead of re-implementing the
// line classification.
type VORResponse struct {
	Report     string `json:"report"`
	ReportHTML string `json:"report_html"`
}

// VORHandler builds the Venue Optimization Report for a market.
// POST /vor {"topic": "TIR", "city": "Tampa", "state": "FL"}
func (s *Server) VORHandler(w http.ResponseWriter, r *http.Request) {
	if !CheckMethod(w, r, http.MethodPost) {
		return
	}

	var req VORRequest
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
	if len(events) == 0 {
		WriteJSONError(w, fmt.Sprintf("No matching venues found for %s in %s, %s.",
			topic, strings.ToUpper(req.City), strings.ToUpper(req.State)), http.StatusNotFound)
		return
	}

	venues := vor.RankVenues(events)
	text := vor.BuildReport(topic, req.City, req.State, len(events), venues)

	WriteJSONSuccess(w, VORResponse{
		Report:     text,
		ReportHTML: report.Render(text),
	})
}
