package api

import (
	"encoding/json"
	"net/http"

	"github.com/mashley00/venue-webhook/internal/vor"
)

// ScoreRequest is the body of a manual scoring request. Numeric fields
// are loosely typed because spreadsheet pastes arrive as "$61.20" or
// "62.5%" strings as often as numbers.
type ScoreRequest struct {
	Venue              string      `json:"venue"`
	CPA                interface{} `json:"cpa"`
	FulfillmentPercent interface{} `json:"fulfillment_percent"`
	AttendanceRate     interface{} `json:"attendance_rate"`
}

// ScoreHandler scores a single venue from caller-supplied numbers,
// without touching the event store.
// POST /api/score {"venue": "Crowne Plaza", "cpa": "$61.20", "fulfillment_percent": "62.5%", "attendance_rate": 0.55}
func (s *Server) ScoreHandler(w http.ResponseWriter, r *http.Request) {
	if !CheckMethod(w, r, http.MethodPost) {
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	result, err := vor.ScoreManual(req.Venue, req.CPA, req.FulfillmentPercent, req.AttendanceRate)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	WriteJSONSuccess(w, result)
}
