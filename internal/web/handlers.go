package web

import (
	"net/http"

	"github.com/mashley00/venue-webhook/internal/database"
)

// IndexPageData feeds the report request form.
type IndexPageData struct {
	Title string
}

// MarketsPageData feeds the market list page.
type MarketsPageData struct {
	Title   string
	Markets []database.MarketInfo
	Error   string
}

// IndexHandler serves the report request form
func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	// ServeMux routes every unmatched path here
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.renderTemplate(w, "index", IndexPageData{
		Title: "Venue Optimization Report",
	})
}

// MarketsHandler lists the markets present in the event store
func (s *Server) MarketsHandler(w http.ResponseWriter, r *http.Request) {
	data := MarketsPageData{Title: "Markets"}

	markets, err := s.storage.Markets(r.Context())
	if err != nil {
		data.Error = "Failed to load markets: " + err.Error()
	} else {
		data.Markets = markets
	}

	s.renderTemplate(w, "markets", data)
}
