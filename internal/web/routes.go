package web

import "net/http"

// SetupRoutes configures all HTTP routes
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.IndexHandler)
	mux.HandleFunc("/markets", s.MarketsHandler)

	// Serve static files
	mux.HandleFunc("/static/", s.StaticHandler)
}
