package web

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/mashley00/venue-webhook/internal/storage"
)

// Server represents the web server
type Server struct {
	storage   storage.Operations
	templates map[string]*template.Template
	staticFS  fs.FS
}

// New creates a new web server with templates and static assets from the
// given filesystems (normally the embedded ones).
func New(storage storage.Operations, templatesFS, staticFS fs.FS) (*Server, error) {
	server := &Server{
		storage:   storage,
		templates: make(map[string]*template.Template),
		staticFS:  staticFS,
	}

	if err := server.loadTemplates(templatesFS); err != nil {
		return nil, err
	}
	return server, nil
}

// loadTemplates parses the HTML templates from the embedded filesystem
func (s *Server) loadTemplates(templatesFS fs.FS) error {
	templates := []string{"index", "markets"}

	funcMap := template.FuncMap{
		"printf": fmt.Sprintf,
		"add": func(a, b int) int {
			return a + b
		},
	}

	for _, name := range templates {
		tmpl, err := template.New(name+".html").Funcs(funcMap).ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		s.templates[name] = tmpl
	}
	return nil
}

// renderTemplate executes a named template with the given data
func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	tmpl, ok := s.templates[name]
	if !ok {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
	}
}
