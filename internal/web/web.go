// internal/web/web.go
// Package web renders the embedded HTML views and serves the static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"watchlist/internal/logging"
	"watchlist/internal/models"

	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names understood by Renderer.Render.
const (
	PageIndex    = "index.html"
	PageEdit     = "edit.html"
	PageLogin    = "login.html"
	PageSettings = "settings.html"
	PageNotFound = "404.html"
	PageError    = "500.html"
)

var pages = []string{PageIndex, PageEdit, PageLogin, PageSettings, PageNotFound, PageError}

// PageData is the model handed to every view.
type PageData struct {
	OwnerName     string
	Authenticated bool
	Flashes       []string

	Movies []models.Movie
	Movie  *models.Movie
}

// Renderer executes the layout together with one page template.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}
	return r, nil
}

// Render writes page with the given status. The page is executed into a
// buffer first so a template error never produces a half written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) {
	tmpl, ok := r.templates[page]
	if !ok {
		logging.Log.Errorf("Render: Unknown page '%s'", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logging.Log.Errorf("Render: Failed to execute template '%s': %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logging.Log.Debugf("Render: Failed to write response for '%s': %v", page, err)
	}
}

// AddRoutes mounts the embedded static assets under /static/.
func AddRoutes(router *mux.Router) {
	subFS, err := fs.Sub(staticFS, "static")
	if err != nil {
		logging.Log.Fatalf("Failed to create sub FS for static assets: %v", err)
	}
	router.PathPrefix("/static/").
		Handler(http.StripPrefix("/static/", http.FileServer(http.FS(subFS)))).
		Methods(http.MethodGet, http.MethodHead)
}
