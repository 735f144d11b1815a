package handlers

import (
	"fmt"
	"html"
	"net/http"

	"watchlist/internal/logging"

	"github.com/gorilla/mux"
)

// HealthCheck is a simple public endpoint to confirm the server is running.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// UserPage greets the user named in the path.
func (h *Handlers) UserPage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "User: %s", html.EscapeString(name))
}

// TestPage logs a few URLs built from the route table.
func (h *Handlers) TestPage(w http.ResponseWriter, r *http.Request) {
	for _, u := range h.sampleURLs() {
		logging.Log.Info(u)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "Test page")
}

func (h *Handlers) sampleURLs() []string {
	if h.Router == nil {
		return nil
	}

	var urls []string
	build := func(route string, pairs ...string) {
		rt := h.Router.Get(route)
		if rt == nil {
			return
		}
		u, err := rt.URL(pairs...)
		if err != nil {
			logging.Log.Warnf("TestPage: Failed to build URL for '%s': %v", route, err)
			return
		}
		urls = append(urls, u.String())
	}

	build("index")
	build("user_page", "name", "Totoro")
	build("user_page", "name", "Peter")
	build("test")
	if rt := h.Router.Get("test"); rt != nil {
		if u, err := rt.URL(); err == nil {
			u.RawQuery = "num=2"
			urls = append(urls, u.String())
		}
	}
	return urls
}
