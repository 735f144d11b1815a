package httpserver

import (
	"net/http"

	"watchlist/internal/httpserver/handlers"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"

	"github.com/gorilla/mux"
)

// SetupRouter configures the main router.
// Every page handler runs inside the session middleware; pages that change
// data are additionally gated by LoginRequired.
func SetupRouter(h *handlers.Handlers, am *auth.Middleware) *mux.Router {
	r := mux.NewRouter()
	h.Router = r
	if am.OnError == nil {
		am.OnError = h.ServerError
	}

	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware(h))

	// Public Endpoints
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/user/{name}", h.UserPage).Methods(http.MethodGet).Name("user_page")
	r.HandleFunc("/test", h.TestPage).Methods(http.MethodGet).Name("test")
	web.AddRoutes(r)

	addMovieRoutes(r, h, am)
	addSessionRoutes(r, h, am)

	// Router middleware only wraps matched routes.
	r.NotFoundHandler = LoggingMiddleware(am.WithSession(h.NotFound))

	return r
}

// addMovieRoutes configures the list and the movie CRUD routes.
func addMovieRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc("/", am.WithSession(h.Index)).Methods(http.MethodGet).Name("index")
	r.HandleFunc("/index", am.WithSession(h.Index)).Methods(http.MethodGet)
	r.HandleFunc("/home", am.WithSession(h.Index)).Methods(http.MethodGet)
	r.HandleFunc("/", am.WithSession(h.CreateMovie)).Methods(http.MethodPost)

	r.HandleFunc("/movie/edit/{id:[0-9]+}", am.LoginRequired(h.EditMovieForm)).Methods(http.MethodGet).Name("edit")
	r.HandleFunc("/movie/edit/{id:[0-9]+}", am.LoginRequired(h.UpdateMovie)).Methods(http.MethodPost)
	r.HandleFunc("/movie/delete/{id:[0-9]+}", am.LoginRequired(h.DeleteMovie)).Methods(http.MethodPost).Name("delete")
}

// addSessionRoutes configures login, logout and settings.
func addSessionRoutes(r *mux.Router, h *handlers.Handlers, am *auth.Middleware) {
	r.HandleFunc(auth.LoginPath, am.WithSession(h.LoginForm)).Methods(http.MethodGet).Name("login")
	r.HandleFunc(auth.LoginPath, am.WithSession(h.Login)).Methods(http.MethodPost)
	r.HandleFunc("/logout", am.LoginRequired(h.Logout)).Methods(http.MethodGet).Name("logout")

	r.HandleFunc("/settings", am.LoginRequired(h.SettingsForm)).Methods(http.MethodGet).Name("settings")
	r.HandleFunc("/settings", am.LoginRequired(h.UpdateSettings)).Methods(http.MethodPost)
}
