// filepath: internal/httpserver/handlers/main.go
package handlers

import (
	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"

	"github.com/gorilla/mux"
)

// Handlers holds the shared dependencies of the HTML handlers.
type Handlers struct {
	Movies   services.MovieService
	Users    services.UserService
	Sessions auth.SessionService
	Auditor  services.Auditor
	Views    *web.Renderer

	// Router is used to build URLs from route names. Set by SetupRouter.
	Router *mux.Router
}

// NewHandlers creates a new instance of Handlers with its dependencies.
func NewHandlers(
	movies services.MovieService,
	users services.UserService,
	sessions auth.SessionService,
	auditor services.Auditor,
	views *web.Renderer,
) *Handlers {
	return &Handlers{
		Movies:   movies,
		Users:    users,
		Sessions: sessions,
		Auditor:  auditor,
		Views:    views,
	}
}
