// filepath: internal/httpserver/handlers/utils.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"watchlist/internal/logging"
	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"

	"github.com/gorilla/mux"
)

// Flash messages shown to the visitor.
const (
	msgInvalidInput       = "Invalid input."
	msgMovieAdded         = "Your movie has been added."
	msgMovieUpdated       = "Item Updated."
	msgMovieDeleted       = "Item deleted."
	msgLoginSuccess       = "Login success."
	msgInvalidCredentials = "Invalid username or password"
	msgGoodbye            = "Goodbye."
	msgSettingsUpdated    = "Settings updated."
)

// render fills the data every page shares and writes the page.
// Rendering consumes the pending flashes of the session.
func (h *Handlers) render(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, page string, data web.PageData) {
	owner, err := h.Users.GetOwner(r.Context())
	switch {
	case err == nil:
		data.OwnerName = owner.Name
	case errors.Is(err, services.ErrNotFound):
		logging.Log.Debug("render: No owner configured yet")
	default:
		logging.Log.Warnf("render: Failed to load owner: %v", err)
	}

	if sess != nil {
		data.Authenticated = sess.IsAuthenticated()
		data.Flashes = sess.PopFlashes()
	}

	h.Views.Render(w, status, page, data)
}

// NotFound renders the 404 page.
func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	logging.Log.Debugf("NotFound: %s %s", r.Method, r.URL.Path)
	h.render(w, r, sess, http.StatusNotFound, web.PageNotFound, web.PageData{})
}

// ServerError logs err and renders the 500 page.
func (h *Handlers) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	logging.Log.Errorf("%s %s: %v", r.Method, r.URL.Path, err)
	h.Views.Render(w, http.StatusInternalServerError, web.PageError, web.PageData{})
}

// handleServiceError maps a service error kind to the matching page.
func (h *Handlers) handleServiceError(w http.ResponseWriter, r *http.Request, sess *auth.Session, err error) {
	if errors.Is(err, services.ErrNotFound) {
		h.NotFound(w, r, sess)
		return
	}
	h.ServerError(w, r, err)
}

// flashRedirect queues message and redirects to target.
func flashRedirect(w http.ResponseWriter, r *http.Request, sess *auth.Session, message, target string) {
	sess.AddFlash(message)
	http.Redirect(w, r, target, http.StatusFound)
}

// movieID extracts the id route variable.
func movieID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// actor names the user behind a request for audit events.
func actor(sess *auth.Session) string {
	if sess != nil && sess.User != nil {
		return sess.User.Username
	}
	return ""
}
