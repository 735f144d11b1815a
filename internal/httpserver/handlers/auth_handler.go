// filepath: internal/httpserver/handlers/auth_handler.go
package handlers

import (
	"errors"
	"net/http"

	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"
)

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	h.render(w, r, sess, http.StatusOK, web.PageLogin, web.PageData{})
}

// Login checks the submitted credentials and binds the session to the owner.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	creds := models.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	user, err := h.Users.Authenticate(r.Context(), creds)
	switch {
	case errors.Is(err, services.ErrValidation):
		flashRedirect(w, r, sess, msgInvalidInput, auth.LoginPath)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		logging.Log.Infof("Login: Failed login attempt for '%s'", creds.Username)
		h.Auditor.Log(r.Context(), "session.login_failed", "", "user:"+creds.Username, nil)
		flashRedirect(w, r, sess, msgInvalidCredentials, auth.LoginPath)
		return
	case err != nil:
		h.ServerError(w, r, err)
		return
	}

	if err := h.Sessions.Login(w, r, sess, user); err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "session.login", user.Username, "session", nil)
	flashRedirect(w, r, sess, msgLoginSuccess, "/")
}

// Logout drops the user binding of the session.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	username := actor(sess)
	if err := h.Sessions.Logout(w, r, sess); err != nil {
		h.ServerError(w, r, err)
		return
	}

	h.Auditor.Log(r.Context(), "session.logout", username, "session", nil)
	flashRedirect(w, r, sess, msgGoodbye, "/")
}
