// filepath: internal/httpserver/handlers/settings_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"
)

// SettingsForm renders the settings page.
func (h *Handlers) SettingsForm(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	h.render(w, r, sess, http.StatusOK, web.PageSettings, web.PageData{})
}

// UpdateSettings stores a new display name for the logged in user.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	name := r.PostFormValue("name")

	user, err := h.Users.UpdateName(r.Context(), sess.User.ID, name)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			flashRedirect(w, r, sess, msgInvalidInput, "/settings")
			return
		}
		h.ServerError(w, r, err)
		return
	}
	sess.User = user

	h.Auditor.Log(r.Context(), "user.update_name", user.Username, fmt.Sprintf("user:%d", user.ID), map[string]interface{}{
		"name": user.Name,
	})
	flashRedirect(w, r, sess, msgSettingsUpdated, "/")
}
