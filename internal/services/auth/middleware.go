// filepath: internal/services/auth/middleware.go
package auth

import (
	"net/http"

	"watchlist/internal/logging"
)

// LoginPath is where unauthenticated visitors of protected pages are sent.
const LoginPath = "/login"

// LoginRequiredMessage is flashed when a protected page is visited anonymously.
const LoginRequiredMessage = "Please log in to access this page."

// HandlerFunc is an HTTP handler that receives the resolved session.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, sess *Session)

// ErrorHandler writes the response for a request that failed with err.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware resolves sessions and gates protected handlers.
type Middleware struct {
	Sessions SessionService
	// OnError renders failures to load a session. Plain text when nil.
	OnError ErrorHandler
}

// NewMiddleware creates a new instance of Middleware.
func NewMiddleware(sessions SessionService) *Middleware {
	return &Middleware{Sessions: sessions}
}

// WithSession resolves the session for the request, passes it to next and
// persists any changes next made to it.
func (m *Middleware) WithSession(next HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.Sessions.Load(w, r)
		if err != nil {
			logging.Log.Errorf("WithSession: Failed to load session for %s: %v", r.URL.Path, err)
			if m.OnError != nil {
				m.OnError(w, r, err)
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		next(w, r, sess)

		if err := m.Sessions.Save(r.Context(), sess); err != nil {
			logging.Log.Errorf("WithSession: %v", err)
		}
	}
}

// LoginRequired is WithSession for handlers that need an authenticated
// session. Anonymous visitors are redirected to the login page.
func (m *Middleware) LoginRequired(next HandlerFunc) http.HandlerFunc {
	return m.WithSession(func(w http.ResponseWriter, r *http.Request, sess *Session) {
		if !sess.IsAuthenticated() {
			logging.Log.Debugf("LoginRequired: Anonymous access to %s redirected to login", r.URL.Path)
			sess.AddFlash(LoginRequiredMessage)
			http.Redirect(w, r, LoginPath, http.StatusFound)
			return
		}
		next(w, r, sess)
	})
}
