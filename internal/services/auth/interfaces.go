// filepath: internal/services/auth/interfaces.go
package auth

import (
	"context"
	"net/http"

	"watchlist/internal/models"
)

// SessionService defines the contract for cookie backed sessions.
type SessionService interface {
	// Load resolves the request's session cookie, starting a new anonymous
	// session (and setting its cookie) when there is no usable one.
	Load(w http.ResponseWriter, r *http.Request) (*Session, error)
	// Save persists pending flash or binding changes of a session.
	Save(ctx context.Context, sess *Session) error
	// Login binds the session to user under a fresh session id.
	Login(w http.ResponseWriter, r *http.Request, sess *Session, user *models.User) error
	// Logout drops the user binding under a fresh session id.
	Logout(w http.ResponseWriter, r *http.Request, sess *Session) error
}

// SessionStore is the persistence the session service depends on.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, session *models.Session) error
	DeleteSession(ctx context.Context, id string) error
}

// UserLookup resolves the user a session is bound to.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}
