// filepath: internal/services/auth/session_service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"watchlist/internal/config"
	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/repository"
	"watchlist/internal/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

const tokenIssuer = "watchlist"

// Compile-time check to ensure sessionService implements the SessionService interface.
var _ SessionService = (*sessionService)(nil)

// sessionService implements SessionService. The cookie holds an HS256 JWT
// whose jti is the id of a row in the sessions table.
type sessionService struct {
	store      SessionStore
	users      UserLookup
	secret     []byte
	lifetime   time.Duration
	cookieName string
	secure     bool

	now func() time.Time
}

// NewSessionService creates a new instance of the sessionService.
func NewSessionService(cfg *config.Config, store SessionStore, users UserLookup) *sessionService {
	return &sessionService{
		store:      store,
		users:      users,
		secret:     []byte(cfg.SessionSecret),
		lifetime:   cfg.SessionLifetime,
		cookieName: cfg.Session.CookieName,
		secure:     cfg.Session.SecureCookie,
		now:        time.Now,
	}
}

// Load resolves the session cookie of the request.
func (s *sessionService) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	ctx := r.Context()

	sess, err := s.resolve(ctx, r)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	sess, err = s.start(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	s.setCookie(w, sess)
	return sess, nil
}

// resolve returns nil, nil when the request carries no usable session.
func (s *sessionService) resolve(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	id, err := s.parseToken(cookie.Value)
	if err != nil {
		logging.Log.Debugf("SessionService: Ignoring session cookie: %v", err)
		return nil, nil
	}

	record, err := s.store.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			logging.Log.Debugf("SessionService: Session '%s' not found", id)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if record.Expired(s.now()) {
		return nil, nil
	}

	sess := &Session{record: record, token: cookie.Value}
	if record.UserID != nil {
		user, err := s.users.GetUserByID(ctx, *record.UserID)
		switch {
		case errors.Is(err, services.ErrNotFound):
			logging.Log.Warnf("SessionService: User %d of session '%s' no longer exists", *record.UserID, id)
			record.UserID = nil
			sess.dirty = true
		case err != nil:
			return nil, fmt.Errorf("failed to load session user: %w", err)
		default:
			sess.User = user
		}
	}
	return sess, nil
}

// Save persists the session if it changed during the request.
func (s *sessionService) Save(ctx context.Context, sess *Session) error {
	if sess == nil || !sess.dirty {
		return nil
	}
	if err := s.store.UpdateSession(ctx, sess.record); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	sess.dirty = false
	return nil
}

// Login rotates the session id and binds it to user. Pending flashes are kept.
func (s *sessionService) Login(w http.ResponseWriter, r *http.Request, sess *Session, user *models.User) error {
	return s.rotate(w, r, sess, user)
}

// Logout rotates the session id and drops the user binding.
func (s *sessionService) Logout(w http.ResponseWriter, r *http.Request, sess *Session) error {
	return s.rotate(w, r, sess, nil)
}

func (s *sessionService) rotate(w http.ResponseWriter, r *http.Request, sess *Session, user *models.User) error {
	ctx := r.Context()

	var userID *int64
	if user != nil {
		id := user.ID
		userID = &id
	}

	next, err := s.start(ctx, userID, sess.record.Flashes)
	if err != nil {
		return err
	}
	if err := s.store.DeleteSession(ctx, sess.record.ID); err != nil {
		logging.Log.Warnf("SessionService: Failed to delete rotated session '%s': %v", sess.record.ID, err)
	}

	*sess = *next
	sess.User = user
	s.setCookie(w, sess)
	return nil
}

// start creates and stores a new session row and its signed token.
func (s *sessionService) start(ctx context.Context, userID *int64, flashes []string) (*Session, error) {
	now := s.now()
	record := &models.Session{
		ID:        ulid.Make().String(),
		UserID:    userID,
		Flashes:   flashes,
		CreatedAt: now,
		ExpiresAt: now.Add(s.lifetime),
	}

	token, err := s.issueToken(record)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateSession(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return &Session{record: record, token: token}, nil
}

func (s *sessionService) issueToken(record *models.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        record.ID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(record.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(record.ExpiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// parseToken verifies signature, issuer and expiry and returns the session id.
func (s *sessionService) parseToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err // Handles expired tokens as well
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.ID, nil
}

func (s *sessionService) setCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    sess.token,
		Path:     "/",
		Expires:  sess.record.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
