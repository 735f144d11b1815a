package auth

import "watchlist/internal/models"

// Session is the per-request view of a visitor's session. It is resolved
// once per request and handed to handlers as an argument.
type Session struct {
	record *models.Session
	// User is the logged in user, nil for anonymous visitors.
	User *models.User

	token string
	dirty bool
}

// ID returns the server-side session id.
func (s *Session) ID() string {
	return s.record.ID
}

// IsAuthenticated reports whether the session is bound to a user.
func (s *Session) IsAuthenticated() bool {
	return s.User != nil
}

// AddFlash queues a one-time message for the next rendered page.
func (s *Session) AddFlash(message string) {
	s.record.Flashes = append(s.record.Flashes, message)
	s.dirty = true
}

// PopFlashes returns the queued messages and clears them.
func (s *Session) PopFlashes() []string {
	flashes := s.record.Flashes
	if len(flashes) == 0 {
		return nil
	}
	s.record.Flashes = nil
	s.dirty = true
	return flashes
}
