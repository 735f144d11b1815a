// filepath: internal/models/models.go
// Package models contains the core data structures for the application.
package models

import "time"

// User is the owner of the watchlist.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// HasPassword reports whether the user can log in.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Movie is a single watchlist entry.
type Movie struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Year  string `json:"year"`
}

// Session is the server-side state behind a session cookie.
// UserID is nil while the visitor is anonymous.
type Session struct {
	ID        string
	UserID    *int64
	Flashes   []string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// MovieInput carries the raw form fields for creating or editing a movie.
type MovieInput struct {
	Title string
	Year  string
}

// Credentials carries the raw login form fields.
type Credentials struct {
	Username string
	Password string
}
