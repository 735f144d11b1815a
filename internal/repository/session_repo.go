// filepath: internal/repository/session_repo.go
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"watchlist/internal/models"

	"github.com/Masterminds/squirrel"
)

// CreateSession stores a new session row.
func (s *Repository) CreateSession(ctx context.Context, session *models.Session) error {
	flashes, err := encodeFlashes(session.Flashes)
	if err != nil {
		return err
	}

	_, err = s.Builder.Insert("sessions").
		Columns("id", "user_id", "flashes", "created_at", "expires_at").
		Values(session.ID, session.UserID, flashes, session.CreatedAt.Unix(), session.ExpiresAt.Unix()).
		ExecContext(ctx)
	return err
}

// GetSession retrieves a session by id. Expiry is not checked here.
func (s *Repository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	row := s.Builder.Select("id", "user_id", "flashes", "created_at", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		QueryRowContext(ctx)

	var (
		session   models.Session
		userID    sql.NullInt64
		flashes   string
		createdAt int64
		expiresAt int64
	)
	if err := row.Scan(&session.ID, &userID, &flashes, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if userID.Valid {
		id := userID.Int64
		session.UserID = &id
	}
	if err := json.Unmarshal([]byte(flashes), &session.Flashes); err != nil {
		return nil, err
	}
	session.CreatedAt = time.Unix(createdAt, 0)
	session.ExpiresAt = time.Unix(expiresAt, 0)
	return &session, nil
}

// UpdateSession persists the user binding, flashes and expiry of a session.
func (s *Repository) UpdateSession(ctx context.Context, session *models.Session) error {
	flashes, err := encodeFlashes(session.Flashes)
	if err != nil {
		return err
	}

	result, err := s.Builder.Update("sessions").
		Set("user_id", session.UserID).
		Set("flashes", flashes).
		Set("expires_at", session.ExpiresAt.Unix()).
		Where(squirrel.Eq{"id": session.ID}).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrSessionNotFound)
}

// DeleteSession removes a session. Deleting a missing session is not an error.
func (s *Repository) DeleteSession(ctx context.Context, id string) error {
	_, err := s.Builder.Delete("sessions").Where(squirrel.Eq{"id": id}).ExecContext(ctx)
	return err
}

// DeleteExpiredSessions removes every session that expired at or before now.
func (s *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.Builder.Delete("sessions").Where(squirrel.LtOrEq{"expires_at": now.Unix()}).ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func encodeFlashes(flashes []string) (string, error) {
	if flashes == nil {
		flashes = []string{}
	}
	b, err := json.Marshal(flashes)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
