// filepath: internal/repository/user_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"watchlist/internal/logging"
	"watchlist/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"
)

const ownerCacheKey = "user_owner"

// UnclaimedUsername is the placeholder username of an owner created
// without credentials.
const UnclaimedUsername = "admin"

var userColumns = []string{"id", "name", "username", "password_hash"}

// UserCreateArgs is used for creating users in the database layer.
// It is separate from models.User to carry the plaintext password.
type UserCreateArgs struct {
	Name     string
	Username string
	Password string
}

func scanUser(row squirrel.RowScanner) (*models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Username, &user.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetOwner returns the first user row, which is the owner of the watchlist.
// The result is cached until the next user write made through this
// repository. Use LoadOwner where writes from other processes must be seen.
func (s *Repository) GetOwner(ctx context.Context) (*models.User, error) {
	if user, found := s.Cache.Get(ownerCacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debug("GetOwner: CACHE MISS. Querying DB.")
	return s.LoadOwner(ctx)
}

// LoadOwner reads the owner from the database and refreshes the cache.
func (s *Repository) LoadOwner(ctx context.Context) (*models.User, error) {
	row := s.Builder.Select(userColumns...).From("users").OrderBy("id ASC").Limit(1).QueryRowContext(ctx)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.Cache.Delete(ownerCacheKey)
		}
		return nil, err
	}

	s.Cache.Set(ownerCacheKey, user, cache.DefaultExpiration)
	s.Cache.Set(fmt.Sprintf("user_by_id_%d", user.ID), user, cache.DefaultExpiration)
	return user, nil
}

// GetUserByID retrieves a user by id, using the cache when possible.
func (s *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	cacheKey := fmt.Sprintf("user_by_id_%d", id)
	if user, found := s.Cache.Get(cacheKey); found {
		return user.(*models.User), nil
	}

	logging.Log.Debugf("GetUserByID: CACHE MISS for ID %d. Querying DB.", id)
	row := s.Builder.Select(userColumns...).From("users").Where(squirrel.Eq{"id": id}).QueryRowContext(ctx)
	user, err := scanUser(row)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(cacheKey, user, cache.DefaultExpiration)
	return user, nil
}

// CreateUnclaimedOwner inserts an owner that only has a display name.
// It cannot log in until UpdateUserCredentials sets a password.
func (s *Repository) CreateUnclaimedOwner(ctx context.Context, name string) (*models.User, error) {
	result, err := s.Builder.Insert("users").
		Columns("name", "username", "password_hash").
		Values(name, UnclaimedUsername, "").
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.invalidateUser(id)

	logging.Log.Debugf("CreateUnclaimedOwner: Owner '%s' created with ID %d", name, id)
	return &models.User{ID: id, Name: name, Username: UnclaimedUsername}, nil
}

// CreateUser hashes the password and inserts a new user.
func (s *Repository) CreateUser(ctx context.Context, args *UserCreateArgs) (*models.User, error) {
	logging.Log.Debugf("CreateUser: Hashing password for '%s'", args.Username)
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(args.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	result, err := s.Builder.Insert("users").
		Columns("name", "username", "password_hash").
		Values(args.Name, args.Username, string(hashedPassword)).
		ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.invalidateUser(id)

	logging.Log.Debugf("CreateUser: User '%s' created with ID %d", args.Username, id)
	return &models.User{
		ID:           id,
		Name:         args.Name,
		Username:     args.Username,
		PasswordHash: string(hashedPassword),
	}, nil
}

// UpdateUserName changes the display name of a user.
func (s *Repository) UpdateUserName(ctx context.Context, id int64, name string) error {
	result, err := s.Builder.Update("users").Set("name", name).Where(squirrel.Eq{"id": id}).ExecContext(ctx)
	if err != nil {
		return err
	}
	if err := expectAffected(result, ErrUserNotFound); err != nil {
		return err
	}
	s.invalidateUser(id)
	return nil
}

// UpdateUserCredentials replaces the username and password of a user.
// An empty password keeps the current hash.
func (s *Repository) UpdateUserCredentials(ctx context.Context, id int64, username, password string) error {
	update := s.Builder.Update("users").Set("username", username).Where(squirrel.Eq{"id": id})

	if password != "" {
		logging.Log.Debugf("UpdateUserCredentials: New password provided for user ID %d. Re-hashing.", id)
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		update = update.Set("password_hash", string(hashedPassword))
	}

	result, err := update.ExecContext(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return err
	}
	if err := expectAffected(result, ErrUserNotFound); err != nil {
		return err
	}
	s.invalidateUser(id)
	return nil
}

// invalidateUser drops every cache entry that may hold the user.
func (s *Repository) invalidateUser(id int64) {
	logging.Log.Debugf("invalidateUser: Invalidating cache for user ID %d", id)
	s.Cache.Delete(ownerCacheKey)
	s.Cache.Delete(fmt.Sprintf("user_by_id_%d", id))
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func expectAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
