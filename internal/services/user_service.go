// filepath: internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Compile-time check to ensure interface is implemented
var _ UserService = (*userService)(nil)

// userService handles business logic for the watchlist owner.
type userService struct {
	Repo UserStore
}

// NewUserService creates a new UserService.
func NewUserService(repo UserStore) *userService {
	return &userService{Repo: repo}
}

// GetOwner returns the single user of the application, or ErrNotFound.
func (s *userService) GetOwner(ctx context.Context) (*models.User, error) {
	user, err := s.Repo.GetOwner(ctx)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

// GetUserByID retrieves a user by id.
func (s *userService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err)
	}
	return user, nil
}

// Authenticate checks the submitted credentials against the stored owner.
// The owner is read from the database, not the cache, so credentials set
// by the admin command in another process apply immediately.
// Empty fields yield ErrValidation; a wrong username or password, or a store
// without a usable user, yields ErrInvalidCredentials.
func (s *userService) Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if err := ValidateCredentials(creds); err != nil {
		return nil, err
	}

	owner, err := s.Repo.LoadOwner(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logging.Log.Warn("UserService: Login attempted but no user exists. Run 'watchlist admin'.")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !owner.HasPassword() {
		logging.Log.Warn("UserService: Login attempted but the owner has no password. Run 'watchlist admin'.")
		return nil, ErrInvalidCredentials
	}

	if creds.Username != owner.Username {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return owner, nil
}

// UpdateName validates and stores a new display name.
func (s *userService) UpdateName(ctx context.Context, id int64, name string) (*models.User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateUserName(ctx, id, name); err != nil {
		return nil, mapUserError(err)
	}
	return s.GetUserByID(ctx, id)
}

// SetOwnerName renames the owner. On an empty store it creates an owner
// without credentials, which the admin command later completes.
func (s *userService) SetOwnerName(ctx context.Context, name string) (*models.User, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	owner, err := s.Repo.LoadOwner(ctx)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		user, err := s.Repo.CreateUnclaimedOwner(ctx, name)
		if err != nil {
			return nil, mapUserError(err)
		}
		logging.Log.Infof("Owner '%s' created without credentials. Run 'watchlist admin' to enable login.", name)
		return user, nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}
	return s.UpdateName(ctx, owner.ID, name)
}

// UpsertAdmin creates the owner if none exists, otherwise replaces the
// owner's username and password and keeps its display name.
// It reports whether a user was created.
func (s *userService) UpsertAdmin(ctx context.Context, username, password string) (bool, error) {
	if err := ValidateCredentials(models.Credentials{Username: username, Password: password}); err != nil {
		return false, err
	}
	if err := ValidateUsername(username); err != nil {
		return false, err
	}

	owner, err := s.Repo.LoadOwner(ctx)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return false, fmt.Errorf("failed to check for admin user: %w", err)
	}

	if owner == nil {
		if _, err := s.Repo.CreateUser(ctx, &repository.UserCreateArgs{
			Name:     "Admin",
			Username: username,
			Password: password,
		}); err != nil {
			return false, mapUserError(err)
		}
		logging.Log.Infof("Admin user '%s' created successfully.", username)
		return true, nil
	}

	if err := s.Repo.UpdateUserCredentials(ctx, owner.ID, username, password); err != nil {
		return false, mapUserError(err)
	}
	logging.Log.Infof("Admin user updated to '%s'.", username)
	return false, nil
}

func mapUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return fmt.Errorf("user: %w", ErrNotFound)
	case errors.Is(err, repository.ErrUserExists):
		return fmt.Errorf("user: %w", ErrConflict)
	default:
		return err
	}
}
