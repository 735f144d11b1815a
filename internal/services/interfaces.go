// filepath: internal/services/interfaces.go
package services

import (
	"context"

	"watchlist/internal/models"
	"watchlist/internal/repository"
)

// Auditor defines the interface for recording security-relevant events.
type Auditor interface {
	// Log records an event.
	// action: what happened (e.g., "movie.create", "session.login")
	// actor: who did it (username, or "anonymous")
	// resource: what was affected (e.g., "movie:3")
	// details: structured metadata about the event
	Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{})
}

// MovieService defines the interface for the movie service.
type MovieService interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	CreateMovie(ctx context.Context, in models.MovieInput) (*models.Movie, error)
	UpdateMovie(ctx context.Context, id int64, in models.MovieInput) (*models.Movie, error)
	DeleteMovie(ctx context.Context, id int64) error
	SeedMovies(ctx context.Context, movies []models.Movie) error
}

// UserService defines the interface for the user service.
type UserService interface {
	GetOwner(ctx context.Context) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	Authenticate(ctx context.Context, creds models.Credentials) (*models.User, error)
	UpdateName(ctx context.Context, id int64, name string) (*models.User, error)
	SetOwnerName(ctx context.Context, name string) (*models.User, error)
	UpsertAdmin(ctx context.Context, username, password string) (created bool, err error)
}

// MovieStore is the persistence the movie service depends on.
type MovieStore interface {
	GetMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	CreateMovies(ctx context.Context, movies []models.Movie) error
	UpdateMovie(ctx context.Context, movie *models.Movie) error
	DeleteMovie(ctx context.Context, id int64) error
}

// UserStore is the persistence the user service depends on.
type UserStore interface {
	GetOwner(ctx context.Context) (*models.User, error)
	LoadOwner(ctx context.Context) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, args *repository.UserCreateArgs) (*models.User, error)
	CreateUnclaimedOwner(ctx context.Context, name string) (*models.User, error)
	UpdateUserName(ctx context.Context, id int64, name string) error
	UpdateUserCredentials(ctx context.Context, id int64, username, password string) error
}

var (
	_ MovieStore = (*repository.Repository)(nil)
	_ UserStore  = (*repository.Repository)(nil)
)
