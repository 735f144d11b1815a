// filepath: internal/services/mocks/store_mock.go
package mocks

import (
	"context"

	"watchlist/internal/models"
	"watchlist/internal/repository"
	"watchlist/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockMovieStore is a mock implementation of services.MovieStore
type MockMovieStore struct {
	mock.Mock
}

var _ services.MovieStore = (*MockMovieStore)(nil)

func (m *MockMovieStore) GetMovies(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieStore) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieStore) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	args := m.Called(ctx, movie)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieStore) CreateMovies(ctx context.Context, movies []models.Movie) error {
	args := m.Called(ctx, movies)
	return args.Error(0)
}

func (m *MockMovieStore) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieStore) DeleteMovie(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserStore is a mock implementation of services.UserStore
type MockUserStore struct {
	mock.Mock
}

var _ services.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) GetOwner(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) LoadOwner(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) CreateUnclaimedOwner(ctx context.Context, name string) (*models.User, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) CreateUser(ctx context.Context, cArgs *repository.UserCreateArgs) (*models.User, error) {
	args := m.Called(ctx, cArgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateUserName(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserStore) UpdateUserCredentials(ctx context.Context, id int64, username, password string) error {
	args := m.Called(ctx, id, username, password)
	return args.Error(0)
}
