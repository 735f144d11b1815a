// filepath: internal/services/mocks/movie_mock.go
package mocks

import (
	"context"

	"watchlist/internal/models"
	"watchlist/internal/services"

	"github.com/stretchr/testify/mock"
)

// MockMovieService is a mock implementation of services.MovieService
type MockMovieService struct {
	mock.Mock
}

// Compile-time check to ensure interface compliance
var _ services.MovieService = (*MockMovieService)(nil)

func (m *MockMovieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Movie), args.Error(1)
}

func (m *MockMovieService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) CreateMovie(ctx context.Context, in models.MovieInput) (*models.Movie, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) UpdateMovie(ctx context.Context, id int64, in models.MovieInput) (*models.Movie, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Movie), args.Error(1)
}

func (m *MockMovieService) DeleteMovie(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieService) SeedMovies(ctx context.Context, movies []models.Movie) error {
	args := m.Called(ctx, movies)
	return args.Error(0)
}
