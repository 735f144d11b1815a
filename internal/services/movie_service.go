// filepath: internal/services/movie_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/repository"
)

// Compile-time check to ensure interface is implemented
var _ MovieService = (*movieService)(nil)

// movieService handles business logic for watchlist entries.
type movieService struct {
	Repo MovieStore
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo MovieStore) *movieService {
	return &movieService{Repo: repo}
}

// ListMovies returns all movies in insertion order.
func (s *movieService) ListMovies(ctx context.Context) ([]models.Movie, error) {
	return s.Repo.GetMovies(ctx)
}

// GetMovie returns a movie or ErrNotFound.
func (s *movieService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	movie, err := s.Repo.GetMovie(ctx, id)
	if err != nil {
		return nil, mapMovieError(id, err)
	}
	return movie, nil
}

// CreateMovie validates the input and inserts a new movie.
func (s *movieService) CreateMovie(ctx context.Context, in models.MovieInput) (*models.Movie, error) {
	if err := ValidateMovieInput(in); err != nil {
		return nil, err
	}

	movie, err := s.Repo.CreateMovie(ctx, &models.Movie{Title: in.Title, Year: in.Year})
	if err != nil {
		logging.Log.Errorf("MovieService: Failed to create movie '%s': %v", in.Title, err)
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	logging.Log.Debugf("MovieService: Created movie %d ('%s')", movie.ID, movie.Title)
	return movie, nil
}

// UpdateMovie validates the input and overwrites an existing movie.
// The movie is looked up first so an unknown id is reported before any
// validation failure.
func (s *movieService) UpdateMovie(ctx context.Context, id int64, in models.MovieInput) (*models.Movie, error) {
	movie, err := s.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateMovieInput(in); err != nil {
		return nil, err
	}

	updated := *movie
	updated.Title = in.Title
	updated.Year = in.Year
	if err := s.Repo.UpdateMovie(ctx, &updated); err != nil {
		return nil, mapMovieError(id, err)
	}
	return &updated, nil
}

// DeleteMovie removes a movie or returns ErrNotFound.
func (s *movieService) DeleteMovie(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteMovie(ctx, id); err != nil {
		return mapMovieError(id, err)
	}
	logging.Log.Debugf("MovieService: Deleted movie %d", id)
	return nil
}

// SeedMovies validates and bulk inserts movies, e.g. for the forge command.
func (s *movieService) SeedMovies(ctx context.Context, movies []models.Movie) error {
	for _, m := range movies {
		if err := ValidateMovieInput(models.MovieInput{Title: m.Title, Year: m.Year}); err != nil {
			return fmt.Errorf("movie '%s': %w", m.Title, err)
		}
	}
	return s.Repo.CreateMovies(ctx, movies)
}

func mapMovieError(id int64, err error) error {
	if errors.Is(err, repository.ErrMovieNotFound) {
		return fmt.Errorf("movie %d: %w", id, ErrNotFound)
	}
	return err
}
