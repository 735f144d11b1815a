// filepath: internal/repository/movie_repo.go
package repository

import (
	"context"
	"database/sql"
	"errors"

	"watchlist/internal/models"

	"github.com/Masterminds/squirrel"
)

// GetMovies returns every movie in insertion order.
func (s *Repository) GetMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := s.Builder.Select("id", "title", "year").From("movies").OrderBy("id ASC").QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]models.Movie, 0)
	for rows.Next() {
		var movie models.Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.Year); err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// GetMovie retrieves a single movie by id.
func (s *Repository) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	row := s.Builder.Select("id", "title", "year").From("movies").Where(squirrel.Eq{"id": id}).QueryRowContext(ctx)

	var movie models.Movie
	if err := row.Scan(&movie.ID, &movie.Title, &movie.Year); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &movie, nil
}

// CreateMovie inserts a movie and returns it with its generated id.
func (s *Repository) CreateMovie(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	result, err := s.Builder.Insert("movies").
		Columns("title", "year").
		Values(movie.Title, movie.Year).
		ExecContext(ctx)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	created := *movie
	created.ID = id
	return &created, nil
}

// CreateMovies inserts several movies in one transaction.
func (s *Repository) CreateMovies(ctx context.Context, movies []models.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() // Rollback on any error

	insert := squirrel.Insert("movies").Columns("title", "year").RunWith(tx)
	for _, movie := range movies {
		insert = insert.Values(movie.Title, movie.Year)
	}
	if _, err := insert.ExecContext(ctx); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateMovie overwrites title and year of an existing movie.
func (s *Repository) UpdateMovie(ctx context.Context, movie *models.Movie) error {
	result, err := s.Builder.Update("movies").
		Set("title", movie.Title).
		Set("year", movie.Year).
		Where(squirrel.Eq{"id": movie.ID}).
		ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrMovieNotFound)
}

// DeleteMovie removes a movie by id.
func (s *Repository) DeleteMovie(ctx context.Context, id int64) error {
	result, err := s.Builder.Delete("movies").Where(squirrel.Eq{"id": id}).ExecContext(ctx)
	if err != nil {
		return err
	}
	return expectAffected(result, ErrMovieNotFound)
}
