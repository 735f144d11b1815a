// filepath: internal/repository/repository_test.go
package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"watchlist/internal/config"
	"watchlist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) *Repository {
	t.Helper()

	cfg := &config.Config{
		Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test_repo.db")},
	}
	repo, err := NewRepository(cfg)
	require.NoError(t, err, "Failed to create new repository")
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.MigrateUp(), "Failed to apply test migrations")
	return repo
}

func TestNewRepository(t *testing.T) {
	repo := setupTestDB(t)
	tables := []string{"users", "movies", "sessions"}
	for _, table := range tables {
		var name string
		err := repo.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		assert.NoError(t, err, "Table '%s' was not created", table)
	}
}

func TestNewRepository_Drivers(t *testing.T) {
	t.Run("Pure Go driver", func(t *testing.T) {
		cfg := &config.Config{
			Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test_modernc.db"), Driver: config.DriverPureGo},
		}
		repo, err := NewRepository(cfg)
		require.NoError(t, err)
		defer repo.Close()
		require.NoError(t, repo.MigrateUp())

		ctx := context.Background()
		user, err := repo.CreateUser(ctx, &UserCreateArgs{Name: "Test", Username: "test", Password: "123"})
		require.NoError(t, err)
		_, err = repo.CreateUser(ctx, &UserCreateArgs{Name: "Dup", Username: "test", Password: "123"})
		assert.ErrorIs(t, err, ErrUserExists)

		movie, err := repo.CreateMovie(ctx, &models.Movie{Title: "Leon", Year: "1994"})
		require.NoError(t, err)
		got, err := repo.GetMovie(ctx, movie.ID)
		require.NoError(t, err)
		assert.Equal(t, "Leon", got.Title)

		// Foreign keys are enforced: deleting the user removes its sessions.
		userID := user.ID
		now := time.Now()
		require.NoError(t, repo.CreateSession(ctx, &models.Session{ID: "01TESTSESSION", UserID: &userID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}))
		_, err = repo.DB.Exec("DELETE FROM users WHERE id = ?", userID)
		require.NoError(t, err)
		_, err = repo.GetSession(ctx, "01TESTSESSION")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		cfg := &config.Config{Database: config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "x.db"), Driver: "postgres"}}
		_, err := NewRepository(cfg)
		assert.Error(t, err)
	})
}

func TestUserCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	_, err := repo.GetOwner(ctx)
	assert.ErrorIs(t, err, ErrUserNotFound)

	created, err := repo.CreateUser(ctx, &UserCreateArgs{Name: "Test", Username: "test", Password: "123"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("123")))

	_, err = repo.CreateUser(ctx, &UserCreateArgs{Name: "Other", Username: "test", Password: "x"})
	assert.ErrorIs(t, err, ErrUserExists)

	owner, err := repo.GetOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "test", owner.Username)
	assert.Equal(t, "Test", owner.Name)

	var count int
	require.NoError(t, repo.DB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)

	t.Run("Update name invalidates cache", func(t *testing.T) {
		require.NoError(t, repo.UpdateUserName(ctx, created.ID, "Totoro"))
		owner, err := repo.GetOwner(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Totoro", owner.Name)

		byID, err := repo.GetUserByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Totoro", byID.Name)
	})

	t.Run("Update credentials", func(t *testing.T) {
		require.NoError(t, repo.UpdateUserCredentials(ctx, created.ID, "peter", "456"))
		owner, err := repo.GetOwner(ctx)
		require.NoError(t, err)
		assert.Equal(t, "peter", owner.Username)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("456")))

		// Empty password keeps the hash.
		require.NoError(t, repo.UpdateUserCredentials(ctx, created.ID, "peter", ""))
		owner, err = repo.GetOwner(ctx)
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte("456")))
	})

	t.Run("Unknown user", func(t *testing.T) {
		assert.ErrorIs(t, repo.UpdateUserName(ctx, 999, "x"), ErrUserNotFound)
		_, err := repo.GetUserByID(ctx, 999)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Schema rejects long name", func(t *testing.T) {
		assert.Error(t, repo.UpdateUserName(ctx, created.ID, "abcdefghijklmnopqrstu"))
	})
}

func TestLoadOwner_SeesWritesOfOtherHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.db")
	open := func() *Repository {
		repo, err := NewRepository(&config.Config{Database: config.DatabaseConfig{Path: path}})
		require.NoError(t, err)
		t.Cleanup(func() { repo.Close() })
		return repo
	}
	ctx := context.Background()

	admin := open()
	require.NoError(t, admin.MigrateUp())
	created, err := admin.CreateUser(ctx, &UserCreateArgs{Name: "Test", Username: "test", Password: "old"})
	require.NoError(t, err)

	server := open()
	cached, err := server.GetOwner(ctx)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(cached.PasswordHash), []byte("old")))

	require.NoError(t, admin.UpdateUserCredentials(ctx, created.ID, "test", "new"))

	fresh, err := server.LoadOwner(ctx)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.PasswordHash), []byte("new")))

	// LoadOwner refreshes the cache as well.
	cached, err = server.GetOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.PasswordHash, cached.PasswordHash)
}

func TestCreateUnclaimedOwner(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	created, err := repo.CreateUnclaimedOwner(ctx, "Grey Li")
	require.NoError(t, err)
	assert.False(t, created.HasPassword())

	owner, err := repo.GetOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Grey Li", owner.Name)
	assert.Equal(t, UnclaimedUsername, owner.Username)
	assert.False(t, owner.HasPassword())

	require.NoError(t, repo.UpdateUserCredentials(ctx, created.ID, "zxb", "123456"))
	owner, err = repo.GetOwner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Grey Li", owner.Name)
	assert.Equal(t, "zxb", owner.Username)
	assert.True(t, owner.HasPassword())
}

func TestMovieCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	movies, err := repo.GetMovies(ctx)
	require.NoError(t, err)
	assert.Empty(t, movies)

	first, err := repo.CreateMovie(ctx, &models.Movie{Title: "My Neighbor Totoro", Year: "1988"})
	require.NoError(t, err)
	second, err := repo.CreateMovie(ctx, &models.Movie{Title: "WALL-E", Year: "2008"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	movies, err = repo.GetMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "My Neighbor Totoro", movies[0].Title)
	assert.Equal(t, "WALL-E", movies[1].Title)

	first.Title = "Totoro"
	first.Year = "1989"
	require.NoError(t, repo.UpdateMovie(ctx, first))
	got, err := repo.GetMovie(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Totoro", got.Title)
	assert.Equal(t, "1989", got.Year)

	require.NoError(t, repo.DeleteMovie(ctx, first.ID))
	_, err = repo.GetMovie(ctx, first.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.ErrorIs(t, repo.DeleteMovie(ctx, first.ID), ErrMovieNotFound)
	assert.ErrorIs(t, repo.UpdateMovie(ctx, &models.Movie{ID: 999, Title: "x", Year: "2000"}), ErrMovieNotFound)

	require.NoError(t, repo.CreateMovies(ctx, []models.Movie{
		{Title: "Leon", Year: "1994"},
		{Title: "Mahjong", Year: "1996"},
	}))
	movies, err = repo.GetMovies(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, 3)
}

func TestSessionCRUD(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	user, err := repo.CreateUser(ctx, &UserCreateArgs{Name: "Test", Username: "test", Password: "123"})
	require.NoError(t, err)

	session := &models.Session{
		ID:        "01HZZZZZZZZZZZZZZZZZZZZZZZ",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, session))

	got, err := repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, got.UserID)
	assert.Empty(t, got.Flashes)
	assert.Equal(t, session.ExpiresAt.Unix(), got.ExpiresAt.Unix())

	got.UserID = &user.ID
	got.Flashes = []string{"Login success."}
	require.NoError(t, repo.UpdateSession(ctx, got))

	got, err = repo.GetSession(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got.UserID)
	assert.Equal(t, user.ID, *got.UserID)
	assert.Equal(t, []string{"Login success."}, got.Flashes)

	expired := &models.Session{
		ID:        "01HAAAAAAAAAAAAAAAAAAAAAAA",
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(-time.Hour),
	}
	require.NoError(t, repo.CreateSession(ctx, expired))

	n, err := repo.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = repo.GetSession(ctx, expired.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, repo.DeleteSession(ctx, session.ID))
	_, err = repo.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.UpdateSession(ctx, session), ErrSessionNotFound)
}
