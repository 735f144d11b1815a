// filepath: internal/repository/repository.go
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"watchlist/internal/config"
	"watchlist/internal/db/migrations"
	"watchlist/internal/logging"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3" // SQLite driver (cgo), registered as "sqlite3"
	"github.com/patrickmn/go-cache"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver, registered as "sqlite"
)

// Repository errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrMovieNotFound   = errors.New("movie not found")
	ErrSessionNotFound = errors.New("session not found")
)

// migrationsDir is the root of the embedded migration FS.
const migrationsDir = "."

// Repository is the SQLite backed store for users, movies and sessions.
type Repository struct {
	DB      *sql.DB
	Cache   *cache.Cache
	Builder squirrel.StatementBuilderType // SQL Query Builder
}

// dataSource returns the driver name and DSN for the configured driver.
// Both drivers get the same busy timeout and foreign key enforcement.
func dataSource(dbCfg config.DatabaseConfig) (string, string, error) {
	switch dbCfg.Driver {
	case "", config.DriverCGO:
		return config.DriverCGO, fmt.Sprintf("%s?_busy_timeout=5000&_foreign_keys=on", dbCfg.Path), nil
	case config.DriverPureGo:
		return config.DriverPureGo, fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", dbCfg.Path), nil
	default:
		return "", "", fmt.Errorf("unsupported database driver: %q", dbCfg.Driver)
	}
}

// NewRepository opens the SQLite database at cfg.Database.Path.
// The schema is not touched; see EnsureSchemaBootstrapped and MigrateUp.
func NewRepository(cfg *config.Config) (*Repository, error) {
	driver, dsn, err := dataSource(cfg.Database)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logging.Log.Debugf("Repository: opened database at '%s' (driver %s)", cfg.Database.Path, driver)

	return &Repository{
		DB:      db,
		Cache:   cache.New(5*time.Minute, 10*time.Minute),
		Builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question).RunWith(db),
	}, nil
}

// Close closes the underlying database handle.
func (s *Repository) Close() error {
	return s.DB.Close()
}

func setupGoose() error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(logging.Log)
	return goose.SetDialect("sqlite3")
}

// MigrateUp applies all pending migrations.
func (s *Repository) MigrateUp() error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Up(s.DB, migrationsDir)
}

// MigrateDown rolls back the most recent migration.
func (s *Repository) MigrateDown() error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Down(s.DB, migrationsDir)
}

// MigrateReset rolls back every applied migration. All data is lost.
func (s *Repository) MigrateReset() error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	s.Cache.Flush()
	return goose.Reset(s.DB, migrationsDir)
}

// MigrationStatus logs the state of every migration.
func (s *Repository) MigrationStatus() error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.Status(s.DB, migrationsDir)
}

// EnsureSchemaBootstrapped migrates a brand new database to the latest version.
// A database that already has a goose version table is left alone so that
// upgrades stay an explicit 'migrate up'.
func (s *Repository) EnsureSchemaBootstrapped() error {
	var name string
	err := s.DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='goose_db_version'").Scan(&name)
	if err == nil {
		logging.Log.Debug("Repository: migration table found, skipping bootstrap.")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}

	logging.Log.Info("Fresh database detected. Applying migrations...")
	return s.MigrateUp()
}

// ValidateSchema returns an error if the database is not at the latest migration.
func (s *Repository) ValidateSchema() error {
	if err := setupGoose(); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	all, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	if err != nil {
		return fmt.Errorf("failed to collect migrations: %w", err)
	}
	latest, err := all.Last()
	if err != nil {
		return fmt.Errorf("failed to find latest migration: %w", err)
	}

	current, err := goose.GetDBVersion(s.DB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if current < latest.Version {
		return fmt.Errorf("database schema is outdated (version %d, expected %d): run 'watchlist migrate up'", current, latest.Version)
	}
	return nil
}
