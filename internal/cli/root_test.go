// filepath: internal/cli/root_test.go
package cli

import (
	"os"
	"path/filepath"
	"testing"

	"watchlist/internal/config"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper to reset the global config and flags between tests
func resetGlobals() {
	cfg = nil
	cfgFile = defaultConfigPath
	logLevel = ""
	dbPath = ""
	dbDriver = ""
	host = ""
	port = 0
	secret = ""
	auditEnabled = false
	dropTables = false
	seedFile = ""
	adminUsername = ""
	adminPassword = ""
}

// newServeCmd returns a bare command carrying the serve flags, parsed from args.
func newServeCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&cfgFile, "config_path", defaultConfigPath, "")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "")
	cmd.Flags().StringVar(&dbPath, "database", "", "")
	cmd.Flags().StringVar(&dbDriver, "database-driver", "", "")
	registerServeFlags(cmd.Flags())
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestConfigPrecedence(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nonexistent.toml")

	t.Run("Defaults", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", missing)))

		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
		assert.Equal(t, 5000, cfg.Server.Port)
		assert.Equal(t, "data.db", cfg.Database.Path)
		assert.Equal(t, config.DriverCGO, cfg.Database.Driver)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "watchlist_session", cfg.Session.CookieName)
		assert.False(t, cfg.Logging.AuditEnabled)
	})

	t.Run("Environment Overrides Defaults", func(t *testing.T) {
		resetGlobals()
		t.Setenv("WATCHLIST_PORT", "9090")
		t.Setenv("WATCHLIST_LOG_LEVEL", "WARN")
		t.Setenv("WATCHLIST_AUDIT_ENABLED", "true")
		t.Setenv("WATCHLIST_DATABASE_DRIVER", "sqlite")

		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", missing)))
		assert.Equal(t, config.DriverPureGo, cfg.Database.Driver)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "warn", cfg.Logging.Level)
		assert.True(t, cfg.Logging.AuditEnabled)
	})

	t.Run("Flags Override Environment", func(t *testing.T) {
		resetGlobals()
		t.Setenv("WATCHLIST_PORT", "9090")
		t.Setenv("WATCHLIST_DATABASE_PATH", "env.db")

		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", missing, "--port", "7070", "--database", "flag.db")))

		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, "flag.db", cfg.Database.Path)
	})

	t.Run("Config File Loading", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		content := []byte(`
[server]
port = 6060
[database]
path = "file.db"
[logging]
level = "error"
[session]
secret = "from-file"
lifetime = "12h"
`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", path)))

		assert.Equal(t, 6060, cfg.Server.Port)
		assert.Equal(t, "file.db", cfg.Database.Path)
		assert.Equal(t, "error", cfg.Logging.Level)
		assert.Equal(t, "from-file", cfg.Session.Secret)
		assert.Empty(t, cfg.SessionSecret, "file secret is resolved at serve time")
	})

	t.Run("Environment Overrides File", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 6060\n"), 0644))
		t.Setenv("WATCHLIST_PORT", "9090")

		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", path)))
		assert.Equal(t, 9090, cfg.Server.Port)
	})

	t.Run("Config Path From Environment", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "env_config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 4040\n"), 0644))
		t.Setenv("WATCHLIST_CONFIG_PATH", path)

		require.NoError(t, initializeConfig(newServeCmd(t)))
		assert.Equal(t, path, cfgFile)
		assert.Equal(t, 4040, cfg.Server.Port)
	})

	t.Run("Invalid File", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[server\n"), 0644))

		assert.Error(t, initializeConfig(newServeCmd(t, "--config_path", path)))
	})

	t.Run("Invalid Driver", func(t *testing.T) {
		resetGlobals()
		assert.Error(t, initializeConfig(newServeCmd(t, "--config_path", missing, "--database-driver", "postgres")))
	})

	t.Run("Invalid Lifetime", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[session]\nlifetime = \"soon\"\n"), 0644))

		assert.Error(t, initializeConfig(newServeCmd(t, "--config_path", path)))
	})
}

func TestResolveSecret(t *testing.T) {
	t.Run("Flag secret is not persisted", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", path, "--secret", "from-flag")))

		require.NoError(t, resolveSecret())
		assert.Equal(t, "from-flag", cfg.SessionSecret)
		assert.Empty(t, cfg.Session.Secret)
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Generated secret is saved", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", path)))

		require.NoError(t, resolveSecret())
		assert.Len(t, cfg.SessionSecret, 64)

		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.SessionSecret, saved.Session.Secret)
	})

	t.Run("Overrides are not saved with the secret", func(t *testing.T) {
		resetGlobals()
		path := filepath.Join(t.TempDir(), "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), 0644))
		require.NoError(t, initializeConfig(newServeCmd(t, "--config_path", path, "--port", "8080", "--database", "other.db")))

		require.NoError(t, resolveSecret())

		saved, err := config.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg.SessionSecret, saved.Session.Secret)
		assert.Equal(t, "warn", saved.Logging.Level)
		assert.Zero(t, saved.Server.Port)
		assert.Empty(t, saved.Server.Host)
		assert.Empty(t, saved.Database.Path)
		assert.Empty(t, saved.Session.Lifetime)
	})

	t.Run("File secret is reused", func(t *testing.T) {
		resetGlobals()
		cfg = &config.Config{Session: config.SessionConfig{Secret: "stored"}}

		require.NoError(t, resolveSecret())
		assert.Equal(t, "stored", cfg.SessionSecret)
	})
}
