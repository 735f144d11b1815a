// filepath: internal/cli/root.go
package cli

import (
	"fmt"
	"os"
	"strings"

	"watchlist/internal/config"
	"watchlist/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const defaultConfigPath = "config.toml"

var (
	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile      string
	logLevel     string
	dbPath       string
	dbDriver     string
	host         string
	port         int
	secret       string
	auditEnabled bool
)

// RootCmd represents the base command when called without any subcommands.
// It starts the HTTP server.
var RootCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Watchlist web application",
	Long:  `A single-user movie watchlist served as a small web application.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", defaultConfigPath, "Path to the configuration file. (Env: WATCHLIST_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: WATCHLIST_LOG_LEVEL)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "database", "", "Path to the SQLite database file. (Env: WATCHLIST_DATABASE_PATH)")
	RootCmd.PersistentFlags().StringVar(&dbDriver, "database-driver", "", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go). (Env: WATCHLIST_DATABASE_DRIVER)")

	for _, cmd := range []*cobra.Command{RootCmd, serveCmd} {
		registerServeFlags(cmd.Flags())
	}
	RootCmd.AddCommand(serveCmd)
}

func registerServeFlags(fs *pflag.FlagSet) {
	fs.StringVar(&host, "host", "", "Address the HTTP server binds to. (Env: WATCHLIST_HOST)")
	fs.IntVar(&port, "port", 0, "Port for the HTTP server. (Env: WATCHLIST_PORT)")
	fs.StringVar(&secret, "secret", "", "Secret key for signing session tokens. (Env: WATCHLIST_SECRET_KEY)")
	fs.BoolVar(&auditEnabled, "audit-enabled", false, "Enable audit logging. (Env: WATCHLIST_AUDIT_ENABLED=true)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	if envPath := os.Getenv("WATCHLIST_CONFIG_PATH"); envPath != "" && !cmd.Flags().Changed("config_path") {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	if err := applyOverrides(cfg, cmd); err != nil {
		return err
	}

	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logging.Init(cfg.Logging.Level)
	return nil
}

// overrides maps config keys to their environment variable and flag.
var overrides = []struct {
	key  string
	env  string
	flag string
}{
	{"server.host", "WATCHLIST_HOST", "host"},
	{"server.port", "WATCHLIST_PORT", "port"},
	{"database.path", "WATCHLIST_DATABASE_PATH", "database"},
	{"database.driver", "WATCHLIST_DATABASE_DRIVER", "database-driver"},
	{"logging.level", "WATCHLIST_LOG_LEVEL", "log-level"},
	{"logging.audit_enabled", "WATCHLIST_AUDIT_ENABLED", "audit-enabled"},
	{"session.secret", "WATCHLIST_SECRET_KEY", "secret"},
}

// applyOverrides layers environment variables and then flags over the file
// values, and fills defaults for anything still empty.
func applyOverrides(c *config.Config, cmd *cobra.Command) error {
	v := viper.New()
	for _, o := range overrides {
		if err := v.BindEnv(o.key, o.env); err != nil {
			return fmt.Errorf("failed to bind %s: %w", o.env, err)
		}
		// Flags only exist on the commands that define them.
		if f := cmd.Flags().Lookup(o.flag); f != nil {
			if err := v.BindPFlag(o.key, f); err != nil {
				return fmt.Errorf("failed to bind --%s: %w", o.flag, err)
			}
		}
	}

	if v.IsSet("server.host") {
		c.Server.Host = v.GetString("server.host")
	}
	if v.IsSet("server.port") {
		c.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("database.path") {
		c.Database.Path = v.GetString("database.path")
	}
	if v.IsSet("database.driver") {
		c.Database.Driver = v.GetString("database.driver")
	}
	if v.IsSet("logging.level") {
		c.Logging.Level = strings.ToLower(v.GetString("logging.level"))
	}
	if v.IsSet("logging.audit_enabled") {
		c.Logging.AuditEnabled = v.GetBool("logging.audit_enabled")
	}
	// A secret from env or flag is used for this run only and never persisted.
	if v.IsSet("session.secret") {
		c.SessionSecret = v.GetString("session.secret")
	}

	// --- Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Database.Path == "" {
		c.Database.Path = "data.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	return nil
}
