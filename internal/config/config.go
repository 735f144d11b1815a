// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	Session  SessionConfig  `toml:"session"`

	SessionSecret string `toml:"-"` // Runtime secret (from env, flag, or file)

	SessionLifetime time.Duration `toml:"-"` // Runtime computed value
	CleanupInterval time.Duration `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host string `toml:"host,omitempty"`
	Port int    `toml:"port,omitempty"`
}

// SQLite driver names accepted in [database] driver.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path   string `toml:"path,omitempty"`
	Driver string `toml:"driver,omitempty"` // "sqlite3" (default) or "sqlite"
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level,omitempty"`
	AuditEnabled bool   `toml:"audit_enabled,omitempty"`
}

// SessionConfig holds settings for the login session cookie.
type SessionConfig struct {
	Secret          string `toml:"secret,omitempty"`           // Persisted signing secret
	Lifetime        string `toml:"lifetime,omitempty"`         // e.g. "7d", "12h"
	CookieName      string `toml:"cookie_name,omitempty"`      // defaults to watchlist_session
	SecureCookie    bool   `toml:"secure_cookie,omitempty"`    // set the Secure attribute
	CleanupInterval string `toml:"cleanup_interval,omitempty"` // how often expired sessions are pruned
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
// Used to persist the auto-generated session secret.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable durations.
func (c *Config) ParseAndValidate() error {
	if c.Session.Lifetime == "" {
		c.Session.Lifetime = "7d"
	}
	if c.Session.CleanupInterval == "" {
		c.Session.CleanupInterval = "1h"
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "watchlist_session"
	}

	lifetime, err := parseDuration(c.Session.Lifetime)
	if err != nil {
		return fmt.Errorf("invalid session lifetime: %w", err)
	}
	if lifetime <= 0 {
		return fmt.Errorf("invalid session lifetime: must be positive")
	}
	c.SessionLifetime = lifetime

	interval, err := parseDuration(c.Session.CleanupInterval)
	if err != nil {
		return fmt.Errorf("invalid session cleanup_interval: %w", err)
	}
	c.CleanupInterval = interval

	switch c.Database.Driver {
	case "":
		c.Database.Driver = DriverCGO
	case DriverCGO, DriverPureGo:
	default:
		return fmt.Errorf("invalid database driver: %q (use %q or %q)", c.Database.Driver, DriverCGO, DriverPureGo)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	return nil
}

// parseDuration parses strings like "30m", "12h" or "7d".
// time.ParseDuration has no day unit, so it is handled here.
func parseDuration(s string) (time.Duration, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(s|m|h|d)$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(s))
	if len(matches) != 3 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration number: %s", matches[1])
	}

	switch strings.ToLower(matches[2]) {
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "m":
		return time.Duration(value) * time.Minute, nil
	default:
		return time.Duration(value) * time.Second, nil
	}
}
