// filepath: internal/cli/serve.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"watchlist/internal/audit"
	"watchlist/internal/config"
	"watchlist/internal/housekeeping"
	"watchlist/internal/httpserver"
	"watchlist/internal/httpserver/handlers"
	"watchlist/internal/logging"
	"watchlist/internal/repository"
	"watchlist/internal/services"
	"watchlist/internal/services/auth"
	"watchlist/internal/web"
)

// shutdownTimeout bounds how long in-flight requests may take on shutdown.
const shutdownTimeout = 30 * time.Second

// resolveSecret makes sure cfg.SessionSecret is set. A secret from env or
// flag wins; otherwise the one stored in the config file is used, and when
// there is none a new one is generated and written back.
func resolveSecret() error {
	if cfg.SessionSecret != "" {
		return nil
	}
	if cfg.Session.Secret != "" {
		logging.Log.Infof("Using session secret loaded from %s.", cfgFile)
		cfg.SessionSecret = cfg.Session.Secret
		return nil
	}

	logging.Log.Info("Generating new random session secret...")
	newSecret, err := auth.GenerateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate session secret: %w", err)
	}
	cfg.Session.Secret = newSecret
	cfg.SessionSecret = newSecret
	if err := persistSecret(newSecret); err != nil {
		logging.Log.Warnf("Failed to save new session secret to %s: %v", cfgFile, err)
	} else {
		logging.Log.Infof("New session secret saved to %s.", cfgFile)
	}
	return nil
}

// persistSecret writes secret into the config file as it is on disk.
// Defaults and env or flag overrides of this run are not written.
func persistSecret(secret string) error {
	onDisk, err := config.LoadConfig(cfgFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		onDisk = &config.Config{}
	}
	onDisk.Session.Secret = secret
	return config.SaveConfig(cfgFile, onDisk)
}

// openRepository connects to the database, migrates a fresh one and
// refuses to continue on an outdated schema.
func openRepository() (*repository.Repository, error) {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	if err := repo.EnsureSchemaBootstrapped(); err != nil {
		repo.Close()
		logging.Log.Errorf("Failed to bootstrap database: %v", err)
		return nil, err
	}

	if err := repo.ValidateSchema(); err != nil {
		repo.Close()
		logging.Log.Error("---------------------------------------------------------------")
		logging.Log.Errorf("CRITICAL DATABASE ERROR: %v", err)
		logging.Log.Error("---------------------------------------------------------------")
		return nil, err
	}
	return repo, nil
}

// buildRouter wires services, sessions and handlers on top of repo.
func buildRouter(repo *repository.Repository) (http.Handler, error) {
	movieService := services.NewMovieService(repo)
	userService := services.NewUserService(repo)
	sessionService := auth.NewSessionService(cfg, repo, userService)
	loggerAuditor := audit.NewLoggerAuditor(cfg.Logging.AuditEnabled)

	views, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	h := handlers.NewHandlers(movieService, userService, sessionService, loggerAuditor, views)
	return httpserver.SetupRouter(h, auth.NewMiddleware(sessionService)), nil
}

// runServer starts the HTTP server and blocks until SIGINT or SIGTERM.
func runServer() error {
	if err := resolveSecret(); err != nil {
		return err
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	if owner, err := repo.LoadOwner(context.Background()); errors.Is(err, repository.ErrUserNotFound) || (err == nil && !owner.HasPassword()) {
		logging.Log.Warn("No login configured. Run 'watchlist admin --username <name> --password <pass>' to enable login.")
	}

	router, err := buildRouter(repo)
	if err != nil {
		return err
	}

	housekeepingService := housekeeping.NewService(housekeeping.Dependencies{Sessions: repo}, cfg.CleanupInterval)
	housekeepingService.Start()
	// No defer stop here, we stop explicitly during graceful shutdown

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              serverAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logging.Log.Infof("Server starting on %s", serverAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-stop:
		logging.Log.Info("Shutting down server...")
	case err := <-serverErr:
		housekeepingService.Stop()
		return fmt.Errorf("server failed to start: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	housekeepingService.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logging.Log.Info("Server exiting")
	return nil
}
