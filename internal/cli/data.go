// filepath: internal/cli/data.go
package cli

import (
	"context"
	"errors"
	"fmt"

	"watchlist/internal/initconfig"
	"watchlist/internal/logging"
	"watchlist/internal/repository"
	"watchlist/internal/services"

	"github.com/spf13/cobra"
)

var (
	dropTables    bool
	seedFile      string
	adminUsername string
	adminPassword string
)

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runInitDB(dropTables); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Initialized database.")
		return nil
	},
}

var forgeCmd = &cobra.Command{
	Use:   "forge",
	Short: "Fill the database with demo data",
	Long:  `Sets the owner's display name and inserts a list of movies, either the built-in demo list or the one from a TOML seed file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runForge(cmd.Context(), seedFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Done.")
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create the owner account or change its credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdmin(cmd, adminUsername, adminPassword)
	},
}

func init() {
	initdbCmd.Flags().BoolVar(&dropTables, "drop", false, "Drop all tables before creating them.")
	forgeCmd.Flags().StringVar(&seedFile, "from", "", "TOML seed file with a name and [[movie]] entries.")
	adminCmd.Flags().StringVar(&adminUsername, "username", "", "The username used to login.")
	adminCmd.Flags().StringVar(&adminPassword, "password", "", "The password used to login.")
	_ = adminCmd.MarkFlagRequired("username")
	_ = adminCmd.MarkFlagRequired("password")

	RootCmd.AddCommand(initdbCmd)
	RootCmd.AddCommand(forgeCmd)
	RootCmd.AddCommand(adminCmd)
}

func runInitDB(drop bool) error {
	repo, err := repository.NewRepository(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer repo.Close()

	if drop {
		logging.Log.Warn("Dropping all tables...")
		if err := repo.MigrateReset(); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}
	if err := repo.MigrateUp(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

func runForge(ctx context.Context, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	seed := initconfig.DefaultSeed()
	if path != "" {
		var err error
		if seed, err = initconfig.Load(path); err != nil {
			return err
		}
	}

	repo, err := openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	return initconfig.Run(ctx, services.NewUserService(repo), services.NewMovieService(repo), seed)
}

func runAdmin(cmd *cobra.Command, username, password string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	repo, err := openRepository()
	if err != nil {
		return err
	}
	defer repo.Close()

	users := services.NewUserService(repo)
	_, err = users.GetOwner(ctx)
	switch {
	case err == nil:
		fmt.Fprintln(out, "Updating user...")
	case errors.Is(err, services.ErrNotFound):
		fmt.Fprintln(out, "Creating new user...")
	default:
		return err
	}

	if _, err := users.UpsertAdmin(ctx, username, password); err != nil {
		return fmt.Errorf("failed to save admin user: %w", err)
	}
	fmt.Fprintln(out, "Done.")
	return nil
}
