// filepath: internal/initconfig/init.go
package initconfig

import (
	"context"
	"fmt"
	"os"

	"watchlist/internal/logging"
	"watchlist/internal/models"
	"watchlist/internal/services"

	"github.com/BurntSushi/toml"
)

// Load reads a seed file.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file '%s': %w", path, err)
	}

	var seed Seed
	if _, err := toml.Decode(string(data), &seed); err != nil {
		return nil, fmt.Errorf("failed to parse TOML seed file '%s': %w", path, err)
	}
	logging.Log.Infof("Found %d movie(s) in seed file '%s'.", len(seed.Movies), path)
	return &seed, nil
}

// Run applies a seed: it names the owner, creating one without credentials
// on an empty store, and inserts the movies.
func Run(ctx context.Context, users services.UserService, movies services.MovieService, seed *Seed) error {
	if seed.Name != "" {
		if err := renameOwner(ctx, users, seed.Name); err != nil {
			return err
		}
	}

	list := make([]models.Movie, 0, len(seed.Movies))
	for _, m := range seed.Movies {
		list = append(list, models.Movie{Title: m.Title, Year: m.Year})
	}
	if err := movies.SeedMovies(ctx, list); err != nil {
		return fmt.Errorf("failed to seed movies: %w", err)
	}
	logging.Log.Infof("Seeded %d movie(s).", len(list))
	return nil
}

func renameOwner(ctx context.Context, users services.UserService, name string) error {
	owner, err := users.SetOwnerName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to set owner name: %w", err)
	}
	logging.Log.Infof("Owner name set to '%s'.", owner.Name)
	return nil
}
