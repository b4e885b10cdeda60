package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/songman/internal/repositories"
	"github.com/desertthunder/songman/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file when it is missing and initializes the configured store.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		if config, err = r.loadConfig(configPath); err != nil {
			return err
		}
		if err := config.Validate(); err != nil {
			return err
		}
		r.config = config
		r.writePlain("✓ Created %s\n", configPath)
	}

	r.logger.Info("initializing storage", "driver", config.Storage.Driver)

	store, err := repositories.Initialize(ctx, config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	songs, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to read store: %w", err)
	}

	location := config.Storage.Path
	if config.Storage.Driver == shared.DriverSQLite {
		location = config.Database.Path
	}

	r.writePlain("✓ Storage ready: %s (%s)\n", location, config.Storage.Driver)
	r.writePlain("  Songs: %d\n", len(songs))
	r.writePlainln("Run 'songman serve' to start the API.")
	return nil
}
