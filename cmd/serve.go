package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/repositories"
	"github.com/desertthunder/songman/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve initializes the song store and runs the API until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if v := cmd.String("host"); v != "" {
		config.Server.Host = v
	}
	if v := cmd.String("data"); v != "" {
		config.Storage.Path = v
	}
	if v := cmd.String("driver"); v != "" {
		config.Storage.Driver = v
	}
	if err := config.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repositories.Initialize(ctx, &config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	defer store.Close()

	songs := catalog.New(store, catalog.CatalogOpts{Logger: r.logger})
	srv := server.NewServer(config.Server, songs, r.logger)

	r.logger.Info("starting server", "driver", config.Storage.Driver, "addr", srv.Addr())
	return srv.Run(ctx)
}
