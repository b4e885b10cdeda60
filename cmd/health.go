package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// Health calls GET /api/health on the configured server.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPI(); err != nil {
		return err
	}

	health, err := r.api.Health(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(health, true)
	}

	r.writePlain("✓ %s: %s\n", health.Status, health.Message)
	r.writePlain("  Timestamp: %s\n", health.Timestamp)
	return nil
}
