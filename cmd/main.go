package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/songman/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnvFiles(".env"); err != nil {
		logger.Warn("failed to load .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})

	app := &cli.Command{
		Name:     "songman",
		Usage:    "Serve, browse and manage a song catalog",
		Version:  "1.0.0",
		Flags:    runner.globalFlags(),
		Before:   runner.configure,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		var verr *shared.ValidationError
		if errors.As(err, &verr) {
			for _, d := range verr.Details {
				logger.Error(d)
			}
			os.Exit(1)
		}
		logger.Fatalf("application error: %v", err)
	}
}
