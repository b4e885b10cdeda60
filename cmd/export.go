package main

import (
	"context"

	"github.com/desertthunder/songman/internal/formatter"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export pages through the catalog and writes it in the requested format.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireAPI(); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.ExportOpts{
		Format: format,
		Output: cmd.String("output"),
		Query: models.SongQuery{
			Search:    cmd.String("search"),
			SortBy:    cmd.String("sort-by"),
			SortOrder: cmd.String("order"),
		},
		PageSize: cmd.Int("page-size"),
		Name:     cmd.String("name"),
	}

	r.logger.Info("starting export", "format", format, "output", opts.Output)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(progressCh, func(u tasks.ProgressUpdate) string {
		return "📥 " + u.Message
	})

	result, err := r.engine.Export(ctx, progressCh, opts)
	close(progressCh)
	<-done

	if err != nil {
		return err
	}

	r.writePlainln("✓ Exported %d songs", result.Songs)
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}
	return nil
}
