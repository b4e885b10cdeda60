package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/songman/internal/shared"
	"github.com/desertthunder/songman/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Import creates songs from the tags of audio files below a directory.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: directory to import", shared.ErrMissingArgument)
	}
	if err := r.requireAPI(); err != nil {
		return err
	}

	opts := tasks.ImportOpts{
		NumWorkers:   cmd.Int("workers"),
		RateLimit:    cmd.Float("rate"),
		DryRun:       cmd.Bool("dry-run"),
		ManifestPath: cmd.String("manifest"),
	}

	r.logger.Info("starting import", "dir", dir, "workers", opts.NumWorkers, "dry_run", opts.DryRun)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := r.drainProgress(progressCh, func(u tasks.ProgressUpdate) string {
		switch u.Phase {
		case tasks.ScanFiles:
			return "📂 " + u.Message
		case tasks.CreateSongs:
			return "   " + u.Message
		default:
			return ""
		}
	})

	result, err := r.engine.Import(ctx, progressCh, dir, opts)
	close(progressCh)
	<-done

	if err != nil && result == nil {
		return err
	}

	title := "Import Complete!"
	if result.DryRun {
		title = "Import Plan (dry run)"
	}
	r.writePlain("\n")
	r.writePlainHeader(title)
	r.writePlain("Files:      %d\n", result.TotalFiles)
	if result.DryRun {
		r.writePlain("Would add:  %d\n", result.Planned)
	} else {
		r.writePlain("Created:    %d\n", result.Created)
	}
	r.writePlain("Duplicates: %d\n", result.Duplicates)
	r.writePlain("Invalid:    %d\n", result.Invalid)
	r.writePlain("Failed:     %d\n", result.Failed)

	if result.Invalid+result.Failed > 0 {
		r.writePlainln("Problems:")
		for _, entry := range result.Entries {
			if entry.Status == tasks.StatusInvalid || entry.Status == tasks.StatusFailed {
				r.writePlain("  - %s: %v\n", entry.File, entry.Err)
			}
		}
	}
	if result.ManifestPath != "" {
		r.writePlainln("Manifest written to %s", result.ManifestPath)
	}

	return err
}
