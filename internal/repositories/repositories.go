package repositories

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// Store is a [models.SongStore] that owns resources released by Close.
type Store interface {
	models.SongStore
	Close() error
}

// Initialize opens the store selected by cfg.Storage.Driver.
//
// A store that did not exist before the call is seeded with [SampleSongs] when
// cfg.Storage.Seed is set. Any error here should abort startup.
func Initialize(ctx context.Context, cfg *shared.Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	switch cfg.Storage.Driver {
	case shared.DriverJSON, "":
		return initJSON(ctx, cfg, logger)
	case shared.DriverSQLite:
		return initSQLite(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", shared.ErrInvalidConfig, cfg.Storage.Driver)
	}
}

func initJSON(ctx context.Context, cfg *shared.Config, logger *log.Logger) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create data directory: %v", shared.ErrStorage, err)
	}

	store := NewJSONFileStore(cfg.Storage.Path, logger)
	if store.Exists() {
		return store, nil
	}

	songs := []models.Song{}
	if cfg.Storage.Seed {
		songs = SampleSongs(time.Now().UTC())
	}
	if err := store.Save(ctx, songs); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", cfg.Storage.Path, err)
	}

	logger.Info("sample data initialized", "path", cfg.Storage.Path, "songs", len(songs))
	return store, nil
}

func initSQLite(ctx context.Context, cfg *shared.Config, logger *log.Logger) (Store, error) {
	db, err := shared.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}
	shared.ConfigureDatabase(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns)

	applied, err := shared.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	store := NewSQLiteStore(db, logger)
	if applied == 0 || !cfg.Storage.Seed {
		return store, nil
	}

	n, err := store.Count(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if n > 0 {
		return store, nil
	}

	songs := SampleSongs(time.Now().UTC())
	if err := store.Save(ctx, songs); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed %s: %w", cfg.Database.Path, err)
	}

	logger.Info("sample data initialized", "path", cfg.Database.Path, "songs", len(songs))
	return store, nil
}
