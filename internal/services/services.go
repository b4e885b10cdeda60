// package services implements clients for the song catalog HTTP API
package services

import (
	"context"

	"github.com/desertthunder/songman/internal/models"
)

// SongAPI is the catalog surface reachable over HTTP.
//
// [SongClient] implements it; the import task and the terminal browser depend on this interface.
type SongAPI interface {
	// List returns one page of songs matching q.
	List(ctx context.Context, q models.SongQuery) (*models.SongPage, error)

	// Get returns a song by id, or shared.ErrSongNotFound.
	Get(ctx context.Context, id string) (*models.Song, error)

	// Create adds a song. Validation failures come back as *shared.ValidationError and
	// duplicates as shared.ErrDuplicateSong.
	Create(ctx context.Context, in models.SongInput) (*models.Song, error)

	// Update replaces the fields of an existing song.
	Update(ctx context.Context, id string, in models.SongInput) (*models.Song, error)

	// Delete removes a song and returns it.
	Delete(ctx context.Context, id string) (*models.Song, error)

	// Stats returns catalog-wide statistics.
	Stats(ctx context.Context) (*models.Stats, error)

	// Health reports whether the API is up.
	Health(ctx context.Context) (*Health, error)
}

// Health is the body of GET /api/health.
type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
