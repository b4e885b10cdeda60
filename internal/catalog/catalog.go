package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// Catalog runs the song lifecycle operations against a [models.SongStore].
type Catalog struct {
	store  models.SongStore
	logger *log.Logger
	now    func() time.Time
	newID  func() string
}

// CatalogOpts contains optional collaborators for [New].
type CatalogOpts struct {
	Logger *log.Logger
	Now    func() time.Time // clock for timestamps; defaults to time.Now in UTC
	NewID  func() string    // id generator; defaults to shared.GenerateID
}

// New creates a Catalog over store.
func New(store models.SongStore, opts CatalogOpts) *Catalog {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = shared.GenerateID
	}

	return &Catalog{
		store:  store,
		logger: shared.WithLogger(opts.Logger, "component", "catalog"),
		now:    opts.Now,
		newID:  opts.NewID,
	}
}

// List returns one filtered, sorted page of songs.
func (c *Catalog) List(ctx context.Context, q models.SongQuery) (*models.SongPage, error) {
	songs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	page, pagination := Query(songs, q)
	return &models.SongPage{Songs: page, Pagination: pagination}, nil
}

// Get returns the song with id.
func (c *Catalog) Get(ctx context.Context, id string) (*models.Song, error) {
	song, err := c.store.FindByID(ctx, id)
	switch {
	case errors.Is(err, shared.ErrSongNotFound):
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	case err != nil:
		c.logger.Error("failed to find song", "id", id, "error", err)
		return nil, storageError("find", err)
	}
	return song, nil
}

// Create validates in, rejects duplicates, and appends a new song to the store.
func (c *Catalog) Create(ctx context.Context, in models.SongInput) (*models.Song, error) {
	if err := shared.NewValidationError(Validate(in)); err != nil {
		return nil, err
	}
	in = in.Trimmed()

	songs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	if dup := FindDuplicate(songs, in.Title, in.Artist, ""); dup != nil {
		return nil, fmt.Errorf("%w: %q by %q (id %s)", shared.ErrDuplicateSong, in.Title, in.Artist, dup.ID)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL(in.Album)
	}

	now := c.now()
	song := models.Song{
		ID:        c.newID(),
		Title:     in.Title,
		Artist:    in.Artist,
		Album:     in.Album,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.save(ctx, append(songs, song)); err != nil {
		return nil, err
	}

	c.logger.Info("song created", "id", song.ID, "title", song.Title, "artist", song.Artist)
	return &song, nil
}

// Update replaces the title, artist, album and (when given) image of the song with id.
//
// The id and creation time are preserved; the modification time is refreshed.
func (c *Catalog) Update(ctx context.Context, id string, in models.SongInput) (*models.Song, error) {
	songs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	if err := shared.NewValidationError(Validate(in)); err != nil {
		return nil, err
	}
	in = in.Trimmed()

	if dup := FindDuplicate(songs, in.Title, in.Artist, id); dup != nil {
		return nil, fmt.Errorf("%w: %q by %q (id %s)", shared.ErrDuplicateSong, in.Title, in.Artist, dup.ID)
	}

	song := songs[i]
	song.Title = in.Title
	song.Artist = in.Artist
	song.Album = in.Album
	if in.ImageURL != "" {
		song.ImageURL = in.ImageURL
	}
	song.UpdatedAt = c.now()
	if song.UpdatedAt.Before(song.CreatedAt) {
		song.UpdatedAt = song.CreatedAt
	}
	songs[i] = song

	if err := c.save(ctx, songs); err != nil {
		return nil, err
	}

	c.logger.Info("song updated", "id", song.ID)
	return &song, nil
}

// Delete removes the song with id and returns it.
func (c *Catalog) Delete(ctx context.Context, id string) (*models.Song, error) {
	songs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(songs, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	removed := songs[i]
	remaining := append(songs[:i:i], songs[i+1:]...)

	if err := c.save(ctx, remaining); err != nil {
		return nil, err
	}

	c.logger.Info("song deleted", "id", removed.ID)
	return &removed, nil
}

// Stats aggregates the whole catalog.
func (c *Catalog) Stats(ctx context.Context) (*models.Stats, error) {
	songs, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeStats(songs)
	return &stats, nil
}

func (c *Catalog) load(ctx context.Context) ([]models.Song, error) {
	songs, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Error("failed to load songs", "error", err)
		return nil, storageError("load", err)
	}
	return songs, nil
}

func (c *Catalog) save(ctx context.Context, songs []models.Song) error {
	if err := c.store.Save(ctx, songs); err != nil {
		c.logger.Error("failed to save songs", "error", err)
		return storageError("save", err)
	}
	return nil
}

func storageError(op string, err error) error {
	if errors.Is(err, shared.ErrStorage) {
		return fmt.Errorf("%s songs: %w", op, err)
	}
	return fmt.Errorf("%s songs: %w: %v", op, shared.ErrStorage, err)
}
