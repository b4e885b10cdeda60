package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

const selectSongs = `
	SELECT id, title, artist, album, image_url, created_at, updated_at
	FROM songs
`

// SQLiteStore keeps the catalog in the songs table.
//
// The position column preserves record-set order; timestamps are stored as RFC 3339 text.
type SQLiteStore struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLiteStore creates a store over an open database whose migrations have been applied.
func NewSQLiteStore(db *sql.DB, logger *log.Logger) *SQLiteStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SQLiteStore{db: db, logger: shared.WithLogger(logger, "store", "sqlite")}
}

func (s *SQLiteStore) Load(ctx context.Context) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, selectSongs+" ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query songs: %v", shared.ErrStorage, err)
	}
	defer rows.Close()

	songs := []models.Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, *song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate songs: %v", shared.ErrStorage, err)
	}
	return songs, nil
}

// Save replaces every row with songs inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, songs []models.Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin transaction: %v", shared.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM songs"); err != nil {
		return fmt.Errorf("%w: failed to clear songs: %v", shared.ErrStorage, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO songs (id, position, title, artist, album, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare insert: %v", shared.ErrStorage, err)
	}
	defer stmt.Close()

	for i, song := range songs {
		_, err := stmt.ExecContext(ctx,
			song.ID,
			i,
			song.Title,
			song.Artist,
			song.Album,
			song.ImageURL,
			formatTime(song.CreatedAt),
			formatTime(song.UpdatedAt),
		)
		if err != nil {
			return fmt.Errorf("%w: failed to insert song %s: %v", shared.ErrStorage, song.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit songs: %v", shared.ErrStorage, err)
	}

	s.logger.Debug("songs saved", "count", len(songs))
	return nil
}

func (s *SQLiteStore) FindByID(ctx context.Context, id string) (*models.Song, error) {
	song, err := scanSong(s.db.QueryRowContext(ctx, selectSongs+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrSongNotFound
	}
	return song, err
}

// Count returns the number of stored songs.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM songs").Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: failed to count songs: %v", shared.ErrStorage, err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (*models.Song, error) {
	var (
		song                 models.Song
		createdAt, updatedAt string
	)

	err := row.Scan(&song.ID, &song.Title, &song.Artist, &song.Album, &song.ImageURL, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan song: %v", shared.ErrStorage, err)
	}

	if song.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("%w: song %s created_at: %v", shared.ErrStorage, song.ID, err)
	}
	if song.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("%w: song %s updated_at: %v", shared.ErrStorage, song.ID, err)
	}
	return &song, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return models.ParseTimestamp(s)
}
