package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// JSONFileStore keeps the catalog in a single JSON document.
//
// Load never fails: a missing file is an empty catalog, and an unreadable or corrupt file
// is logged and also treated as empty. Records that cannot be decoded are skipped, and the
// document is copied to [JSONFileStore.BackupPath] so the next Save does not lose it.
type JSONFileStore struct {
	path   string
	logger *log.Logger
}

// NewJSONFileStore creates a store backed by the file at path.
func NewJSONFileStore(path string, logger *log.Logger) *JSONFileStore {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &JSONFileStore{path: path, logger: shared.WithLogger(logger, "store", "json")}
}

// Path returns the location of the backing document.
func (s *JSONFileStore) Path() string { return s.path }

// Exists reports whether the backing document has been created.
func (s *JSONFileStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

func (s *JSONFileStore) Load(ctx context.Context) ([]models.Song, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("failed to read songs", "path", s.path, "error", err)
		}
		return []models.Song{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.Error("failed to parse songs", "path", s.path, "error", err)
		s.preserve(data)
		return []models.Song{}, nil
	}

	songs := make([]models.Song, 0, len(records))
	for i, record := range records {
		var song models.Song
		if err := json.Unmarshal(record, &song); err != nil {
			s.logger.Warn("skipping unreadable song", "path", s.path, "index", i, "error", err)
			continue
		}
		songs = append(songs, song)
	}
	if len(songs) < len(records) {
		s.preserve(data)
	}
	return songs, nil
}

// BackupPath is where a document that could not be fully read is copied before the next Save replaces it.
func (s *JSONFileStore) BackupPath() string { return s.path + ".corrupt" }

func (s *JSONFileStore) preserve(data []byte) {
	if err := os.WriteFile(s.BackupPath(), data, 0644); err != nil {
		s.logger.Error("failed to back up unreadable songs", "path", s.BackupPath(), "error", err)
		return
	}
	s.logger.Warn("unreadable songs backed up", "path", s.BackupPath())
}

// Save writes songs to a temporary file next to the document and renames it into place.
func (s *JSONFileStore) Save(ctx context.Context, songs []models.Song) error {
	if songs == nil {
		songs = []models.Song{}
	}

	data, err := shared.MarshalJSON(songs, true)
	if err != nil {
		return fmt.Errorf("%w: failed to encode songs: %v", shared.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", shared.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %v", shared.ErrStorage, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: failed to write songs: %v", shared.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %v", shared.ErrStorage, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: failed to replace %s: %v", shared.ErrStorage, s.path, err)
	}

	s.logger.Debug("songs saved", "path", s.path, "count", len(songs))
	return nil
}

func (s *JSONFileStore) FindByID(ctx context.Context, id string) (*models.Song, error) {
	songs, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range songs {
		if songs[i].ID == id {
			return &songs[i], nil
		}
	}
	return nil, shared.ErrSongNotFound
}

func (s *JSONFileStore) Close() error { return nil }
