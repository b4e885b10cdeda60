// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// MemoryStore is an in-memory [models.SongStore].
//
// Load and Save copy the slice so callers never share backing arrays with the store.
type MemoryStore struct {
	mu    sync.Mutex
	songs []models.Song
	Saves int
}

func NewMemoryStore(songs ...models.Song) *MemoryStore {
	return &MemoryStore{songs: append([]models.Song(nil), songs...)}
}

func (m *MemoryStore) Load(ctx context.Context) ([]models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Song{}, m.songs...), nil
}

func (m *MemoryStore) Save(ctx context.Context, songs []models.Song) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.songs = append([]models.Song{}, songs...)
	m.Saves++
	return nil
}

func (m *MemoryStore) FindByID(ctx context.Context, id string) (*models.Song, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.songs {
		if s.ID == id {
			found := s
			return &found, nil
		}
	}
	return nil, shared.ErrSongNotFound
}

// FailingStore loads its seed songs but fails every Save (and Load, when LoadErr is set).
type FailingStore struct {
	Songs   []models.Song
	LoadErr error
}

func (f *FailingStore) Load(ctx context.Context) ([]models.Song, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return append([]models.Song{}, f.Songs...), nil
}

func (f *FailingStore) Save(ctx context.Context, songs []models.Song) error {
	return errors.Join(shared.ErrStorage, errors.New("disk full"))
}

func (f *FailingStore) FindByID(ctx context.Context, id string) (*models.Song, error) {
	songs, err := f.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range songs {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, shared.ErrSongNotFound
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
