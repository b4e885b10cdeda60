package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
	tu "github.com/desertthunder/songman/internal/testing"
)

// fakeClock advances by one second on every call.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("song-%d", n)
	}
}

func newTestCatalog(store models.SongStore) *Catalog {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(store, CatalogOpts{
		Logger: shared.NewLogger(io.Discard),
		Now:    clock.Now,
		NewID:  sequentialIDs(),
	})
}

func TestCatalogCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Round Trips Through Get", func(t *testing.T) {
		c := newTestCatalog(tu.NewMemoryStore())
		created, err := c.Create(ctx, models.SongInput{Title: "Imagine", Artist: "John Lennon", Album: "Imagine"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := c.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *got != *created {
			t.Errorf("Get = %+v, want %+v", got, created)
		}
		if !created.CreatedAt.Equal(created.UpdatedAt) {
			t.Errorf("createdAt %v != updatedAt %v", created.CreatedAt, created.UpdatedAt)
		}
	})

	t.Run("Trims Fields And Fills Placeholder", func(t *testing.T) {
		c := newTestCatalog(tu.NewMemoryStore())
		created, err := c.Create(ctx, models.SongInput{Title: "  Hey Jude ", Artist: "The Beatles  ", Album: " Hey Jude"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Title != "Hey Jude" || created.Artist != "The Beatles" || created.Album != "Hey Jude" {
			t.Errorf("fields not trimmed: %+v", created)
		}
		want := "https://via.placeholder.com/200x200/6366f1/ffffff?text=Hey%20Jude"
		if created.ImageURL != want {
			t.Errorf("imageUrl = %q, want %q", created.ImageURL, want)
		}
	})

	t.Run("Keeps Provided Image", func(t *testing.T) {
		c := newTestCatalog(tu.NewMemoryStore())
		created, err := c.Create(ctx, models.SongInput{Title: "T", Artist: "A", Album: "B", ImageURL: "http://img/x.png"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ImageURL != "http://img/x.png" {
			t.Errorf("imageUrl = %q", created.ImageURL)
		}
	})

	t.Run("Assigns Unique IDs", func(t *testing.T) {
		c := New(tu.NewMemoryStore(), CatalogOpts{Logger: shared.NewLogger(io.Discard)})
		seen := map[string]bool{}
		for i := range 20 {
			s, err := c.Create(ctx, models.SongInput{Title: fmt.Sprintf("Song %d", i), Artist: "A", Album: "B"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if seen[s.ID] {
				t.Fatalf("duplicate id %s", s.ID)
			}
			seen[s.ID] = true
		}
	})

	t.Run("Validation Lists Every Missing Field", func(t *testing.T) {
		store := tu.NewMemoryStore()
		c := newTestCatalog(store)
		_, err := c.Create(ctx, models.SongInput{Title: "   ", Album: "X"})

		var verr *shared.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if !errors.Is(err, shared.ErrValidation) {
			t.Error("expected error to match ErrValidation")
		}
		want := []string{"Title is required", "Artist is required"}
		if len(verr.Details) != len(want) {
			t.Fatalf("details = %v, want %v", verr.Details, want)
		}
		for i := range want {
			if verr.Details[i] != want[i] {
				t.Errorf("details[%d] = %q, want %q", i, verr.Details[i], want[i])
			}
		}
		if store.Saves != 0 {
			t.Error("store should not be written on validation failure")
		}
	})

	t.Run("Rejects Case Insensitive Duplicate", func(t *testing.T) {
		store := tu.NewMemoryStore()
		c := newTestCatalog(store)
		if _, err := c.Create(ctx, models.SongInput{Title: "Imagine", Artist: "John Lennon", Album: "Imagine"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := c.Create(ctx, models.SongInput{Title: "IMAGINE", Artist: " john lennon", Album: "Other"})
		if !errors.Is(err, shared.ErrDuplicateSong) {
			t.Fatalf("expected ErrDuplicateSong, got %v", err)
		}

		songs, _ := store.Load(ctx)
		if len(songs) != 1 {
			t.Errorf("expected 1 song, got %d", len(songs))
		}
	})

	t.Run("Same Title Different Artist Is Allowed", func(t *testing.T) {
		c := newTestCatalog(tu.NewMemoryStore())
		if _, err := c.Create(ctx, models.SongInput{Title: "Respect", Artist: "Aretha Franklin", Album: "X"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := c.Create(ctx, models.SongInput{Title: "Respect", Artist: "Otis Redding", Album: "Y"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestCatalogUpdate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Catalog, *models.Song, *models.Song) {
		t.Helper()
		c := newTestCatalog(tu.NewMemoryStore())
		a, err := c.Create(ctx, models.SongInput{Title: "Imagine", Artist: "John Lennon", Album: "Imagine", ImageURL: "http://img/a"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := c.Create(ctx, models.SongInput{Title: "Yesterday", Artist: "The Beatles", Album: "Help!"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return c, a, b
	}

	t.Run("Preserves ID And CreatedAt", func(t *testing.T) {
		c, a, _ := setup(t)
		updated, err := c.Update(ctx, a.ID, models.SongInput{Title: "Imagine (Remastered)", Artist: "John Lennon", Album: "Imagine"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ID != a.ID || !updated.CreatedAt.Equal(a.CreatedAt) {
			t.Errorf("identity changed: %+v vs %+v", updated, a)
		}
		if !updated.UpdatedAt.After(a.UpdatedAt) {
			t.Errorf("updatedAt %v not after %v", updated.UpdatedAt, a.UpdatedAt)
		}
		if updated.ImageURL != "http://img/a" {
			t.Errorf("image should be kept when omitted, got %q", updated.ImageURL)
		}
	})

	t.Run("Replaces Image When Given", func(t *testing.T) {
		c, a, _ := setup(t)
		updated, err := c.Update(ctx, a.ID, models.SongInput{Title: "Imagine", Artist: "John Lennon", Album: "Imagine", ImageURL: "http://img/b"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.ImageURL != "http://img/b" {
			t.Errorf("imageUrl = %q", updated.ImageURL)
		}
	})

	t.Run("Own Pair Is Not A Duplicate", func(t *testing.T) {
		c, a, _ := setup(t)
		if _, err := c.Update(ctx, a.ID, models.SongInput{Title: "imagine", Artist: "JOHN LENNON", Album: "New Album"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("Another Song's Pair Is A Duplicate", func(t *testing.T) {
		c, a, _ := setup(t)
		_, err := c.Update(ctx, a.ID, models.SongInput{Title: "yesterday", Artist: "the beatles", Album: "Imagine"})
		if !errors.Is(err, shared.ErrDuplicateSong) {
			t.Fatalf("expected ErrDuplicateSong, got %v", err)
		}
		got, _ := c.Get(ctx, a.ID)
		if got.Title != "Imagine" {
			t.Errorf("song changed despite conflict: %+v", got)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		c, _, _ := setup(t)
		_, err := c.Update(ctx, "missing", models.SongInput{})
		if !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
	})

	t.Run("Invalid Input", func(t *testing.T) {
		c, a, _ := setup(t)
		_, err := c.Update(ctx, a.ID, models.SongInput{Title: "X"})
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Clock Skew Never Moves UpdatedAt Before CreatedAt", func(t *testing.T) {
		created := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
		store := tu.NewMemoryStore(models.Song{ID: "x", Title: "T", Artist: "A", Album: "B", CreatedAt: created, UpdatedAt: created})
		c := newTestCatalog(store)
		updated, err := c.Update(ctx, "x", models.SongInput{Title: "T2", Artist: "A", Album: "B"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if updated.UpdatedAt.Before(updated.CreatedAt) {
			t.Errorf("updatedAt %v before createdAt %v", updated.UpdatedAt, updated.CreatedAt)
		}
	})
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(tu.NewMemoryStore())

	a, _ := c.Create(ctx, models.SongInput{Title: "One", Artist: "A", Album: "X"})
	b, _ := c.Create(ctx, models.SongInput{Title: "Two", Artist: "A", Album: "X"})

	t.Run("Returns Removed Song", func(t *testing.T) {
		removed, err := c.Delete(ctx, a.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if *removed != *a {
			t.Errorf("removed = %+v, want %+v", removed, a)
		}
	})

	t.Run("Deleted Song Is Gone", func(t *testing.T) {
		if _, err := c.Get(ctx, a.ID); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound, got %v", err)
		}
		if _, err := c.Delete(ctx, a.ID); !errors.Is(err, shared.ErrSongNotFound) {
			t.Errorf("expected ErrSongNotFound on second delete, got %v", err)
		}
	})

	t.Run("Other Songs Remain", func(t *testing.T) {
		if _, err := c.Get(ctx, b.ID); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestCatalogStorageFailures(t *testing.T) {
	ctx := context.Background()
	seed := models.Song{ID: "s1", Title: "T", Artist: "A", Album: "B"}

	t.Run("Save Failure", func(t *testing.T) {
		c := newTestCatalog(&tu.FailingStore{Songs: []models.Song{seed}})

		_, err := c.Create(ctx, models.SongInput{Title: "New", Artist: "A", Album: "B"})
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("create: expected ErrStorage, got %v", err)
		}
		_, err = c.Update(ctx, "s1", models.SongInput{Title: "New", Artist: "A", Album: "B"})
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("update: expected ErrStorage, got %v", err)
		}
		_, err = c.Delete(ctx, "s1")
		if !errors.Is(err, shared.ErrStorage) {
			t.Errorf("delete: expected ErrStorage, got %v", err)
		}
	})

	t.Run("Load Failure", func(t *testing.T) {
		c := newTestCatalog(&tu.FailingStore{LoadErr: errors.New("unreadable")})

		if _, err := c.List(ctx, models.SongQuery{}); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("list: expected ErrStorage, got %v", err)
		}
		if _, err := c.Get(ctx, "s1"); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("get: expected ErrStorage, got %v", err)
		}
		if _, err := c.Stats(ctx); !errors.Is(err, shared.ErrStorage) {
			t.Errorf("stats: expected ErrStorage, got %v", err)
		}
	})
}

// TestCatalogScenario walks the full lifecycle against an empty catalog.
func TestCatalogScenario(t *testing.T) {
	ctx := context.Background()
	c := newTestCatalog(tu.NewMemoryStore())

	created, err := c.Create(ctx, models.SongInput{Title: "Hey Jude", Artist: "The Beatles", Album: "Hey Jude"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := c.List(ctx, models.SongQuery{Search: "beatles"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.TotalSongs != 1 || page.Songs[0].ID != created.ID {
		t.Fatalf("unexpected list: %+v", page)
	}

	if _, err := c.Create(ctx, models.SongInput{Title: "hey jude", Artist: "the beatles", Album: "Past Masters"}); !errors.Is(err, shared.ErrDuplicateSong) {
		t.Fatalf("expected duplicate, got %v", err)
	}

	updated, err := c.Update(ctx, created.ID, models.SongInput{Title: "Hey Jude", Artist: "The Beatles", Album: "Past Masters"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Album != "Past Masters" {
		t.Errorf("album = %q", updated.Album)
	}

	stats, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalSongs != 1 || stats.MostPopularArtist == nil || stats.MostPopularArtist.Name != "The Beatles" {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if _, err := c.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, created.ID); !errors.Is(err, shared.ErrSongNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	page, _ = c.List(ctx, models.SongQuery{})
	if page.Pagination.TotalSongs != 0 || len(page.Songs) != 0 {
		t.Errorf("expected empty catalog, got %+v", page)
	}
}
