package catalog

import (
	"testing"
	"time"

	"github.com/desertthunder/songman/internal/models"
)

func TestComputeStats(t *testing.T) {
	t.Run("Empty Catalog", func(t *testing.T) {
		s := ComputeStats(nil)
		if s.TotalSongs != 0 || s.TotalArtists != 0 || s.TotalAlbums != 0 {
			t.Errorf("expected zero counts, got %+v", s)
		}
		if s.MostPopularArtist != nil {
			t.Errorf("expected nil most popular artist, got %+v", s.MostPopularArtist)
		}
		if s.RecentlyAdded == nil || len(s.RecentlyAdded) != 0 {
			t.Errorf("expected empty non-nil recently added, got %v", s.RecentlyAdded)
		}
	})

	t.Run("Counts Distinct Artists And Albums", func(t *testing.T) {
		s := ComputeStats(sampleSongs())
		if s.TotalSongs != 7 || s.TotalArtists != 7 || s.TotalAlbums != 7 {
			t.Errorf("unexpected counts: %+v", s)
		}
	})

	t.Run("Most Popular Artist", func(t *testing.T) {
		songs := []models.Song{
			{ID: "1", Artist: "Queen", Album: "A"},
			{ID: "2", Artist: "Beatles", Album: "B"},
			{ID: "3", Artist: "Beatles", Album: "B"},
			{ID: "4", Artist: "Queen", Album: "C"},
			{ID: "5", Artist: "Beatles", Album: "D"},
		}
		s := ComputeStats(songs)
		if s.MostPopularArtist == nil || s.MostPopularArtist.Name != "Beatles" || s.MostPopularArtist.SongCount != 3 {
			t.Errorf("unexpected most popular artist: %+v", s.MostPopularArtist)
		}
		if s.TotalArtists != 2 || s.TotalAlbums != 4 {
			t.Errorf("unexpected counts: %+v", s)
		}
	})

	t.Run("Tie Keeps First Seen Artist", func(t *testing.T) {
		songs := []models.Song{
			{ID: "1", Artist: "Queen"},
			{ID: "2", Artist: "Beatles"},
		}
		s := ComputeStats(songs)
		if s.MostPopularArtist.Name != "Queen" {
			t.Errorf("expected Queen, got %s", s.MostPopularArtist.Name)
		}
	})

	t.Run("Recently Added Is Newest Five", func(t *testing.T) {
		songs := sampleSongs()
		s := ComputeStats(songs)
		if len(s.RecentlyAdded) != 5 {
			t.Fatalf("expected 5 recent songs, got %d", len(s.RecentlyAdded))
		}
		want := []string{"id-07", "id-06", "id-05", "id-04", "id-03"}
		for i, id := range want {
			if s.RecentlyAdded[i].ID != id {
				t.Errorf("recent[%d] = %s, want %s", i, s.RecentlyAdded[i].ID, id)
			}
		}
		if songs[0].ID != "id-01" {
			t.Error("ComputeStats reordered its input")
		}
	})

	t.Run("Fewer Than Five", func(t *testing.T) {
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		songs := []models.Song{
			{ID: "old", CreatedAt: at},
			{ID: "new", CreatedAt: at.Add(time.Minute)},
		}
		s := ComputeStats(songs)
		if len(s.RecentlyAdded) != 2 || s.RecentlyAdded[0].ID != "new" {
			t.Errorf("unexpected recent list: %+v", s.RecentlyAdded)
		}
	})
}
