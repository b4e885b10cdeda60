package catalog

import (
	"testing"

	"github.com/desertthunder/songman/internal/models"
)

func TestValidate(t *testing.T) {
	tc := []struct {
		name string
		in   models.SongInput
		want []string
	}{
		{"valid", models.SongInput{Title: "T", Artist: "A", Album: "B"}, nil},
		{"all missing", models.SongInput{}, []string{"Title is required", "Artist is required", "Album is required"}},
		{"whitespace only", models.SongInput{Title: " ", Artist: "\t", Album: "B"}, []string{"Title is required", "Artist is required"}},
		{"album missing", models.SongInput{Title: "T", Artist: "A"}, []string{"Album is required"}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Validate() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("Validate()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlaceholderImageURL(t *testing.T) {
	tc := map[string]string{
		"Thriller":             "https://via.placeholder.com/200x200/6366f1/ffffff?text=Thriller",
		"A Night at the Opera": "https://via.placeholder.com/200x200/6366f1/ffffff?text=A%20Night%20at%20the%20Opera",
		"Help!":                "https://via.placeholder.com/200x200/6366f1/ffffff?text=Help!",
		"R&B":                  "https://via.placeholder.com/200x200/6366f1/ffffff?text=R%26B",
		"(What's the Story)":   "https://via.placeholder.com/200x200/6366f1/ffffff?text=(What's%20the%20Story)",
	}
	for album, want := range tc {
		if got := PlaceholderImageURL(album); got != want {
			t.Errorf("PlaceholderImageURL(%q) = %q, want %q", album, got, want)
		}
	}
}

func TestFindDuplicate(t *testing.T) {
	songs := []models.Song{
		{ID: "1", Title: "Imagine", Artist: "John Lennon"},
		{ID: "2", Title: "Yesterday", Artist: "The Beatles"},
	}

	t.Run("Case Insensitive Match", func(t *testing.T) {
		if d := FindDuplicate(songs, " imagine ", "JOHN LENNON", ""); d == nil || d.ID != "1" {
			t.Errorf("expected song 1, got %+v", d)
		}
	})

	t.Run("Excluded ID Is Skipped", func(t *testing.T) {
		if d := FindDuplicate(songs, "Imagine", "John Lennon", "1"); d != nil {
			t.Errorf("expected no duplicate, got %+v", d)
		}
	})

	t.Run("Title Alone Does Not Match", func(t *testing.T) {
		if d := FindDuplicate(songs, "Imagine", "Someone Else", ""); d != nil {
			t.Errorf("expected no duplicate, got %+v", d)
		}
	})
}
