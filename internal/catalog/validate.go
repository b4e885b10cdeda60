package catalog

import (
	"errors"
	"net/url"
	"strings"

	"github.com/desertthunder/songman/internal/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// requiredFields lists the validated fields in the order their messages are reported.
var requiredFields = []string{"title", "artist", "album"}

// placeholderBase is the image service used when a song is created without an image.
const placeholderBase = "https://via.placeholder.com/200x200/6366f1/ffffff?text="

// componentUnescaper undoes the query escapes that encodeURIComponent leaves alone.
var componentUnescaper = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// Validate returns one message per missing field ("Title is required", ...), or nil when in is valid.
func Validate(in models.SongInput) []string {
	err := in.Validate()
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	details := make([]string, 0, len(errs))
	for _, field := range requiredFields {
		if fieldErr, ok := errs[field]; ok {
			details = append(details, fieldErr.Error())
		}
	}
	return details
}

// PlaceholderImageURL builds the deterministic fallback image reference for an album.
//
// The album is percent-encoded the way encodeURIComponent does it, so spaces become %20.
func PlaceholderImageURL(album string) string {
	return placeholderBase + componentUnescaper.Replace(url.QueryEscape(album))
}

// FindDuplicate returns the first song other than excludeID whose title and artist match, ignoring case.
func FindDuplicate(songs []models.Song, title, artist, excludeID string) *models.Song {
	title, artist = strings.TrimSpace(title), strings.TrimSpace(artist)
	for i := range songs {
		s := &songs[i]
		if excludeID != "" && s.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(s.Title), title) && strings.EqualFold(strings.TrimSpace(s.Artist), artist) {
			return s
		}
	}
	return nil
}

// indexOf returns the position of the song with id, or -1.
func indexOf(songs []models.Song, id string) int {
	for i, s := range songs {
		if s.ID == id {
			return i
		}
	}
	return -1
}
