// package models defines the data model for the song catalog service
package models

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Song is one catalog entry. The JSON names match the persisted document layout.
type Song struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Album     string    `json:"album"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// sortTimeLayout keeps every fractional digit, unlike [time.RFC3339Nano].
const sortTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SortValue returns the value of the named JSON field used for ordering.
//
// Timestamps use a fixed-width UTC layout so their text order is chronological; unknown fields yield "".
func (s Song) SortValue(field string) string {
	switch field {
	case "id":
		return s.ID
	case "title":
		return s.Title
	case "artist":
		return s.Artist
	case "album":
		return s.Album
	case "imageUrl":
		return s.ImageURL
	case "createdAt":
		return s.CreatedAt.UTC().Format(sortTimeLayout)
	case "updatedAt":
		return s.UpdatedAt.UTC().Format(sortTimeLayout)
	default:
		return ""
	}
}

// SongInput is the body of create and update requests.
type SongInput struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (in SongInput) Trimmed() SongInput {
	return SongInput{
		Title:    strings.TrimSpace(in.Title),
		Artist:   strings.TrimSpace(in.Artist),
		Album:    strings.TrimSpace(in.Album),
		ImageURL: strings.TrimSpace(in.ImageURL),
	}
}

// Validate checks that title, artist and album are present after trimming.
//
// The returned error is a [validation.Errors] keyed by JSON field name.
func (in SongInput) Validate() error {
	t := in.Trimmed()
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required.Error("Title is required")),
		validation.Field(&t.Artist, validation.Required.Error("Artist is required")),
		validation.Field(&t.Album, validation.Required.Error("Album is required")),
	)
}

// Sort directions accepted by [SongQuery.SortOrder].
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Listing defaults applied when a query omits or garbles a value.
const (
	DefaultPage   = 1
	DefaultLimit  = 10
	DefaultSortBy = "title"
)

// SongQuery holds the list parameters: free-text search, ordering and paging.
type SongQuery struct {
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Pagination describes where a page sits within the filtered result set.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalSongs  int  `json:"totalSongs"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// SongPage is one page of a listing.
type SongPage struct {
	Songs      []Song     `json:"songs"`
	Pagination Pagination `json:"pagination"`
}

// ArtistCount names an artist and how many songs they have in the catalog.
type ArtistCount struct {
	Name      string `json:"name"`
	SongCount int    `json:"songCount"`
}

// Stats summarizes the whole catalog.
type Stats struct {
	TotalSongs        int          `json:"totalSongs"`
	TotalArtists      int          `json:"totalArtists"`
	TotalAlbums       int          `json:"totalAlbums"`
	MostPopularArtist *ArtistCount `json:"mostPopularArtist"`
	RecentlyAdded     []Song       `json:"recentlyAdded"`
}

// SongStore is the persistence contract for the catalog.
//
// Every mutation is "load everything, change it in memory, save everything"; stores do no partial writes.
type SongStore interface {
	Load(ctx context.Context) ([]Song, error)               // Load returns the full ordered record set
	Save(ctx context.Context, songs []Song) error           // Save replaces the record set wholesale
	FindByID(ctx context.Context, id string) (*Song, error) // FindByID returns one song or shared.ErrSongNotFound
}
