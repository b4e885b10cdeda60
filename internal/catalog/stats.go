package catalog

import (
	"sort"

	"github.com/desertthunder/songman/internal/models"
)

// recentLimit is how many songs [ComputeStats] reports as recently added.
const recentLimit = 5

// ComputeStats aggregates songs without reordering the input.
//
// Artists and albums are grouped by exact value. The most popular artist is the one with
// the most songs, the first one encountered winning a tie; it is nil for an empty catalog.
func ComputeStats(songs []models.Song) models.Stats {
	artistCounts := make(map[string]int)
	artistOrder := []string{}
	albums := make(map[string]struct{})

	for _, s := range songs {
		if _, ok := artistCounts[s.Artist]; !ok {
			artistOrder = append(artistOrder, s.Artist)
		}
		artistCounts[s.Artist]++
		albums[s.Album] = struct{}{}
	}

	var popular *models.ArtistCount
	for _, name := range artistOrder {
		if popular == nil || artistCounts[name] > popular.SongCount {
			popular = &models.ArtistCount{Name: name, SongCount: artistCounts[name]}
		}
	}

	recent := append([]models.Song{}, songs...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	return models.Stats{
		TotalSongs:        len(songs),
		TotalArtists:      len(artistCounts),
		TotalAlbums:       len(albums),
		MostPopularArtist: popular,
		RecentlyAdded:     recent,
	}
}
