package repositories

import (
	"time"

	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

var sampleSongs = []models.SongInput{
	{Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", ImageURL: "https://via.placeholder.com/200x200/4f46e5/ffffff?text=Queen"},
	{Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", ImageURL: "https://via.placeholder.com/200x200/dc2626/ffffff?text=Eagles"},
	{Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV", ImageURL: "https://via.placeholder.com/200x200/059669/ffffff?text=Led+Zeppelin"},
	{Title: "Sweet Child O' Mine", Artist: "Guns N' Roses", Album: "Appetite for Destruction", ImageURL: "https://via.placeholder.com/200x200/7c2d12/ffffff?text=GNR"},
	{Title: "Imagine", Artist: "John Lennon", Album: "Imagine", ImageURL: "https://via.placeholder.com/200x200/1e40af/ffffff?text=Lennon"},
	{Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller", ImageURL: "https://via.placeholder.com/200x200/be123c/ffffff?text=MJ"},
	{Title: "Like a Rolling Stone", Artist: "Bob Dylan", Album: "Highway 61 Revisited", ImageURL: "https://via.placeholder.com/200x200/0891b2/ffffff?text=Dylan"},
	{Title: "Smells Like Teen Spirit", Artist: "Nirvana", Album: "Nevermind", ImageURL: "https://via.placeholder.com/200x200/374151/ffffff?text=Nirvana"},
	{Title: "Purple Haze", Artist: "Jimi Hendrix", Album: "Are You Experienced", ImageURL: "https://via.placeholder.com/200x200/7c3aed/ffffff?text=Hendrix"},
	{Title: "Good Vibrations", Artist: "The Beach Boys", Album: "Pet Sounds", ImageURL: "https://via.placeholder.com/200x200/ea580c/ffffff?text=Beach+Boys"},
	{Title: "What's Going On", Artist: "Marvin Gaye", Album: "What's Going On", ImageURL: "https://via.placeholder.com/200x200/16a34a/ffffff?text=Marvin"},
	{Title: "Respect", Artist: "Aretha Franklin", Album: "I Never Loved a Man", ImageURL: "https://via.placeholder.com/200x200/db2777/ffffff?text=Aretha"},
}

// SampleSongs returns the sample catalog written to a newly created store, stamped with now.
func SampleSongs(now time.Time) []models.Song {
	songs := make([]models.Song, 0, len(sampleSongs))
	for _, in := range sampleSongs {
		songs = append(songs, models.Song{
			ID:        shared.GenerateID(),
			Title:     in.Title,
			Artist:    in.Artist,
			Album:     in.Album,
			ImageURL:  in.ImageURL,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return songs
}
