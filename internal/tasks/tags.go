package tasks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dhowden/tag"
)

// audioExtensions are the file types the tag reader understands.
var audioExtensions = []string{".mp3", ".flac", ".m4a", ".mp4", ".aac", ".ogg", ".wav"}

// TrackTags holds the subset of audio metadata that maps onto a song.
type TrackTags struct {
	Title  string
	Artist string
	Album  string
}

// TagReader extracts [TrackTags] from the audio file at path.
type TagReader func(path string) (*TrackTags, error)

// ReadFileTags reads embedded ID3, MP4, FLAC or Ogg metadata with dhowden/tag.
//
// The album artist stands in when the track artist is empty.
func ReadFileTags(path string) (*TrackTags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags from %s: %w", path, err)
	}

	tags := &TrackTags{
		Title:  strings.TrimSpace(m.Title()),
		Artist: strings.TrimSpace(m.Artist()),
		Album:  strings.TrimSpace(m.Album()),
	}
	if tags.Artist == "" {
		tags.Artist = strings.TrimSpace(m.AlbumArtist())
	}
	return tags, nil
}

// IsAudioFile reports whether path has a supported audio extension.
func IsAudioFile(path string) bool {
	return slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(path)))
}

// ScanAudioFiles returns every audio file below dir in lexical order.
func ScanAudioFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && IsAudioFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}
