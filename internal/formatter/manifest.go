package formatter

import (
	"fmt"
	"time"

	"github.com/desertthunder/songman/internal/shared"
)

// ImportManifest summarizes one import run.
type ImportManifest struct {
	Source     string          `json:"source"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DryRun     bool            `json:"dry_run"`
	TotalFiles int             `json:"total_files"`
	Created    int             `json:"created"`
	Skipped    int             `json:"skipped"`
	Failed     int             `json:"failed"`
	Entries    []ManifestEntry `json:"entries"`
}

// ManifestEntry is the outcome for a single file.
type ManifestEntry struct {
	File   string `json:"file"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Status string `json:"status"`
	SongID string `json:"song_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WriteImportManifest writes manifest as indented JSON to path.
func WriteImportManifest(manifest ImportManifest, path string) error {
	if manifest.Entries == nil {
		manifest.Entries = []ManifestEntry{}
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
