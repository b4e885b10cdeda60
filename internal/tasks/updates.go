package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanFiles Phase = iota
	ReadTags
	CreateSongs
	FetchSongs
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case ScanFiles:
		return "scan_files"
	case ReadTags:
		return "read_tags"
	case CreateSongs:
		return "create_songs"
	case FetchSongs:
		return "fetch_songs"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func scanFilesUpdate(found int, dir string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFiles,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d audio files in %s", found, dir),
	}
}

func readTagsUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadTags,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Reading tags: %s", step, total, path),
	}
}

func createSongUpdate(step, total int, entry ImportEntry) ProgressUpdate {
	mark := "✓"
	switch entry.Status {
	case StatusFailed, StatusInvalid:
		mark = "✗"
	case StatusDuplicate:
		mark = "="
	}
	msg := fmt.Sprintf("[%d/%d] %s %s - %s", step, total, mark, entry.Artist, entry.Title)
	if entry.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, entry.Err)
	}
	return ProgressUpdate{
		Phase:   CreateSongs,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    entry,
	}
}

func fetchPageUpdate(page, totalPages, fetched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    page,
		Total:   totalPages,
		Message: fmt.Sprintf("Fetched page %d/%d (%d songs)", page, totalPages, fetched),
	}
}

func writeExportUpdate(format string, songs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %d songs as %s...", songs, format),
	}
}
