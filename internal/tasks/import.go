package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/formatter"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
	"golang.org/x/time/rate"
)

// Import entry statuses.
const (
	StatusCreated   = "created"
	StatusPlanned   = "planned"
	StatusDuplicate = "duplicate"
	StatusInvalid   = "invalid"
	StatusFailed    = "failed"
)

// ImportOpts configures [CatalogEngine.Import].
type ImportOpts struct {
	NumWorkers   int     // Concurrent workers (default: 4, max: 10)
	RateLimit    float64 // Create requests per second (default: 10)
	DryRun       bool    // Read and check tags without creating songs
	ManifestPath string  // Optional JSON manifest destination
}

// ImportEntry is the outcome for one audio file.
type ImportEntry struct {
	File   string
	Title  string
	Artist string
	Album  string
	Status string
	SongID string
	Err    error
}

// ImportResult summarizes an import run. Entries are ordered by file path.
type ImportResult struct {
	Source       string
	DryRun       bool
	TotalFiles   int
	Created      int
	Planned      int
	Duplicates   int
	Invalid      int
	Failed       int
	Entries      []ImportEntry
	ManifestPath string
}

// Import reads the tags of every audio file below dir and creates a song for each.
//
// Tags are read by a pool of workers. Files whose tags lack a title, artist or album are
// marked invalid; files repeating an earlier (title, artist) pair in path order are marked
// duplicate without a request. The remaining songs are created concurrently, throttled by a
// shared rate limiter; a conflict from the API also counts as a duplicate.
func (e *CatalogEngine) Import(ctx context.Context, progress chan<- ProgressUpdate, dir string, opts ImportOpts) (*ImportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: song API not initialized", shared.ErrServiceUnavailable)
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10.0
	}

	started := e.now()
	files, err := ScanAudioFiles(dir)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, scanFilesUpdate(len(files), dir))

	entries := e.readAll(ctx, progress, files, opts.NumWorkers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	markDuplicates(entries)

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	e.createAll(ctx, progress, entries, limiter, opts)

	result := &ImportResult{
		Source:     dir,
		DryRun:     opts.DryRun,
		TotalFiles: len(files),
		Entries:    entries,
	}
	for _, entry := range entries {
		switch entry.Status {
		case StatusCreated:
			result.Created++
		case StatusPlanned:
			result.Planned++
		case StatusDuplicate:
			result.Duplicates++
		case StatusInvalid:
			result.Invalid++
		default:
			result.Failed++
		}
	}

	e.logger.Info("import complete",
		"dir", dir,
		"files", result.TotalFiles,
		"created", result.Created,
		"duplicates", result.Duplicates,
		"invalid", result.Invalid,
		"failed", result.Failed,
	)

	if opts.ManifestPath != "" {
		if err := formatter.WriteImportManifest(result.manifest(started, e.now()), opts.ManifestPath); err != nil {
			return result, fmt.Errorf("import completed but failed to write manifest: %w", err)
		}
		result.ManifestPath = opts.ManifestPath
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// readAll reads tags for files with a worker pool and returns entries in path order.
func (e *CatalogEngine) readAll(ctx context.Context, progress chan<- ProgressUpdate, files []string, workers int) []ImportEntry {
	entries := make([]ImportEntry, len(files))
	jobs := make(chan int, len(files))
	for i := range files {
		jobs <- i
	}
	close(jobs)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				entries[i] = e.readEntry(files[i])

				mu.Lock()
				done++
				step := done
				mu.Unlock()
				e.sendProgress(progress, readTagsUpdate(step, len(files), files[i]))
			}
		}()
	}
	wg.Wait()

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].File < entries[j].File })
	return entries
}

func (e *CatalogEngine) readEntry(path string) ImportEntry {
	entry := ImportEntry{File: path}

	tags, err := e.readTags(path)
	if err != nil {
		entry.Status = StatusFailed
		entry.Err = err
		return entry
	}

	entry.Title, entry.Artist, entry.Album = tags.Title, tags.Artist, tags.Album
	if details := catalog.Validate(entry.input()); len(details) > 0 {
		entry.Status = StatusInvalid
		entry.Err = shared.NewValidationError(details)
	}
	return entry
}

// markDuplicates flags every entry repeating the (title, artist) key of an earlier valid entry.
func markDuplicates(entries []ImportEntry) {
	seen := make(map[string]string, len(entries))
	for i := range entries {
		if entries[i].Status != "" {
			continue
		}
		key := shared.NormalizeSongKey(entries[i].Title, entries[i].Artist)
		if first, ok := seen[key]; ok {
			entries[i].Status = StatusDuplicate
			entries[i].Err = fmt.Errorf("%w: same title and artist as %s", shared.ErrDuplicateSong, first)
			continue
		}
		seen[key] = entries[i].File
	}
}

// createAll creates every pending entry, sharing limiter across workers.
func (e *CatalogEngine) createAll(ctx context.Context, progress chan<- ProgressUpdate, entries []ImportEntry, limiter *rate.Limiter, opts ImportOpts) {
	jobs := make(chan int, len(entries))
	for i := range entries {
		jobs <- i
	}
	close(jobs)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	for range opts.NumWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entry := &entries[i]
				if entry.Status == "" {
					e.createEntry(ctx, entry, limiter, opts.DryRun)
				}

				mu.Lock()
				done++
				step := done
				mu.Unlock()
				e.sendProgress(progress, createSongUpdate(step, len(entries), *entry))
			}
		}()
	}
	wg.Wait()
}

func (e *CatalogEngine) createEntry(ctx context.Context, entry *ImportEntry, limiter *rate.Limiter, dryRun bool) {
	if dryRun {
		entry.Status = StatusPlanned
		return
	}

	if err := limiter.Wait(ctx); err != nil {
		entry.Status = StatusFailed
		entry.Err = err
		return
	}

	song, err := e.api.Create(ctx, entry.input())
	switch {
	case errors.Is(err, shared.ErrDuplicateSong):
		entry.Status = StatusDuplicate
		entry.Err = err
	case err != nil:
		entry.Status = StatusFailed
		entry.Err = err
		e.logger.Warn("failed to create song", "file", entry.File, "error", err)
	default:
		entry.Status = StatusCreated
		entry.SongID = song.ID
	}
}

func (entry ImportEntry) input() models.SongInput {
	return models.SongInput{Title: entry.Title, Artist: entry.Artist, Album: entry.Album}.Trimmed()
}

func (r *ImportResult) manifest(started, finished time.Time) formatter.ImportManifest {
	m := formatter.ImportManifest{
		Source:     r.Source,
		StartedAt:  started,
		FinishedAt: finished,
		DryRun:     r.DryRun,
		TotalFiles: r.TotalFiles,
		Created:    r.Created + r.Planned,
		Skipped:    r.Duplicates + r.Invalid,
		Failed:     r.Failed,
		Entries:    make([]formatter.ManifestEntry, 0, len(r.Entries)),
	}
	for _, entry := range r.Entries {
		me := formatter.ManifestEntry{
			File:   entry.File,
			Title:  entry.Title,
			Artist: entry.Artist,
			Album:  entry.Album,
			Status: entry.Status,
			SongID: entry.SongID,
		}
		if entry.Err != nil {
			me.Error = strings.TrimSpace(entry.Err.Error())
		}
		m.Entries = append(m.Entries, me)
	}
	return m
}
