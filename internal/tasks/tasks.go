package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/formatter"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/services"
	"github.com/desertthunder/songman/internal/shared"
)

// defaultPageSize is the listing page size used while exporting.
const defaultPageSize = 100

// CatalogEngine runs import and export jobs against a [services.SongAPI].
type CatalogEngine struct {
	api      services.SongAPI
	readTags TagReader
	logger   *log.Logger
	now      func() time.Time
}

// EngineOpts overrides the engine's collaborators; zero values select the defaults.
type EngineOpts struct {
	TagReader TagReader        // defaults to [ReadFileTags]
	Logger    *log.Logger      // defaults to a stderr logger
	Now       func() time.Time // defaults to [time.Now]
}

// NewCatalogEngine creates a CatalogEngine that talks to api.
func NewCatalogEngine(api services.SongAPI, opts EngineOpts) *CatalogEngine {
	if opts.TagReader == nil {
		opts.TagReader = ReadFileTags
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &CatalogEngine{
		api:      api,
		readTags: opts.TagReader,
		logger:   shared.WithLogger(opts.Logger, "component", "tasks"),
		now:      opts.Now,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *CatalogEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// ExportOpts configures [CatalogEngine.Export].
type ExportOpts struct {
	Format   formatter.Format // json, csv, markdown or txt
	Output   string           // file, base path or directory depending on Format
	Query    models.SongQuery // search and sort applied to the listing; Page and Limit are ignored
	PageSize int              // songs per request (default 100)
	Name     string           // catalog title written into the export
}

// ExportResult reports what an export wrote.
type ExportResult struct {
	Songs int
	Files []string
}

// Export pages through every song matching opts.Query and writes them in opts.Format.
func (e *CatalogEngine) Export(ctx context.Context, progress chan<- ProgressUpdate, opts ExportOpts) (*ExportResult, error) {
	if e.api == nil {
		return nil, fmt.Errorf("%w: song API not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	q := opts.Query
	q.Page = 1
	q.Limit = opts.PageSize

	songs := []models.Song{}
	for {
		page, err := e.api.List(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", q.Page, err)
		}
		songs = append(songs, page.Songs...)
		e.sendProgress(progress, fetchPageUpdate(q.Page, page.Pagination.TotalPages, len(songs)))

		if !page.Pagination.HasNext || len(page.Songs) == 0 {
			break
		}
		q.Page++
	}

	e.sendProgress(progress, writeExportUpdate(string(opts.Format), len(songs)))
	export := formatter.NewCatalogExport(opts.Name, songs, e.now())
	files, err := formatter.WriteExport(export, opts.Format, opts.Output)
	if err != nil {
		return nil, err
	}

	e.logger.Info("export complete", "format", opts.Format, "songs", len(songs), "files", len(files))
	return &ExportResult{Songs: len(songs), Files: files}, nil
}
