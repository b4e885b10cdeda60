package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// maxBodyBytes caps the size of a song request body.
const maxBodyBytes = 1 << 20

// isoMillis matches the millisecond ISO-8601 form used in health responses.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

const (
	routeListSongs  = "GET /api/songs"
	routeGetSong    = "GET /api/songs/{id}"
	routeCreateSong = "POST /api/songs"
	routeUpdateSong = "PUT /api/songs/{id}"
	routeDeleteSong = "DELETE /api/songs/{id}"
	routeStats      = "GET /api/stats"
	routeHealth     = "GET /api/health"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// DeleteResponse is the body returned after a song is removed.
type DeleteResponse struct {
	Message string      `json:"message"`
	Song    models.Song `json:"song"`
}

// HealthResponse is the body of the liveness probe.
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// SongHandler serves the song and statistics endpoints.
type SongHandler struct {
	songs  SongService
	logger *log.Logger
}

// NewSongHandler creates a [SongHandler] over songs.
func NewSongHandler(songs SongService, logger *log.Logger) *SongHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SongHandler{songs: songs, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *SongHandler) Routes() []string {
	return []string{routeListSongs, routeGetSong, routeCreateSong, routeUpdateSong, routeDeleteSong, routeStats}
}

// ServeHTTP dispatches on the pattern the request was routed by.
func (h *SongHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case routeListSongs:
		h.list(w, r)
	case routeGetSong:
		h.get(w, r)
	case routeCreateSong:
		h.create(w, r)
	case routeUpdateSong:
		h.update(w, r)
	case routeDeleteSong:
		h.delete(w, r)
	case routeStats:
		h.stats(w, r)
	default:
		routeNotFound(w, r)
	}
}

func (h *SongHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := h.songs.List(r.Context(), catalog.ParseQuery(r.URL.Query()))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *SongHandler) get(w http.ResponseWriter, r *http.Request) {
	song, err := h.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (h *SongHandler) create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	song, err := h.songs.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "Song already exists")
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (h *SongHandler) update(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	song, err := h.songs.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.fail(w, r, err, "Song with this title and artist already exists")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

func (h *SongHandler) delete(w http.ResponseWriter, r *http.Request) {
	song, err := h.songs.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "Song deleted successfully", Song: *song})
}

func (h *SongHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.songs.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// fail maps a catalog error onto its status code; duplicateMsg is the 409 message for the route.
func (h *SongHandler) fail(w http.ResponseWriter, r *http.Request, err error, duplicateMsg string) {
	var verr *shared.ValidationError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Details: verr.Details})
	case errors.Is(err, shared.ErrSongNotFound):
		writeError(w, http.StatusNotFound, "Song not found")
	case errors.Is(err, shared.ErrDuplicateSong) && duplicateMsg != "":
		writeError(w, http.StatusConflict, duplicateMsg)
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeInput reads a [models.SongInput] body. An empty body decodes as an empty input,
// which then fails validation; malformed JSON is rejected here with 400.
func decodeInput(w http.ResponseWriter, r *http.Request) (models.SongInput, bool) {
	var in models.SongInput

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return in, false
	}
	return in, true
}

// HealthHandler reports that the API is up.
type HealthHandler struct {
	now func() time.Time
}

// NewHealthHandler creates a [HealthHandler]; a nil clock uses time.Now.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{now: now}
}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{routeHealth}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "OK",
		Message:   "Song Manager API is running",
		Timestamp: h.now().UTC().Format(isoMillis),
	})
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := shared.MarshalJSON(v, false)
	if err != nil {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(data)
}
