package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// SongClient is a typed client for the song catalog API.
type SongClient struct {
	api *APIService
}

// NewSongClient creates a [SongClient] on top of api.
func NewSongClient(api *APIService) *SongClient {
	if api == nil {
		api = NewAPIService("", nil)
	}
	return &SongClient{api: api}
}

// apiError is the error body returned by the API.
type apiError struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

func (c *SongClient) List(ctx context.Context, q models.SongQuery) (*models.SongPage, error) {
	path := "/api/songs"
	if v := catalog.Values(q); len(v) > 0 {
		path += "?" + v.Encode()
	}

	var page models.SongPage
	if err := c.call(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *SongClient) Get(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	if err := c.call(ctx, http.MethodGet, songPath(id), nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *SongClient) Create(ctx context.Context, in models.SongInput) (*models.Song, error) {
	var song models.Song
	if err := c.call(ctx, http.MethodPost, "/api/songs", in, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *SongClient) Update(ctx context.Context, id string, in models.SongInput) (*models.Song, error) {
	var song models.Song
	if err := c.call(ctx, http.MethodPut, songPath(id), in, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (c *SongClient) Delete(ctx context.Context, id string) (*models.Song, error) {
	var out struct {
		Message string      `json:"message"`
		Song    models.Song `json:"song"`
	}
	if err := c.call(ctx, http.MethodDelete, songPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Song, nil
}

func (c *SongClient) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.call(ctx, http.MethodGet, "/api/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *SongClient) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.call(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListAll pages through every song matching q, starting from the first page.
func (c *SongClient) ListAll(ctx context.Context, q models.SongQuery) ([]models.Song, error) {
	q.Page = 1
	if q.Limit < 1 {
		q.Limit = 100
	}

	songs := []models.Song{}
	for {
		page, err := c.List(ctx, q)
		if err != nil {
			return nil, err
		}
		songs = append(songs, page.Songs...)
		if !page.Pagination.HasNext {
			return songs, nil
		}
		q.Page++
	}
}

func (c *SongClient) call(ctx context.Context, method, path string, body, out any) error {
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	}

	resp, err := c.api.Do(ctx, method, path, data)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %s %s: %v", shared.ErrTimeout, method, path, err)
		}
		return fmt.Errorf("%w: %s %s: %v", shared.ErrServiceUnavailable, method, path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("%w: failed to decode %s %s response: %v", shared.ErrAPIRequest, method, path, err)
		}
		return nil
	}
	return statusError(resp)
}

// isTimeout reports whether a transport error came from a client or context deadline.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout())
}

// statusError maps an error response back onto the shared sentinels.
func statusError(resp *APIResponse) error {
	var body apiError
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest && len(body.Details) > 0:
		return shared.NewValidationError(body.Details)
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, body.Error)
	case resp.StatusCode == http.StatusNotFound && body.Error == "Song not found":
		return shared.ErrSongNotFound
	case resp.StatusCode == http.StatusConflict:
		return fmt.Errorf("%w: %s", shared.ErrDuplicateSong, body.Error)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return fmt.Errorf("%w: %d %s", shared.ErrServiceUnavailable, resp.StatusCode, body.Error)
	default:
		return fmt.Errorf("%w: %d %s", shared.ErrAPIRequest, resp.StatusCode, body.Error)
	}
}

func songPath(id string) string {
	return "/api/songs/" + url.PathEscape(id)
}
