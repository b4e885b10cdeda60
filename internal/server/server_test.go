package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/songman/internal/catalog"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
	tu "github.com/desertthunder/songman/internal/testing"
)

func testConfig() shared.ServerConfig {
	return shared.ServerConfig{Host: "127.0.0.1", Port: 0, CORSOrigins: []string{"*"}}
}

func newTestServer(t *testing.T, store models.SongStore) *httptest.Server {
	t.Helper()
	logger := shared.NewLogger(io.Discard)
	srv := httptest.NewServer(NewRouter(testConfig(), catalog.New(store, catalog.CatalogOpts{Logger: logger}), logger))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to decode %s: %v", data, err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, tu.NewMemoryStore())

	resp, body := do(t, http.MethodGet, srv.URL+"/api/health", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	health := decode[HealthResponse](t, body)
	if health.Status != "OK" || health.Message != "Song Manager API is running" {
		t.Errorf("unexpected health payload: %+v", health)
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Errorf("timestamp %q is not ISO-8601: %v", health.Timestamp, err)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestSongRoutes(t *testing.T) {
	t.Run("Create Validation", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, body := do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"  ","album":"X"}`)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		got := decode[ErrorResponse](t, body)
		if got.Error != "Validation failed" || len(got.Details) != 2 || got.Details[0] != "Title is required" || got.Details[1] != "Artist is required" {
			t.Errorf("unexpected error body: %+v", got)
		}
	})

	t.Run("Create Empty Body", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, body := do(t, http.MethodPost, srv.URL+"/api/songs", "")
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", resp.StatusCode)
		}
		if got := decode[ErrorResponse](t, body); len(got.Details) != 3 {
			t.Errorf("expected three details, got %+v", got)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		tc := []string{`{"title":`, `{"title": 42}`, `[1,2]`}
		for _, body := range tc {
			resp, data := do(t, http.MethodPost, srv.URL+"/api/songs", body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", body, resp.StatusCode)
				continue
			}
			if got := decode[ErrorResponse](t, data); got.Error != "Invalid JSON body" {
				t.Errorf("%s: unexpected error %q", body, got.Error)
			}
		}
	})

	t.Run("Unknown Fields Are Ignored", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, body := do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"T","artist":"A","album":"B","id":"forged","rating":5}`)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", resp.StatusCode, body)
		}
		if song := decode[models.Song](t, body); song.ID == "forged" {
			t.Error("client supplied id should be ignored")
		}
	})

	t.Run("Get Unknown", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, body := do(t, http.MethodGet, srv.URL+"/api/songs/nope", "")
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", resp.StatusCode)
		}
		if got := decode[ErrorResponse](t, body); got.Error != "Song not found" {
			t.Errorf("unexpected error %q", got.Error)
		}
	})

	t.Run("Update Duplicate Message", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		_, a := do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"One","artist":"A","album":"X"}`)
		do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"Two","artist":"A","album":"X"}`)
		id := decode[models.Song](t, a).ID

		resp, body := do(t, http.MethodPut, srv.URL+"/api/songs/"+id, `{"title":"two","artist":"a","album":"X"}`)
		if resp.StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d", resp.StatusCode)
		}
		if got := decode[ErrorResponse](t, body); got.Error != "Song with this title and artist already exists" {
			t.Errorf("unexpected error %q", got.Error)
		}
	})

	t.Run("Storage Failure", func(t *testing.T) {
		srv := newTestServer(t, &tu.FailingStore{})

		resp, body := do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"T","artist":"A","album":"B"}`)
		if resp.StatusCode != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", resp.StatusCode)
		}
		if got := decode[ErrorResponse](t, body); got.Error != "Internal server error" {
			t.Errorf("unexpected error %q", got.Error)
		}
	})

	t.Run("List Coerces Bad Paging", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, body := do(t, http.MethodGet, srv.URL+"/api/songs?page=abc&limit=-1", "")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		page := decode[models.SongPage](t, body)
		if page.Pagination.CurrentPage != 1 || page.Songs == nil {
			t.Errorf("unexpected page: %s", body)
		}
		if !bytes.Contains(body, []byte(`"songs":[]`)) {
			t.Errorf("empty listing should encode songs as [], got %s", body)
		}
	})
}

func TestRouteNotFound(t *testing.T) {
	srv := newTestServer(t, tu.NewMemoryStore())

	tc := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/nowhere"},
		{http.MethodGet, "/api/unknown"},
		{http.MethodPatch, "/api/songs/abc"},
		{http.MethodDelete, "/api/songs"},
		{http.MethodPost, "/api/stats"},
	}

	for _, tt := range tc {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			resp, body := do(t, tt.method, srv.URL+tt.path, "")
			if resp.StatusCode != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", resp.StatusCode)
			}
			if got := decode[ErrorResponse](t, body); got.Error != "Route not found" {
				t.Errorf("unexpected error %q", got.Error)
			}
		})
	}
}

func TestMiddleware(t *testing.T) {
	logger := shared.NewLogger(io.Discard)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("Recoverer", func(t *testing.T) {
		h := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if got := decode[ErrorResponse](t, rec.Body.Bytes()); got.Error != "Something went wrong!" {
			t.Errorf("unexpected error %q", got.Error)
		}
	})

	t.Run("CORS Allows All", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		CORS([]string{"*"})(ok).ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("expected *, got %q", got)
		}
	})

	t.Run("CORS Allow List", func(t *testing.T) {
		h := CORS([]string{"http://good.example"})(ok)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://good.example")
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://good.example" {
			t.Errorf("expected origin echoed, got %q", got)
		}

		rec = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		h.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("expected no allow header, got %q", got)
		}
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		srv := newTestServer(t, tu.NewMemoryStore())

		resp, _ := do(t, http.MethodOptions, srv.URL+"/api/songs/abc", "")
		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", resp.StatusCode)
		}
		if !strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), "PUT") {
			t.Errorf("unexpected allow methods %q", resp.Header.Get("Access-Control-Allow-Methods"))
		}
	})

	t.Run("RateLimit", func(t *testing.T) {
		h := RateLimit(0.001, 2)(ok)

		codes := []int{}
		for range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}

		want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
		for i := range want {
			if codes[i] != want[i] {
				t.Errorf("request %d: expected %d, got %d", i, want[i], codes[i])
			}
		}
	})

	t.Run("RateLimit Disabled", func(t *testing.T) {
		h := RateLimit(0, 0)(ok)
		for range 50 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		}
	})

	t.Run("Default Config Does Not Limit", func(t *testing.T) {
		cfg := shared.DefaultConfig().Server
		logger := shared.NewLogger(io.Discard)
		h := NewRouter(cfg, catalog.New(tu.NewMemoryStore(), catalog.CatalogOpts{Logger: logger}), logger)
		for range 100 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/x", ok)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("unexpected order %v", order)
		}
	})
}

// TestScenario runs the create, list, duplicate, update, stats and delete flow over HTTP.
func TestScenario(t *testing.T) {
	srv := newTestServer(t, tu.NewMemoryStore())

	resp, body := do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":" Hey Jude ","artist":"The Beatles","album":"Hey Jude"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", resp.StatusCode, body)
	}
	created := decode[models.Song](t, body)
	if created.Title != "Hey Jude" || created.ImageURL != catalog.PlaceholderImageURL("Hey Jude") {
		t.Errorf("unexpected created song: %+v", created)
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Error("createdAt and updatedAt should match on create")
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/api/songs?search=BEATLES&page=1&limit=5", "")
	page := decode[models.SongPage](t, body)
	if resp.StatusCode != http.StatusOK || page.Pagination.TotalSongs != 1 || page.Songs[0].ID != created.ID {
		t.Fatalf("list: unexpected response %d %s", resp.StatusCode, body)
	}

	resp, body = do(t, http.MethodPost, srv.URL+"/api/songs", `{"title":"hey jude","artist":"THE BEATLES","album":"1"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", resp.StatusCode)
	}
	if got := decode[ErrorResponse](t, body); got.Error != "Song already exists" {
		t.Errorf("duplicate: unexpected error %q", got.Error)
	}

	resp, body = do(t, http.MethodPut, srv.URL+"/api/songs/"+created.ID, `{"title":"Hey Jude","artist":"The Beatles","album":"Past Masters"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", resp.StatusCode, body)
	}
	updated := decode[models.Song](t, body)
	if updated.ID != created.ID || updated.Album != "Past Masters" || updated.ImageURL != created.ImageURL {
		t.Errorf("update: unexpected song %+v", updated)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/api/stats", "")
	stats := decode[models.Stats](t, body)
	if resp.StatusCode != http.StatusOK || stats.TotalSongs != 1 || stats.MostPopularArtist.Name != "The Beatles" {
		t.Errorf("stats: unexpected response %s", body)
	}

	resp, body = do(t, http.MethodDelete, srv.URL+"/api/songs/"+created.ID, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}
	deleted := decode[DeleteResponse](t, body)
	if deleted.Message != "Song deleted successfully" || deleted.Song.ID != created.ID {
		t.Errorf("delete: unexpected body %s", body)
	}

	resp, _ = do(t, http.MethodGet, srv.URL+"/api/songs/"+created.ID, "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", resp.StatusCode)
	}

	resp, body = do(t, http.MethodGet, srv.URL+"/api/stats", "")
	stats = decode[models.Stats](t, body)
	if stats.TotalSongs != 0 || stats.MostPopularArtist != nil {
		t.Errorf("stats after delete: %s", body)
	}
	if !bytes.Contains(body, []byte(`"mostPopularArtist":null`)) {
		t.Errorf("expected null most popular artist, got %s", body)
	}
}

func TestServerRun(t *testing.T) {
	cfg := testConfig()
	s := NewServer(cfg, catalog.New(tu.NewMemoryStore(), catalog.CatalogOpts{}), shared.NewLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
