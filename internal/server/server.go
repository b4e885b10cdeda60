// package server contains middleware & handlers for the song catalog web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/songman/internal/models"
	"github.com/desertthunder/songman/internal/shared"
)

// shutdownTimeout bounds how long in-flight requests may run after shutdown begins.
const shutdownTimeout = 10 * time.Second

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, CORS, rate limiting, panic recovery, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the song catalog service.
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the "METHOD /path" patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// SongService is the catalog behavior the HTTP surface depends on.
type SongService interface {
	List(ctx context.Context, q models.SongQuery) (*models.SongPage, error)
	Get(ctx context.Context, id string) (*models.Song, error)
	Create(ctx context.Context, in models.SongInput) (*models.Song, error)
	Update(ctx context.Context, id string, in models.SongInput) (*models.Song, error)
	Delete(ctx context.Context, id string) (*models.Song, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// NewRouter wires the middleware stack and every API route.
func NewRouter(cfg shared.ServerConfig, songs SongService, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(
		RequestLogger(logger),
		Recoverer(logger),
		CORS(cfg.CORSOrigins),
		RateLimit(cfg.RateLimit, cfg.RateBurst),
	)

	r.Handler(NewHealthHandler(nil))
	r.Handler(NewSongHandler(songs, logger))
	r.NotFound(http.HandlerFunc(routeNotFound))
	return r
}

// Server runs the API until its context is cancelled.
type Server struct {
	srv    *http.Server
	logger *log.Logger
}

// NewServer creates a [Server] listening on cfg.Addr().
func NewServer(cfg shared.ServerConfig, songs SongService, logger *log.Logger) *Server {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	logger = shared.WithLogger(logger, "component", "server")

	return &Server{
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, songs, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.srv.Addr }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.ListenAndServe()
	}()

	base := fmt.Sprintf("http://%s", s.srv.Addr)
	s.logger.Info("server running", "addr", s.srv.Addr)
	s.logger.Info("api health", "url", base+"/api/health")
	s.logger.Info("songs api", "url", base+"/api/songs")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
