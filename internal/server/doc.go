// Package server exposes the song catalog as a JSON HTTP API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// Middleware must be added before routes are registered, because each route is wrapped at registration time.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns ("GET /api/songs/{id}").
// A catch-all "/" route answers everything else with 404 "Route not found".
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
//   - [SongHandler] : list, fetch, create, update and delete songs, plus catalog statistics
//   - [HealthHandler] : liveness probe at /api/health
//
// Errors from the catalog are classified with errors.Is: validation failures are 400, missing songs 404,
// duplicates 409, and anything else 500 with the cause logged.
//
// # Middleware
//
// [RequestLogger], [Recoverer], [CORS] and [RateLimit] are installed by [NewRouter] in that order.
package server
