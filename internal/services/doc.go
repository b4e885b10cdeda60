// Package services implements HTTP clients for the song catalog API.
//
// # Raw Client
//
// [APIService] sends requests and returns the status, headers and body untouched, decoding the
// body into JSONData when it parses. It never treats a status code as an error.
//
// # Typed Client
//
// [SongClient] implements [SongAPI] on top of [APIService] and maps error responses back onto the
// shared sentinels so callers classify them the same way the server does:
//   - 400 with details : *[shared.ValidationError]
//   - 400 otherwise : [shared.ErrInvalidInput]
//   - 404 "Song not found" : [shared.ErrSongNotFound]
//   - 409 : [shared.ErrDuplicateSong]
//   - 429 and 5xx, or no response at all : [shared.ErrServiceUnavailable]
//   - no response before the deadline : [shared.ErrTimeout]
//   - anything else : [shared.ErrAPIRequest]
//
// [SongClient.ListAll] follows pagination until hasNext is false.
package services
