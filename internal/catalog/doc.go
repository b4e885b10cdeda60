// Package catalog implements the song catalog: validation, querying, record lifecycle and statistics.
//
// # Request Model
//
// Every [Catalog] operation loads the full record set from its [models.SongStore],
// works on that private copy, and (for mutations) saves the whole set back. Nothing is
// cached between calls and there is no locking, so concurrent writers race and the last
// save wins.
//
// # Query Engine
//
// [Query] filters by case-insensitive substring over title, artist and album, sorts with a
// locale-aware collator on the lowercased field value, and slices one page. [ParseQuery]
// coerces raw query-string values into a [models.SongQuery], falling back to defaults.
//
// # Lifecycle
//
// [Catalog.Create] and [Catalog.Update] validate with [Validate] first, then reject
// case-insensitive (title, artist) duplicates with [shared.ErrDuplicateSong].
// Lookups by id fail with [shared.ErrSongNotFound]; store failures carry [shared.ErrStorage].
//
// # Statistics
//
// [ComputeStats] counts distinct artists and albums, picks the artist with the most songs
// (first seen wins a tie) and lists the five newest songs.
package catalog
