// Package repositories implements persistence for the song catalog.
//
// Both stores satisfy [models.SongStore] and treat the catalog as one ordered record set:
// Load returns all of it and Save overwrites all of it.
//
// Key Implementations:
//   - [JSONFileStore] : the canonical store, a two-space indented JSON array on disk
//   - [SQLiteStore] : a songs table with a position column, replaced wholesale inside one transaction
//
// [Initialize] opens the configured store, creating the data directory, running migrations
// and seeding the sample songs the first time the store is created.
package repositories
