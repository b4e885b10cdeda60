// Package models defines the song catalog's domain types and the persistence interface.
//
// The package contains two categories of types:
//
// 1. Records: the persisted shape of the catalog
//   - [Song] : A single catalog entry with server-assigned id and timestamps
//
// 2. Request and response values exchanged with the HTTP API
//   - [SongInput] : Create/update request body, validated with ozzo-validation
//   - [SongQuery] : Search, sort and page parameters for listing
//   - [SongPage] and [Pagination] : One page of songs plus page metadata
//   - [Stats] : Aggregate counts and recently added songs
//
// The [SongStore] interface is the narrow persistence contract (load everything, save
// everything, find one) that keeps catalog logic independent of the storage engine.
package models
