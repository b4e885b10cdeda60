// Package tasks runs long-lived catalog jobs against the song API with real-time progress reporting.
//
// # Core Operations
//
// [CatalogEngine] exposes two operations:
//
//  1. [CatalogEngine.Import] : audio library -> catalog
//     - Walks a directory for audio files
//     - Reads title, artist and album tags from each file
//     - Creates songs through the API with a bounded worker pool and a shared rate limiter
//     - Writes a manifest of what was created, skipped and failed
//
//  2. [CatalogEngine.Export] : catalog -> files
//     - Pages through every song matching a query
//     - Renders them with the formatter package (json, csv, markdown, txt)
//
// # Progress Reporting
//
// Both operations accept a ProgressUpdate channel. Updates are sent with select/default,
// so a slow or absent reader never stalls the job. Pass nil to disable reporting.
package tasks
