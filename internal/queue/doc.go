// Package queue persists transcription jobs in SQLite.
//
// Each pipeline invocation creates one row capturing the source, requested
// options, lifecycle status, progress, produced artifact paths, and any
// failure message. The pipeline runner updates the row at every stage
// transition so `scribe queue list` can show current and historical jobs.
//
// The database is transient job history, not a long-term archive. Schema
// changes bump schemaVersion in schema.go; users clear the database to adopt
// a new schema.
package queue
