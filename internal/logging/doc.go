// Package logging assembles structured slog loggers and formatting helpers
// used across scribe components.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes attr helpers so pipeline code tags log lines with
// job IDs and stages consistently. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
