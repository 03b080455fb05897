// Package config loads, normalizes, and validates scribe's TOML
// configuration.
//
// Load resolves the config path (explicit flag or ~/.config/scribe),
// applies defaults for missing values, expands "~" in every path field,
// and validates enumerated settings before anything else runs. The
// embedded sample config backs `scribe config init`.
package config
