// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.TranscriptsDir = filepath.Join(base, "transcriptions")
	cfg.Paths.ExportDir = filepath.Join(base, "export")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Whisper.ModelDir = filepath.Join(base, "models")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithModel overrides the default whisper model on the test config.
func WithModel(model string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Whisper.Model = model
	}
}

// WithLanguage overrides the default language on the test config.
func WithLanguage(language string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Whisper.Language = language
	}
}
