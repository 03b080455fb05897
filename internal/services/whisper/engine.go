package whisper

import (
	"context"

	"scribe/internal/transcript"
)

// Options carries per-run transcription settings. An empty Language asks
// the engine to auto-detect the spoken language.
type Options struct {
	Task     string
	Language string
}

// Task values accepted by the engine.
const (
	TaskTranscribe = "transcribe"
	TaskTranslate  = "translate"
)

// AutoLanguage is the caller-facing sentinel for language auto-detection.
const AutoLanguage = "auto"

// Handle is one loaded model instance.
type Handle interface {
	Run(ctx context.Context, audioPath string, opts Options) (transcript.Result, error)
}

// Engine loads model identifiers into runnable handles. Load may block for
// a long time and may fail when the model is unavailable.
type Engine interface {
	Load(ctx context.Context, model string) (Handle, error)
}
