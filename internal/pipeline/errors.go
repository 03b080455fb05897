package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a stage failure for reporting.
type Kind string

const (
	KindAcquisition   Kind = "acquisition"
	KindModelLoad     Kind = "model_load"
	KindTranscription Kind = "transcription"
	KindPersistence   Kind = "persistence"
)

// ErrAudioNotFound reports that a download completed without producing the
// expected audio file in the job directory.
var ErrAudioNotFound = errors.New("audio file not found after download")

// StageError is a stage-aware error carrying the failure classification.
type StageError struct {
	Kind    Kind
	Stage   string
	Message string
	Err     error
}

// Error formats stage failures for logs and terminal observations.
func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newStageError(kind Kind, stage, message string, err error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Message: message, Err: err}
}
