// Package pipeline sequences acquisition, transcription, rendering, and
// persistence for one transcription job.
//
// Two entry points exist. TranscribeURL resolves a remote source into a local
// audio file inside a per-title job directory before transcribing and writes
// artifacts into that directory. TranscribeFile accepts an already local audio
// file and only stages requested export documents.
//
// Progress is streamed to the caller as a sequence of Observation values.
// Every observation carries all artifacts known so far; artifacts are never
// retracted, so a transcription failure still reports the audio path produced
// by a successful download. A stage failure ends the sequence with exactly one
// terminal observation carrying the error.
//
// Runner wraps the pipeline with a process lock, request IDs, and job history
// rows so concurrent invocations serialize instead of corrupting the shared
// model cache.
package pipeline
