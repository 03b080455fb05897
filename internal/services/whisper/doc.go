// Package whisper wraps the speech-to-text engine behind a narrow load/run
// boundary and memoizes loaded model handles.
//
// The Engine interface models the external inference engine: Load resolves
// a model identifier into a Handle, and Handle.Run transcribes one audio
// file synchronously. CLIEngine is the production implementation wrapping a
// whisper.cpp style binary with JSON output. Cache keeps at most one loaded
// handle per process and replaces it when a different model is requested;
// loads are expensive, so the cache amortizes them across jobs.
package whisper
