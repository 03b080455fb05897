package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/naming"
	"scribe/internal/services/whisper"
	"scribe/internal/services/ytdlp"
	"scribe/internal/transcript"
)

// MediaClient is the media-retrieval boundary consumed by the acquisition
// stage. *ytdlp.Client satisfies it.
type MediaClient interface {
	ResolveMetadata(ctx context.Context, url string) (ytdlp.Metadata, error)
	Download(ctx context.Context, url, outputTemplate string, onProgress ytdlp.ProgressFunc) error
}

// Request carries the caller's options for one job.
type Request struct {
	Model          string
	Language       string
	Task           string
	WantTimestamps bool
	ExportFormats  []transcript.Format
}

// Pipeline runs one transcription job at a time through its stages.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	cache  *whisper.Cache
	media  MediaClient
	now    func() time.Time
}

// New builds a pipeline around the given model cache and media client.
func New(cfg *config.Config, logger *slog.Logger, cache *whisper.Cache, media MediaClient) *Pipeline {
	return NewWithClock(cfg, logger, cache, media, time.Now)
}

// NewWithClock is New with an injectable clock for deterministic fallback
// titles and export stamps.
func NewWithClock(cfg *config.Config, logger *slog.Logger, cache *whisper.Cache, media MediaClient, now func() time.Time) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logging.WithComponent(logger, "pipeline"),
		cache:  cache,
		media:  media,
		now:    now,
	}
}

// TranscribeURL runs the URL-sourced pipeline: download into a per-title job
// directory, transcribe, render, persist artifacts, and stage exports.
func (p *Pipeline) TranscribeURL(ctx context.Context, url string, req Request, observe Observer) error {
	obs := Observation{}
	p.emit(observe, &obs, StageAcquiring, "Starting download...")

	audioPath, jobDir, stageErr := p.acquire(ctx, url, &obs, observe)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	obs.AudioPath = audioPath
	obs.JobDir = jobDir
	p.emit(observe, &obs, StageTranscribing, fmt.Sprintf("Audio downloaded. Transcribing with %s model...", req.Model))

	result, stageErr := p.transcribe(ctx, audioPath, req)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	p.recordResult(&obs, result, req)
	p.emit(observe, &obs, StageRendering, "Transcription finished. Rendering documents...")

	docs, stageErr := p.renderDocuments(result, req)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	p.emit(observe, &obs, StagePersisting, "Saving transcripts...")

	if stageErr := p.persistJobDir(jobDir, result, req, docs); stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	exports, stageErr := p.stageExports(result, req, docs, urlExportFormats(req.ExportFormats))
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	obs.ExportPaths = exports

	message := fmt.Sprintf("Transcription complete. Language: %s. Segments: %d. Saved to %s", result.Language, len(result.Segments), jobDir)
	p.emit(observe, &obs, StageDone, message)
	return nil
}

// TranscribeFile runs the upload-sourced pipeline: no acquisition and no job
// directory, only rendering and export staging for an existing audio file.
func (p *Pipeline) TranscribeFile(ctx context.Context, audioPath string, req Request, observe Observer) error {
	obs := Observation{}

	if _, err := os.Stat(audioPath); err != nil {
		stageErr := newStageError(KindAcquisition, "input", fmt.Sprintf("audio file %s is not readable", audioPath), err)
		return p.fail(observe, &obs, stageErr)
	}
	obs.AudioPath = audioPath
	p.emit(observe, &obs, StageTranscribing, fmt.Sprintf("Transcribing %s with %s model...", filepath.Base(audioPath), req.Model))

	result, stageErr := p.transcribe(ctx, audioPath, req)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	p.recordResult(&obs, result, req)
	p.emit(observe, &obs, StageRendering, "Transcription finished. Rendering documents...")

	docs, stageErr := p.renderDocuments(result, req)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}

	exports, stageErr := p.stageExports(result, req, docs, req.ExportFormats)
	if stageErr != nil {
		return p.fail(observe, &obs, stageErr)
	}
	obs.ExportPaths = exports

	message := fmt.Sprintf("Transcription complete. Language: %s. Segments: %d.", result.Language, len(result.Segments))
	p.emit(observe, &obs, StageDone, message)
	return nil
}

func (p *Pipeline) transcribe(ctx context.Context, audioPath string, req Request) (transcript.Result, *StageError) {
	handle, loaded, err := p.cache.Ensure(ctx, req.Model)
	if err != nil {
		return transcript.Result{}, newStageError(KindModelLoad, "model", fmt.Sprintf("load model %q", req.Model), err)
	}
	if loaded {
		p.logger.Info("model loaded", logging.String("model", req.Model))
	}

	opts := whisper.Options{Task: req.Task}
	if req.Language != "" && req.Language != whisper.AutoLanguage {
		opts.Language = req.Language
	}

	started := p.now()
	result, err := handle.Run(ctx, audioPath, opts)
	if err != nil {
		return transcript.Result{}, newStageError(KindTranscription, "transcribe", "inference failed", err)
	}
	p.logger.Info("transcription finished",
		logging.String("language", result.Language),
		logging.Int("segments", len(result.Segments)),
		logging.Duration("elapsed", p.now().Sub(started)))
	return result, nil
}

func (p *Pipeline) recordResult(obs *Observation, result transcript.Result, req Request) {
	obs.Transcript = result.PlainText()
	obs.Language = result.Language
	obs.SegmentCount = len(result.Segments)
	if req.WantTimestamps {
		obs.DetailedText = transcript.RenderTimestamped(result.Segments)
	}
}

func (p *Pipeline) renderDocuments(result transcript.Result, req Request) (map[transcript.Format]string, *StageError) {
	docs := make(map[transcript.Format]string, len(req.ExportFormats))
	for _, format := range req.ExportFormats {
		doc, err := transcript.Render(format, result)
		if err != nil {
			return nil, newStageError(KindPersistence, "render", fmt.Sprintf("render %s document", format), err)
		}
		docs[format] = doc
	}
	return docs, nil
}

// persistJobDir writes transcript artifacts into the per-title job directory.
// transcript.txt is always written; the timestamped variant and any requested
// srt/vtt/json documents follow the caller's options.
func (p *Pipeline) persistJobDir(jobDir string, result transcript.Result, req Request, docs map[transcript.Format]string) *StageError {
	if err := writeDocument(filepath.Join(jobDir, "transcript.txt"), result.PlainText()); err != nil {
		return newStageError(KindPersistence, "persist", "write transcript.txt", err)
	}
	if req.WantTimestamps {
		detailed := transcript.RenderTimestamped(result.Segments)
		if err := writeDocument(filepath.Join(jobDir, "transcript_with_timestamps.txt"), detailed); err != nil {
			return newStageError(KindPersistence, "persist", "write transcript_with_timestamps.txt", err)
		}
	}
	for _, format := range req.ExportFormats {
		if format == transcript.FormatTxt {
			continue
		}
		name := "transcript." + string(format)
		if err := writeDocument(filepath.Join(jobDir, name), docs[format]); err != nil {
			return newStageError(KindPersistence, "persist", "write "+name, err)
		}
	}
	return nil
}

// stageExports copies the requested documents into the shared export
// directory under a per-invocation timestamp so callers can hand them out.
func (p *Pipeline) stageExports(result transcript.Result, req Request, docs map[transcript.Format]string, formats []transcript.Format) ([]string, *StageError) {
	if len(formats) == 0 {
		return nil, nil
	}
	if err := os.MkdirAll(p.cfg.Paths.ExportDir, 0o755); err != nil {
		return nil, newStageError(KindPersistence, "export", "create export directory", err)
	}

	stamp := naming.ExportStamp(p.now())
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		doc, ok := docs[format]
		if !ok {
			rendered, err := transcript.Render(format, result)
			if err != nil {
				return nil, newStageError(KindPersistence, "export", fmt.Sprintf("render %s document", format), err)
			}
			doc = rendered
		}
		target := filepath.Join(p.cfg.Paths.ExportDir, naming.ExportFileName(stamp, string(format)))
		if err := writeDocument(target, doc); err != nil {
			return nil, newStageError(KindPersistence, "export", "write "+filepath.Base(target), err)
		}
		paths = append(paths, target)
	}
	return paths, nil
}

// urlExportFormats filters txt out of a URL-sourced job's export selection.
// The plain text already persists as transcript.txt in the job directory.
func urlExportFormats(formats []transcript.Format) []transcript.Format {
	filtered := make([]transcript.Format, 0, len(formats))
	for _, format := range formats {
		if format == transcript.FormatTxt {
			continue
		}
		filtered = append(filtered, format)
	}
	return filtered
}

func writeDocument(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func (p *Pipeline) emit(observe Observer, obs *Observation, stage Stage, message string) {
	obs.Stage = stage
	obs.Message = message
	obs.Err = nil
	if stage == StageDone {
		obs.Percent = 100
	}
	p.logger.Info("stage update", logging.String(logging.FieldStage, string(stage)), logging.String("message", message))
	if observe != nil {
		observe(obs.snapshot())
	}
}

// fail emits the single terminal failure observation, retaining every
// artifact recorded before the failing stage.
func (p *Pipeline) fail(observe Observer, obs *Observation, stageErr *StageError) error {
	obs.Stage = StageFailed
	obs.Message = "Error: " + stageErr.Error()
	obs.Err = stageErr
	p.logger.Error("stage failed",
		logging.String(logging.FieldStage, stageErr.Stage),
		logging.String("kind", string(stageErr.Kind)),
		logging.Error(stageErr))
	if observe != nil {
		observe(obs.snapshot())
	}
	return stageErr
}
