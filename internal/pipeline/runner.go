package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/naming"
	"scribe/internal/queue"
)

// lockRetryDelay is how often a waiting runner re-attempts the job lock.
const lockRetryDelay = 250 * time.Millisecond

// Runner executes pipeline jobs one at a time. A file lock serializes runs
// across processes, which keeps the shared model cache safe, and every run
// is recorded as a job history row.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *queue.Store
	pipeline *Pipeline
	lock     *flock.Flock
}

// NewRunner wires a pipeline to the job store and the process lock file.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *queue.Store, pipeline *Pipeline) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "runner"),
		store:    store,
		pipeline: pipeline,
		lock:     flock.New(filepath.Join(cfg.Paths.LogDir, "scribe.lock")),
	}
}

// RunURL executes a URL-sourced job under the process lock. The returned
// item reflects the job's final persisted state.
func (r *Runner) RunURL(ctx context.Context, url string, req Request, observe Observer) (*queue.Item, error) {
	return r.run(ctx, queue.SourceURL, url, "", req, observe, func(ctx context.Context, observe Observer) error {
		return r.pipeline.TranscribeURL(ctx, url, req, observe)
	})
}

// RunFile executes an upload-sourced job under the process lock.
func (r *Runner) RunFile(ctx context.Context, audioPath string, req Request, observe Observer) (*queue.Item, error) {
	title := naming.TitleFromPath(audioPath)
	return r.run(ctx, queue.SourceFile, audioPath, title, req, observe, func(ctx context.Context, observe Observer) error {
		return r.pipeline.TranscribeFile(ctx, audioPath, req, observe)
	})
}

func (r *Runner) run(ctx context.Context, sourceType queue.Source, source, title string, req Request, observe Observer, invoke func(context.Context, Observer) error) (*queue.Item, error) {
	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire job lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("job lock unavailable")
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("release job lock", logging.Error(unlockErr))
		}
	}()

	requestID := uuid.NewString()
	logger := r.logger.With(logging.String(logging.FieldRequestID, requestID))

	item, err := r.store.NewJob(ctx, requestID, sourceType, source, title, req.Model, req.Language, req.Task)
	if err != nil {
		return nil, fmt.Errorf("record job: %w", err)
	}
	logger.Info("job started",
		logging.Int64(logging.FieldJobID, item.ID),
		logging.String("source_type", string(sourceType)))

	runErr := invoke(ctx, func(obs Observation) {
		r.applyObservation(ctx, item, obs)
		if observe != nil {
			observe(obs)
		}
	})
	if runErr != nil {
		logger.Error("job failed", logging.Int64(logging.FieldJobID, item.ID), logging.Error(runErr))
		return item, runErr
	}
	logger.Info("job completed", logging.Int64(logging.FieldJobID, item.ID))
	return item, nil
}

// applyObservation maps one status observation onto the job row. Persistence
// here is best effort; a history write failure never fails the job itself.
func (r *Runner) applyObservation(ctx context.Context, item *queue.Item, obs Observation) {
	switch obs.Stage {
	case StageAcquiring:
		item.Status = queue.StatusDownloading
	case StageTranscribing:
		item.Status = queue.StatusTranscribing
	case StageRendering, StagePersisting:
		item.Status = queue.StatusRendering
	case StageDone:
		item.Status = queue.StatusCompleted
	case StageFailed:
		item.SetFailed(obs.Message)
	}

	if obs.AudioPath != "" {
		item.AudioPath = obs.AudioPath
	}
	if obs.JobDir != "" {
		item.JobDir = obs.JobDir
		item.TranscriptPath = filepath.Join(obs.JobDir, "transcript.txt")
		item.Title = filepath.Base(obs.JobDir)
	}
	if obs.Language != "" {
		item.DetectedLanguage = obs.Language
	}
	if obs.SegmentCount > 0 {
		item.SegmentCount = obs.SegmentCount
	}
	if len(obs.ExportPaths) > 0 {
		if encoded, err := json.Marshal(obs.ExportPaths); err == nil {
			item.ExportPaths = string(encoded)
		}
	}
	if obs.Stage != StageFailed {
		item.SetProgress(stageLabel(obs.Stage), obs.Message, obs.Percent)
	}

	if err := r.store.Update(ctx, item); err != nil {
		r.logger.Warn("persist job progress",
			logging.Int64(logging.FieldJobID, item.ID),
			logging.Error(err))
	}
}

func stageLabel(stage Stage) string {
	switch stage {
	case StageAcquiring:
		return "Downloading"
	case StageTranscribing:
		return "Transcribing"
	case StageRendering:
		return "Rendering"
	case StagePersisting:
		return "Saving"
	case StageDone:
		return "Completed"
	case StageFailed:
		return "Failed"
	}
	return string(stage)
}
