package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scribe/internal/logging"
	"scribe/internal/naming"
	"scribe/internal/services/ytdlp"
)

// audioBaseName is the fixed basename downloads are written under. The
// retrieval engine picks the extension, so completion is detected by a
// prefix scan of the job directory.
const audioBaseName = "audio"

// acquire resolves a title for the source, creates the job directory, and
// downloads best-available audio into it. Returns the local audio path and
// the job directory.
func (p *Pipeline) acquire(ctx context.Context, url string, obs *Observation, observe Observer) (string, string, *StageError) {
	title := p.resolveTitle(ctx, url)
	jobDir := filepath.Join(p.cfg.Paths.TranscriptsDir, title)
	if err := os.MkdirAll(jobDir, 0o755); err != nil {
		return "", "", newStageError(KindAcquisition, "download", "create job directory", err)
	}
	obs.JobDir = jobDir

	template := filepath.Join(jobDir, audioBaseName+".%(ext)s")
	err := p.media.Download(ctx, url, template, func(event ytdlp.ProgressEvent) {
		p.emitDownloadProgress(observe, obs, event)
	})
	if err != nil {
		return "", "", newStageError(KindAcquisition, "download", "download failed", err)
	}

	audioPath, found := findAudioFile(jobDir, p.cfg.YtDlp.AudioFormat)
	if !found {
		return "", "", newStageError(KindAcquisition, "download", "download reported success", ErrAudioNotFound)
	}
	return audioPath, jobDir, nil
}

// resolveTitle probes the source for metadata. A failed probe falls back to
// a synthetic timestamp name rather than failing the job.
func (p *Pipeline) resolveTitle(ctx context.Context, url string) string {
	meta, err := p.media.ResolveMetadata(ctx, url)
	if err != nil {
		p.logger.Warn("metadata probe failed, using fallback title", logging.Error(err))
		return naming.FallbackTitle(p.now())
	}
	return naming.ResolveTitle(meta.Title, meta.ID, p.now())
}

func (p *Pipeline) emitDownloadProgress(observe Observer, obs *Observation, event ytdlp.ProgressEvent) {
	switch event.Phase {
	case ytdlp.PhaseDownloading:
		if event.TotalBytes > 0 {
			obs.Percent = event.Percent
			p.emit(observe, obs, StageAcquiring, fmt.Sprintf("Downloading audio: %.1f%%", event.Percent))
		} else {
			p.emit(observe, obs, StageAcquiring, fmt.Sprintf("Downloading audio: %d bytes", event.DownloadedBytes))
		}
	case ytdlp.PhaseFinished:
		obs.Percent = 100
		p.emit(observe, obs, StageAcquiring, "Download finished. Extracting audio...")
	}
}

// findAudioFile scans dir for the downloaded file by basename prefix,
// preferring the configured audio container when several candidates exist.
func findAudioFile(dir, preferredExt string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	var fallback string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), audioBaseName+".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if preferredExt != "" && strings.EqualFold(filepath.Ext(entry.Name()), "."+preferredExt) {
			return path, true
		}
		if fallback == "" {
			fallback = path
		}
	}
	return fallback, fallback != ""
}
