package ytdlp

import (
	"strconv"
	"strings"
)

// Phase identifies a download progress phase.
type Phase string

const (
	PhaseDownloading Phase = "downloading"
	PhaseFinished    Phase = "finished"
)

// ProgressEvent is one observation from the downloader's progress hook.
// TotalBytes is zero when the extractor cannot estimate the final size.
type ProgressEvent struct {
	Phase           Phase
	Filename        string
	DownloadedBytes int64
	TotalBytes      int64
	Percent         float64
}

// ProgressFunc receives progress events. Implementations must be fast; the
// download goroutine calls them inline.
type ProgressFunc func(ProgressEvent)

// progressTemplate makes yt-dlp emit one parseable line per progress tick:
// "scribe-progress <status> <downloaded> <total> <filename>". Missing
// numeric fields render as NA.
const progressTemplate = "download:scribe-progress %(progress.status)s " +
	"%(progress.downloaded_bytes)s %(progress.total_bytes,progress.total_bytes_estimate)s " +
	"%(progress.filename)s"

const progressPrefix = "scribe-progress "

// parseProgressLine decodes one progress template line. Lines that are not
// progress output (extractor chatter, postprocessor logs) return ok=false.
func parseProgressLine(line string) (ProgressEvent, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, progressPrefix) {
		return ProgressEvent{}, false
	}
	fields := strings.SplitN(strings.TrimPrefix(trimmed, progressPrefix), " ", 4)
	if len(fields) < 3 {
		return ProgressEvent{}, false
	}

	event := ProgressEvent{
		DownloadedBytes: parseByteField(fields[1]),
		TotalBytes:      parseByteField(fields[2]),
	}
	switch fields[0] {
	case "downloading":
		event.Phase = PhaseDownloading
	case "finished":
		event.Phase = PhaseFinished
	default:
		return ProgressEvent{}, false
	}
	if len(fields) == 4 {
		event.Filename = strings.TrimSpace(fields[3])
	}
	if event.TotalBytes > 0 {
		event.Percent = float64(event.DownloadedBytes) / float64(event.TotalBytes) * 100
	}
	if event.Phase == PhaseFinished && event.TotalBytes > 0 {
		event.Percent = 100
	}
	return event, true
}

func parseByteField(field string) int64 {
	field = strings.TrimSpace(field)
	if field == "" || field == "NA" || field == "None" {
		return 0
	}
	// yt-dlp may render float byte counts for estimates.
	if value, err := strconv.ParseFloat(field, 64); err == nil && value > 0 {
		return int64(value)
	}
	return 0
}
