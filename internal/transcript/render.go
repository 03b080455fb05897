package transcript

import (
	"encoding/json"
	"fmt"
	"strings"

	"scribe/internal/timestamp"
)

// RenderTimestamped produces the human-readable timestamped transcript:
// one "[HH:MM:SS -> HH:MM:SS] text" line per segment.
func RenderTimestamped(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		lines = append(lines, fmt.Sprintf(
			"[%s -> %s] %s",
			timestamp.Clock(segment.Start),
			timestamp.Clock(segment.End),
			strings.TrimSpace(segment.Text),
		))
	}
	return strings.Join(lines, "\n")
}

// RenderSRT produces a complete SubRip document. Cues are numbered from 1
// in input order.
func RenderSRT(segments []Segment) string {
	blocks := make([]string, 0, len(segments))
	for i, segment := range segments {
		blocks = append(blocks, fmt.Sprintf(
			"%d\n%s --> %s\n%s\n",
			i+1,
			timestamp.SRT(segment.Start),
			timestamp.SRT(segment.End),
			strings.TrimSpace(segment.Text),
		))
	}
	return strings.Join(blocks, "\n")
}

// RenderVTT produces a complete WebVTT document with the standard header.
func RenderVTT(segments []Segment) string {
	blocks := make([]string, 0, len(segments)+1)
	blocks = append(blocks, "WEBVTT\n")
	for _, segment := range segments {
		blocks = append(blocks, fmt.Sprintf(
			"%s --> %s\n%s\n",
			timestamp.VTT(segment.Start),
			timestamp.VTT(segment.End),
			strings.TrimSpace(segment.Text),
		))
	}
	return strings.Join(blocks, "\n")
}

// RenderJSON serializes the entire result as indented JSON. Unlike the other
// renderers it preserves untrimmed segment text, raw float boundaries, the
// full text, and the detected language.
func RenderJSON(result Result) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(data), nil
}

// Render produces the document for one export format.
func Render(format Format, result Result) (string, error) {
	switch format {
	case FormatTxt:
		return result.PlainText(), nil
	case FormatSRT:
		return RenderSRT(result.Segments), nil
	case FormatVTT:
		return RenderVTT(result.Segments), nil
	case FormatJSON:
		return RenderJSON(result)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
}
