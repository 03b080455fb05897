package transcript

import (
	"fmt"
	"strings"
)

// Segment is one recognized utterance span. Text retains the engine's
// leading/trailing whitespace; renderers trim it when embedding.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Result is the structured output of one transcription call. Segments are
// ordered by non-decreasing start time and never reordered afterward.
type Result struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Segments []Segment `json:"segments"`
}

// PlainText returns the full transcript trimmed for display and persistence.
func (r Result) PlainText() string {
	return strings.TrimSpace(r.Text)
}

// Format identifies an export document format.
type Format string

const (
	FormatTxt  Format = "txt"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

// canonical export order, mirrored in CLI help and staged file listings.
var allFormats = []Format{FormatTxt, FormatSRT, FormatVTT, FormatJSON}

// ParseFormat converts a string into a known Format.
func ParseFormat(value string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, format := range allFormats {
		if normalized == format {
			return format, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", value)
}

// ParseFormats converts a list of strings into deduplicated Formats in
// canonical order. An empty input yields an empty set, which is valid.
func ParseFormats(values []string) ([]Format, error) {
	requested := make(map[Format]struct{}, len(values))
	for _, value := range values {
		format, err := ParseFormat(value)
		if err != nil {
			return nil, err
		}
		requested[format] = struct{}{}
	}
	formats := make([]Format, 0, len(requested))
	for _, format := range allFormats {
		if _, ok := requested[format]; ok {
			formats = append(formats, format)
		}
	}
	return formats, nil
}

// Contains reports whether a format set includes the given format.
func Contains(formats []Format, format Format) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}
