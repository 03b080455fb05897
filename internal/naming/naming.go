// Package naming derives filesystem-safe job directory names and export
// file names from media metadata.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// reservedChars are stripped (not substituted) from titles before they are
// used as directory names.
const reservedChars = `<>:"/\|?*`

// maxTitleLength caps directory names to avoid path length issues.
const maxTitleLength = 100

// SanitizeTitle removes reserved characters and truncates the result.
// Returns an empty string when nothing usable remains.
func SanitizeTitle(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if strings.ContainsRune(reservedChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	title := strings.TrimSpace(b.String())
	runes := []rune(title)
	if len(runes) > maxTitleLength {
		title = string(runes[:maxTitleLength])
	}
	return title
}

// FallbackTitle builds the synthetic video_YYYYMMDD_HHMMSS name used when no
// usable metadata exists.
func FallbackTitle(now time.Time) string {
	return "video_" + now.Format("20060102_150405")
}

// ResolveTitle picks a job directory name from source metadata: the title
// when present, the source identifier otherwise. When sanitization strips
// everything, the timestamp fallback is used so the result is never empty.
func ResolveTitle(title, id string, now time.Time) string {
	chosen := strings.TrimSpace(title)
	if chosen == "" {
		chosen = strings.TrimSpace(id)
	}
	if sanitized := SanitizeTitle(chosen); sanitized != "" {
		return sanitized
	}
	return FallbackTitle(now)
}

// TitleFromPath derives a display title from a local file path for
// upload-sourced jobs.
func TitleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, ".", " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return "Uploaded Audio"
	}
	return cases.Title(language.Und).String(base)
}

// ExportStamp formats the per-invocation suffix for staged export files.
func ExportStamp(now time.Time) string {
	return now.Format("20060102_150405")
}

// ExportFileName builds the staged export file name for one format.
func ExportFileName(stamp, extension string) string {
	return fmt.Sprintf("transcript_%s.%s", stamp, extension)
}
