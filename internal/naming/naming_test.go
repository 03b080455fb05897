package naming

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestSanitizeTitleStripsReservedCharacters(t *testing.T) {
	got := SanitizeTitle(`What <is> "Go"? a:b/c\d|e*`)
	if strings.ContainsAny(got, `<>:"/\|?*`) {
		t.Fatalf("reserved characters survived: %q", got)
	}
	if got != "What is Go abcde" {
		t.Fatalf("unexpected sanitized title: %q", got)
	}
}

func TestSanitizeTitleTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	if got := SanitizeTitle(long); len(got) != 100 {
		t.Fatalf("expected 100 characters, got %d", len(got))
	}
}

func TestResolveTitlePrefersTitleThenID(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	if got := ResolveTitle("My Video", "abc123", now); got != "My Video" {
		t.Fatalf("expected title, got %q", got)
	}
	if got := ResolveTitle("", "abc123", now); got != "abc123" {
		t.Fatalf("expected id fallback, got %q", got)
	}
}

func TestResolveTitleFallsBackToTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	got := ResolveTitle(`???***`, "", now)
	if got != "video_20260314_092653" {
		t.Fatalf("expected timestamp fallback, got %q", got)
	}
}

func TestFallbackTitlePattern(t *testing.T) {
	pattern := regexp.MustCompile(`^video_\d{8}_\d{6}$`)
	if got := FallbackTitle(time.Now()); !pattern.MatchString(got) {
		t.Fatalf("fallback title %q does not match pattern", got)
	}
}

func TestTitleFromPath(t *testing.T) {
	cases := map[string]string{
		"/tmp/uploads/team_standup.mp3":  "Team Standup",
		"interview.2024.flac":            "Interview 2024",
		"/x/y/NOTES.wav":                 "Notes",
		"...":                            "Uploaded Audio",
	}
	for input, expected := range cases {
		if got := TitleFromPath(input); got != expected {
			t.Errorf("TitleFromPath(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestExportFileName(t *testing.T) {
	stamp := ExportStamp(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if got := ExportFileName(stamp, "srt"); got != "transcript_20260102_030405.srt" {
		t.Fatalf("unexpected export name: %q", got)
	}
}
