package ytdlp

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestResolveMetadata(t *testing.T) {
	client := NewClientForTests("yt-dlp", "mp3", func(_ context.Context, name string, args []string, onLine func(string)) error {
		if args[0] != "-J" {
			t.Fatalf("expected -J probe, got %v", args)
		}
		onLine(`{"id": "abc123", "title": "A Talk", "duration": 120}`)
		return nil
	})

	meta, err := client.ResolveMetadata(context.Background(), "https://example.com/v/abc123")
	if err != nil {
		t.Fatalf("ResolveMetadata failed: %v", err)
	}
	if meta.Title != "A Talk" || meta.ID != "abc123" {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestResolveMetadataPropagatesFailure(t *testing.T) {
	client := NewClientForTests("yt-dlp", "mp3", func(context.Context, string, []string, func(string)) error {
		return errors.New("unable to extract video data")
	})
	if _, err := client.ResolveMetadata(context.Background(), "https://example.com/gone"); err == nil {
		t.Fatal("expected probe failure")
	}
}

func TestDownloadForwardsProgressEvents(t *testing.T) {
	lines := []string{
		"[info] extracting URL",
		"scribe-progress downloading 512 2048 /tmp/job/audio.webm",
		"scribe-progress downloading 2048 2048 /tmp/job/audio.webm",
		"scribe-progress finished 2048 2048 /tmp/job/audio.webm",
		"[ExtractAudio] Destination: /tmp/job/audio.mp3",
	}
	client := NewClientForTests("yt-dlp", "mp3", func(_ context.Context, _ string, args []string, onLine func(string)) error {
		if !reflect.DeepEqual(args[:2], []string{"-f", "bestaudio/best"}) {
			t.Fatalf("unexpected args: %v", args)
		}
		for _, line := range lines {
			onLine(line)
		}
		return nil
	})

	var events []ProgressEvent
	err := client.Download(context.Background(), "https://example.com/v", "/tmp/job/audio.%(ext)s", func(e ProgressEvent) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 progress events, got %d", len(events))
	}
	if events[0].Phase != PhaseDownloading || events[0].Percent != 25 {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[2].Phase != PhaseFinished || events[2].Percent != 100 {
		t.Fatalf("unexpected final event: %+v", events[2])
	}
	if events[0].Filename != "/tmp/job/audio.webm" {
		t.Fatalf("unexpected filename: %q", events[0].Filename)
	}
}

func TestParseProgressLineUnknownTotal(t *testing.T) {
	event, ok := parseProgressLine("scribe-progress downloading 1024 NA /tmp/audio.m4a")
	if !ok {
		t.Fatal("expected progress line to parse")
	}
	if event.TotalBytes != 0 || event.Percent != 0 {
		t.Fatalf("expected unknown total, got %+v", event)
	}
	if event.DownloadedBytes != 1024 {
		t.Fatalf("expected downloaded bytes, got %+v", event)
	}
}

func TestParseProgressLineIgnoresChatter(t *testing.T) {
	for _, line := range []string{
		"[download] Destination: audio.webm",
		"scribe-progress",
		"scribe-progress paused 1 2 f",
		"",
	} {
		if _, ok := parseProgressLine(line); ok {
			t.Errorf("expected %q to be ignored", line)
		}
	}
}

func TestBuildDownloadArgsEndsWithURL(t *testing.T) {
	args := buildDownloadArgs("https://example.com/v", "/out/audio.%(ext)s", "mp3")
	if args[len(args)-1] != "https://example.com/v" {
		t.Fatalf("expected URL last, got %v", args)
	}
	if !contains(args, "--audio-format", "mp3") || !contains(args, "-o", "/out/audio.%(ext)s") {
		t.Fatalf("missing expected args: %v", args)
	}
}

func contains(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
