package queue_test

import (
	"context"
	"fmt"
	"testing"

	"scribe/internal/queue"
	"scribe/internal/testsupport"
)

func newJob(t *testing.T, store *queue.Store, requestID string) *queue.Item {
	t.Helper()
	item, err := store.NewJob(context.Background(), requestID, queue.SourceURL, "https://example.com/v", "Sample Talk", "base", "auto", "transcribe")
	if err != nil {
		t.Fatalf("NewJob failed: %v", err)
	}
	return item
}

func TestOpenAppliesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item := newJob(t, store, "req-1")
	if item.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if item.Status != queue.StatusPending {
		t.Fatalf("expected pending status, got %s", item.Status)
	}
	if item.CreatedAt.IsZero() || item.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps to be populated")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	newJob(t, store, "req-1")
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	items, err := reopened.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected job to survive reopen, got %d items", len(items))
	}
}

func TestGetByIDMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	item, err := store.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if item != nil {
		t.Fatalf("expected nil for missing job, got %+v", item)
	}
}

func TestUpdatePersistsArtifacts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := newJob(t, store, "req-1")
	item.Status = queue.StatusCompleted
	item.AudioPath = "/tmp/job/audio.mp3"
	item.JobDir = "/tmp/job"
	item.TranscriptPath = "/tmp/job/transcript.txt"
	item.ExportPaths = `["/tmp/export/transcript_20240101_000000.srt"]`
	item.DetectedLanguage = "en"
	item.SegmentCount = 42
	item.SetProgress("Completed", "done", 100)

	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != queue.StatusCompleted {
		t.Fatalf("expected completed status, got %s", got.Status)
	}
	if got.AudioPath != item.AudioPath || got.TranscriptPath != item.TranscriptPath {
		t.Fatalf("artifact paths not persisted: %+v", got)
	}
	if got.ExportPaths != item.ExportPaths {
		t.Fatalf("export paths not persisted: %q", got.ExportPaths)
	}
	if got.DetectedLanguage != "en" || got.SegmentCount != 42 {
		t.Fatalf("transcription metadata not persisted: %+v", got)
	}
	if got.ProgressPercent != 100 || got.ProgressStage != "Completed" {
		t.Fatalf("progress not persisted: %+v", got)
	}
}

func TestUpdateFailedJob(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	item := newJob(t, store, "req-1")
	item.SetFailed("download error: connection reset")
	if err := store.Update(ctx, item); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != queue.StatusFailed {
		t.Fatalf("expected failed status, got %s", got.Status)
	}
	if got.ErrorMessage != "download error: connection reset" {
		t.Fatalf("unexpected error message: %q", got.ErrorMessage)
	}
}

func TestListFiltersByStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		newJob(t, store, fmt.Sprintf("req-%d", i))
	}
	failed := newJob(t, store, "req-failed")
	failed.SetFailed("boom")
	if err := store.Update(ctx, failed); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 jobs, got %d", len(all))
	}

	pending, err := store.List(ctx, queue.StatusPending)
	if err != nil {
		t.Fatalf("List filtered failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending jobs, got %d", len(pending))
	}
	for _, item := range pending {
		if item.Status != queue.StatusPending {
			t.Fatalf("unexpected status in filtered list: %s", item.Status)
		}
	}
}

func TestHealthCounts(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	transitions := []queue.Status{
		queue.StatusPending,
		queue.StatusTranscribing,
		queue.StatusCompleted,
		queue.StatusFailed,
	}
	for i, status := range transitions {
		item := newJob(t, store, fmt.Sprintf("req-%d", i))
		if status == queue.StatusPending {
			continue
		}
		item.Status = status
		if err := store.Update(ctx, item); err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}

	health, err := store.Health(ctx)
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if health.Total != 4 {
		t.Fatalf("expected total 4, got %d", health.Total)
	}
	if health.Pending != 1 || health.Processing != 1 || health.Completed != 1 || health.Failed != 1 {
		t.Fatalf("unexpected health summary: %+v", health)
	}
}

func TestRemoveAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := newJob(t, store, "req-1")
	second := newJob(t, store, "req-2")
	second.Status = queue.StatusCompleted
	if err := store.Update(ctx, second); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	removed, err := store.Remove(ctx, first.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if !removed {
		t.Fatal("expected removal to report success")
	}
	removed, err = store.Remove(ctx, first.ID)
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if removed {
		t.Fatal("expected second removal to report no-op")
	}

	cleared, err := store.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted failed: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared job, got %d", cleared)
	}

	newJob(t, store, "req-3")
	total, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 remaining job cleared, got %d", total)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		input string
		want  queue.Status
		ok    bool
	}{
		{"pending", queue.StatusPending, true},
		{" Completed ", queue.StatusCompleted, true},
		{"TRANSCRIBING", queue.StatusTranscribing, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := queue.ParseStatus(tc.input)
		if ok != tc.ok {
			t.Errorf("ParseStatus(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("ParseStatus(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}
