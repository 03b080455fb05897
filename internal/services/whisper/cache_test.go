package whisper

import (
	"context"
	"errors"
	"testing"

	"scribe/internal/transcript"
)

type fakeHandle struct{ model string }

func (f *fakeHandle) Run(context.Context, string, Options) (transcript.Result, error) {
	return transcript.Result{}, nil
}

type fakeEngine struct {
	loads   []string
	loadErr error
}

func (f *fakeEngine) Load(_ context.Context, model string) (Handle, error) {
	f.loads = append(f.loads, model)
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return &fakeHandle{model: model}, nil
}

func TestEnsureLoadsOnce(t *testing.T) {
	engine := &fakeEngine{}
	cache := NewCache(engine)
	ctx := context.Background()

	first, loaded, err := cache.Ensure(ctx, "base")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if !loaded {
		t.Fatal("expected fresh load on first call")
	}

	second, loaded, err := cache.Ensure(ctx, "base")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if loaded {
		t.Fatal("expected cached handle on second call")
	}
	if first != second {
		t.Fatal("expected the same handle to be returned")
	}
	if len(engine.loads) != 1 {
		t.Fatalf("expected exactly one load, got %d", len(engine.loads))
	}
}

func TestEnsureReplacesOnDifferentModel(t *testing.T) {
	engine := &fakeEngine{}
	cache := NewCache(engine)
	ctx := context.Background()

	if _, _, err := cache.Ensure(ctx, "base"); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	handle, loaded, err := cache.Ensure(ctx, "small")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if !loaded {
		t.Fatal("expected fresh load for different model")
	}
	if handle.(*fakeHandle).model != "small" {
		t.Fatalf("expected small handle, got %q", handle.(*fakeHandle).model)
	}
	if len(engine.loads) != 2 {
		t.Fatalf("expected two loads, got %d", len(engine.loads))
	}
	if cache.Model() != "small" {
		t.Fatalf("expected cached model small, got %q", cache.Model())
	}
}

func TestEnsureLoadFailureKeepsPreviousHandle(t *testing.T) {
	engine := &fakeEngine{}
	cache := NewCache(engine)
	ctx := context.Background()

	if _, _, err := cache.Ensure(ctx, "base"); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}

	engine.loadErr = errors.New("download interrupted")
	if _, _, err := cache.Ensure(ctx, "large"); err == nil {
		t.Fatal("expected load error to propagate")
	}
	if cache.Model() != "base" {
		t.Fatalf("expected base to remain cached, got %q", cache.Model())
	}

	engine.loadErr = nil
	_, loaded, err := cache.Ensure(ctx, "base")
	if err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	if loaded {
		t.Fatal("expected base handle to still be cached")
	}
}

func TestEnsureRequiresModel(t *testing.T) {
	cache := NewCache(&fakeEngine{})
	if _, _, err := cache.Ensure(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank model")
	}
}
