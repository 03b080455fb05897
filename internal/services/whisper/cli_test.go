package whisper

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestBuildRunArgs(t *testing.T) {
	args := buildRunArgs("/models/ggml-base.bin", "/tmp/audio.mp3", "/tmp/out/transcript", Options{Task: TaskTranscribe})
	expected := []string{
		"-m", "/models/ggml-base.bin",
		"-f", "/tmp/audio.mp3",
		"-of", "/tmp/out/transcript",
		"-oj",
		"-l", "auto",
	}
	if !reflect.DeepEqual(args, expected) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestBuildRunArgsWithLanguageAndTranslate(t *testing.T) {
	args := buildRunArgs("m.bin", "a.mp3", "out", Options{Task: TaskTranslate, Language: "de"})
	joined := ""
	for _, arg := range args {
		joined += arg + " "
	}
	if want := "-l de "; !contains(args, "-l", "de") {
		t.Fatalf("expected %q in %q", want, joined)
	}
	if args[len(args)-1] != "-tr" {
		t.Fatalf("expected -tr flag, got %v", args)
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

func TestResolveModelFileFromCatalogName(t *testing.T) {
	statCalls := []string{}
	engine := NewCLIEngineForTests(
		"whisper-cli", "/models",
		nil,
		func(name string) (os.FileInfo, error) {
			statCalls = append(statCalls, name)
			return fakeFileInfo{}, nil
		},
		nil, nil,
	)
	path, err := engine.resolveModelFile("base")
	if err != nil {
		t.Fatalf("resolveModelFile failed: %v", err)
	}
	if path != filepath.Join("/models", "ggml-base.bin") {
		t.Fatalf("unexpected model path: %q", path)
	}
	if len(statCalls) != 1 {
		t.Fatalf("expected one stat, got %v", statCalls)
	}
}

func TestResolveModelFileMissing(t *testing.T) {
	engine := NewCLIEngineForTests(
		"whisper-cli", "/models",
		nil,
		func(string) (os.FileInfo, error) { return nil, fs.ErrNotExist },
		nil, nil,
	)
	if _, err := engine.resolveModelFile("base"); err == nil {
		t.Fatal("expected error for missing model file")
	}
	if _, err := engine.resolveModelFile(""); err == nil {
		t.Fatal("expected error for empty model")
	}
}

func TestHandleRunParsesEngineOutput(t *testing.T) {
	payload := `{
  "result": {"language": "en"},
  "transcription": [
    {"offsets": {"from": 0, "to": 1500}, "text": " Hello"},
    {"offsets": {"from": 1500, "to": 3000}, "text": " world"}
  ]
}`
	dir := t.TempDir()
	engine := NewCLIEngineForTests(
		"whisper-cli", dir,
		func(ctx context.Context, name string, args ...string) error {
			base := args[5]
			return os.WriteFile(base+".json", []byte(payload), 0o644)
		},
		func(string) (os.FileInfo, error) { return fakeFileInfo{}, nil },
		os.ReadFile,
		os.MkdirTemp,
	)

	handle, err := engine.Load(context.Background(), "base")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	result, err := handle.Run(context.Background(), "/tmp/audio.mp3", Options{Task: TaskTranscribe})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.Language != "en" {
		t.Fatalf("expected language en, got %q", result.Language)
	}
	if len(result.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(result.Segments))
	}
	if result.Segments[0].End != 1.5 || result.Segments[1].Start != 1.5 {
		t.Fatalf("unexpected boundaries: %+v", result.Segments)
	}
	if result.Segments[0].Text != " Hello" {
		t.Fatalf("segment text should stay untrimmed, got %q", result.Segments[0].Text)
	}
	if result.Text != " Hello world" {
		t.Fatalf("unexpected full text: %q", result.Text)
	}
}

func TestHandleRunWrapsEngineFailure(t *testing.T) {
	engine := NewCLIEngineForTests(
		"whisper-cli", "/models",
		func(context.Context, string, ...string) error { return errors.New("exit status 1") },
		func(string) (os.FileInfo, error) { return fakeFileInfo{}, nil },
		os.ReadFile,
		os.MkdirTemp,
	)
	handle, err := engine.Load(context.Background(), "base")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := handle.Run(context.Background(), "audio.mp3", Options{}); err == nil {
		t.Fatal("expected run failure to propagate")
	}
}

func TestIsKnownModel(t *testing.T) {
	for _, model := range KnownModels {
		if !IsKnownModel(model) {
			t.Errorf("expected %q to be known", model)
		}
	}
	if IsKnownModel("enormous") {
		t.Fatal("expected unknown model to be rejected")
	}
	if !IsKnownModel(" Base ") {
		t.Fatal("expected normalization before lookup")
	}
}

type fakeFileInfo struct{}

func (fakeFileInfo) Name() string       { return "ggml-base.bin" }
func (fakeFileInfo) Size() int64        { return 1 }
func (fakeFileInfo) Mode() fs.FileMode  { return 0o644 }
func (fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (fakeFileInfo) IsDir() bool        { return false }
func (fakeFileInfo) Sys() any           { return nil }
