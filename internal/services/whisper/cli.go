package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"scribe/internal/transcript"
)

// commandRunner abstracts process execution for testability.
type commandRunner func(ctx context.Context, name string, args ...string) error

// CLIEngine wraps a whisper.cpp style binary that writes JSON transcripts.
type CLIEngine struct {
	binary   string
	modelDir string
	runner   commandRunner
	stat     func(name string) (os.FileInfo, error)
	readFile func(name string) ([]byte, error)
	tempDir  func(dir, pattern string) (string, error)
}

// NewCLIEngine constructs the production engine.
func NewCLIEngine(binary, modelDir string) *CLIEngine {
	return &CLIEngine{
		binary:   binary,
		modelDir: modelDir,
		runner:   runCommand,
		stat:     os.Stat,
		readFile: os.ReadFile,
		tempDir:  os.MkdirTemp,
	}
}

// NewCLIEngineForTests constructs an engine with injectable dependencies.
func NewCLIEngineForTests(
	binary, modelDir string,
	runner commandRunner,
	stat func(name string) (os.FileInfo, error),
	readFile func(name string) ([]byte, error),
	tempDir func(dir, pattern string) (string, error),
) *CLIEngine {
	return &CLIEngine{
		binary:   binary,
		modelDir: modelDir,
		runner:   runner,
		stat:     stat,
		readFile: readFile,
		tempDir:  tempDir,
	}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Load resolves the model identifier to a model file and returns a handle
// bound to it. Catalog names map to ggml-<name>.bin inside the model
// directory; explicit paths are used as-is.
func (e *CLIEngine) Load(ctx context.Context, model string) (Handle, error) {
	path, err := e.resolveModelFile(model)
	if err != nil {
		return nil, err
	}
	return &cliHandle{engine: e, modelPath: path, model: model}, nil
}

func (e *CLIEngine) resolveModelFile(model string) (string, error) {
	trimmed := strings.TrimSpace(model)
	if trimmed == "" {
		return "", fmt.Errorf("model identifier is required")
	}

	if strings.ContainsRune(trimmed, os.PathSeparator) || strings.HasSuffix(trimmed, ".bin") || strings.HasSuffix(trimmed, ".gguf") {
		if _, err := e.stat(trimmed); err != nil {
			return "", fmt.Errorf("model file %s: %w", trimmed, err)
		}
		return trimmed, nil
	}

	candidate := filepath.Join(e.modelDir, "ggml-"+trimmed+".bin")
	if _, err := e.stat(candidate); err != nil {
		return "", fmt.Errorf("model %q not found in %s: %w", trimmed, e.modelDir, err)
	}
	return candidate, nil
}

type cliHandle struct {
	engine    *CLIEngine
	modelPath string
	model     string
}

// Run invokes the engine binary synchronously and parses its JSON output.
// This call dominates pipeline latency and blocks until inference finishes.
func (h *cliHandle) Run(ctx context.Context, audioPath string, opts Options) (transcript.Result, error) {
	workDir, err := h.engine.tempDir("", "scribe-whisper-*")
	if err != nil {
		return transcript.Result{}, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	outputBase := filepath.Join(workDir, "transcript")
	args := buildRunArgs(h.modelPath, audioPath, outputBase, opts)
	if err := h.engine.runner(ctx, h.engine.binary, args...); err != nil {
		return transcript.Result{}, fmt.Errorf("model %s: %w", h.model, err)
	}

	data, err := h.engine.readFile(outputBase + ".json")
	if err != nil {
		return transcript.Result{}, fmt.Errorf("read engine output: %w", err)
	}
	return parseEngineOutput(data)
}

// buildRunArgs builds engine CLI args for JSON transcript export.
func buildRunArgs(modelPath, audioPath, outputBase string, opts Options) []string {
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-of", outputBase,
		"-oj",
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = AutoLanguage
	}
	args = append(args, "-l", language)
	if opts.Task == TaskTranslate {
		args = append(args, "-tr")
	}
	return args
}

// engine JSON output shape (whisper.cpp -oj).
type enginePayload struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func parseEngineOutput(data []byte) (transcript.Result, error) {
	var payload enginePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return transcript.Result{}, fmt.Errorf("parse engine output: %w", err)
	}

	result := transcript.Result{Language: payload.Result.Language}
	var text strings.Builder
	for _, entry := range payload.Transcription {
		result.Segments = append(result.Segments, transcript.Segment{
			Start: float64(entry.Offsets.From) / 1000,
			End:   float64(entry.Offsets.To) / 1000,
			Text:  entry.Text,
		})
		text.WriteString(entry.Text)
	}
	result.Text = text.String()
	return result, nil
}
