package ytdlp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// Metadata is the result of a non-downloading probe.
type Metadata struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// lineRunner executes a command and forwards each stdout line. Used for both
// the metadata probe (collecting lines) and downloads (parsing progress).
type lineRunner func(ctx context.Context, name string, args []string, onLine func(string)) error

// Client invokes yt-dlp.
type Client struct {
	binary      string
	audioFormat string
	runner      lineRunner
}

// NewClient constructs a production client.
func NewClient(binary, audioFormat string) *Client {
	return &Client{
		binary:      binary,
		audioFormat: audioFormat,
		runner:      runStreaming,
	}
}

// NewClientForTests constructs a client with an injectable runner.
func NewClientForTests(binary, audioFormat string, runner lineRunner) *Client {
	return &Client{binary: binary, audioFormat: audioFormat, runner: runner}
}

func runStreaming(ctx context.Context, name string, args []string, onLine func(string)) error {
	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if onLine != nil {
			onLine(scanner.Text())
		}
	}
	if err := cmd.Wait(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%s: %w: %s", name, err, detail)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return scanner.Err()
}

// ResolveMetadata probes the source without downloading. Title or ID may be
// empty when the extractor does not provide them.
func (c *Client) ResolveMetadata(ctx context.Context, url string) (Metadata, error) {
	args := []string{"-J", "--no-warnings", "--skip-download", url}
	var output strings.Builder
	if err := c.runner(ctx, c.binary, args, func(line string) {
		output.WriteString(line)
		output.WriteByte('\n')
	}); err != nil {
		return Metadata{}, fmt.Errorf("probe metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(output.String()), &meta); err != nil {
		return Metadata{}, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}

// Download fetches the best available audio, extracting it into the
// configured audio container under outputTemplate. Progress events parsed
// from yt-dlp's progress template are forwarded to onProgress when non-nil.
func (c *Client) Download(ctx context.Context, url, outputTemplate string, onProgress ProgressFunc) error {
	args := buildDownloadArgs(url, outputTemplate, c.audioFormat)
	err := c.runner(ctx, c.binary, args, func(line string) {
		event, ok := parseProgressLine(line)
		if !ok || onProgress == nil {
			return
		}
		onProgress(event)
	})
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	return nil
}

// buildDownloadArgs builds yt-dlp args for best-audio extraction with a
// machine-readable progress stream.
func buildDownloadArgs(url, outputTemplate, audioFormat string) []string {
	return []string{
		"-f", "bestaudio/best",
		"-x",
		"--audio-format", audioFormat,
		"--audio-quality", "0",
		"-o", outputTemplate,
		"--newline",
		"--no-warnings",
		"--progress-template", progressTemplate,
		url,
	}
}
