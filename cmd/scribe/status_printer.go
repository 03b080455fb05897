package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"scribe/internal/pipeline"
)

// statusPrinter renders pipeline observations as progressive console output.
// On a terminal every download percentage update is shown; otherwise the
// noisy intermediate percentages are dropped so piped output stays readable.
type statusPrinter struct {
	out         io.Writer
	interactive bool
	lastMessage string
}

func newStatusPrinter(out io.Writer) *statusPrinter {
	return &statusPrinter{out: out, interactive: isTerminal(out)}
}

func isTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *statusPrinter) observe(obs pipeline.Observation) {
	if obs.Message == p.lastMessage {
		return
	}
	if !p.interactive && isDownloadTick(obs) {
		return
	}
	p.lastMessage = obs.Message

	fmt.Fprintln(p.out, obs.Message)
	if obs.Terminal() {
		p.printArtifacts(obs)
	}
}

func isDownloadTick(obs pipeline.Observation) bool {
	return obs.Stage == pipeline.StageAcquiring && strings.HasPrefix(obs.Message, "Downloading audio:")
}

func (p *statusPrinter) printArtifacts(obs pipeline.Observation) {
	if obs.Stage == pipeline.StageFailed {
		if obs.AudioPath != "" {
			fmt.Fprintf(p.out, "Audio retained at %s\n", obs.AudioPath)
		}
		return
	}
	if obs.DetailedText != "" {
		fmt.Fprintln(p.out, "")
		fmt.Fprintln(p.out, obs.DetailedText)
	} else if obs.Transcript != "" {
		fmt.Fprintln(p.out, "")
		fmt.Fprintln(p.out, obs.Transcript)
	}
	if len(obs.ExportPaths) > 0 {
		fmt.Fprintln(p.out, "")
		fmt.Fprintln(p.out, "Exported files:")
		for _, path := range obs.ExportPaths {
			fmt.Fprintf(p.out, "  %s\n", path)
		}
	}
}
