package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/pipeline"
	"scribe/internal/services/whisper"
	"scribe/internal/transcript"
)

type transcribeFlags struct {
	model      string
	language   string
	task       string
	timestamps bool
	formats    []string
}

func (f *transcribeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Whisper model (tiny, base, small, medium, large, or a model file path)")
	cmd.Flags().StringVarP(&f.language, "language", "l", "", "Spoken language code, or auto to detect")
	cmd.Flags().StringVar(&f.task, "task", "", "Task to run: transcribe or translate")
	cmd.Flags().BoolVarP(&f.timestamps, "timestamps", "t", false, "Also produce a timestamped transcript")
	cmd.Flags().StringSliceVarP(&f.formats, "export", "e", nil, "Export formats to stage (txt, srt, vtt, json)")
}

// request merges flag values over configured defaults and validates them.
func (f *transcribeFlags) request(cfg *config.Config) (pipeline.Request, error) {
	model := strings.TrimSpace(f.model)
	if model == "" {
		model = cfg.Whisper.Model
	}
	if !whisper.IsKnownModel(model) && !strings.ContainsAny(model, "/\\") {
		return pipeline.Request{}, fmt.Errorf("unknown model %q (expected one of %s, or a model file path)", model, strings.Join(whisper.KnownModels, ", "))
	}

	language := strings.TrimSpace(f.language)
	if language == "" {
		language = cfg.Whisper.Language
	}

	task := strings.TrimSpace(f.task)
	if task == "" {
		task = cfg.Whisper.Task
	}
	if task != whisper.TaskTranscribe && task != whisper.TaskTranslate {
		return pipeline.Request{}, fmt.Errorf("invalid task %q (expected transcribe or translate)", task)
	}

	formats, err := transcript.ParseFormats(f.formats)
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		Model:          model,
		Language:       language,
		Task:           task,
		WantTimestamps: f.timestamps,
		ExportFormats:  formats,
	}, nil
}

func newURLCommand(ctx *commandContext) *cobra.Command {
	flags := &transcribeFlags{}

	cmd := &cobra.Command{
		Use:   "url <media-url>",
		Short: "Download a remote source and transcribe its audio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cfg)
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := ctx.newRunner(store)
			if err != nil {
				return err
			}

			printer := newStatusPrinter(cmd.OutOrStdout())
			_, err = runner.RunURL(cmd.Context(), args[0], req, printer.observe)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

func newFileCommand(ctx *commandContext) *cobra.Command {
	flags := &transcribeFlags{}

	cmd := &cobra.Command{
		Use:   "file <audio-path>",
		Short: "Transcribe a local audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			req, err := flags.request(cfg)
			if err != nil {
				return err
			}

			audioPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runner, err := ctx.newRunner(store)
			if err != nil {
				return err
			}

			printer := newStatusPrinter(cmd.OutOrStdout())
			_, err = runner.RunFile(cmd.Context(), audioPath, req, printer.observe)
			return err
		},
	}

	flags.register(cmd)
	return cmd
}
