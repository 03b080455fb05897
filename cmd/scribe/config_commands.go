package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"scribe/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			if err := config.WriteSample(target); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Adjust the whisper binary and model directory before transcribing.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show",
		Short:       "Print the resolved configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if flag := cmd.Root().PersistentFlags().Lookup("config"); flag != nil {
				path = flag.Value.String()
			}

			cfg, resolvedPath, exists, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if exists {
				fmt.Fprintf(out, "Configuration file: %s\n", resolvedPath)
			} else {
				fmt.Fprintf(out, "Configuration file: %s (not found, using defaults)\n", resolvedPath)
			}
			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "transcripts_dir = %q\n", cfg.Paths.TranscriptsDir)
			fmt.Fprintf(out, "export_dir      = %q\n", cfg.Paths.ExportDir)
			fmt.Fprintf(out, "log_dir         = %q\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "whisper.binary  = %q\n", cfg.Whisper.Binary)
			fmt.Fprintf(out, "whisper.models  = %q\n", cfg.Whisper.ModelDir)
			fmt.Fprintf(out, "whisper.model   = %q\n", cfg.Whisper.Model)
			fmt.Fprintf(out, "whisper.language = %q\n", cfg.Whisper.Language)
			fmt.Fprintf(out, "whisper.task    = %q\n", cfg.Whisper.Task)
			fmt.Fprintf(out, "ytdlp.binary    = %q\n", cfg.YtDlp.Binary)
			fmt.Fprintf(out, "ytdlp.audio_format = %q\n", cfg.YtDlp.AudioFormat)
			fmt.Fprintf(out, "logging.format  = %q\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level   = %q\n", cfg.Logging.Level)
			return nil
		},
	}
}
