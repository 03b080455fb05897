package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWhisper(); err != nil {
		return err
	}
	if err := c.validateYtDlp(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWhisper() error {
	switch c.Whisper.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("whisper.task must be \"transcribe\" or \"translate\", got %q", c.Whisper.Task)
	}
	if c.Whisper.Model == "" {
		return errors.New("whisper.model must be set")
	}
	return nil
}

func (c *Config) validateYtDlp() error {
	if c.YtDlp.AudioFormat == "" {
		return errors.New("ytdlp.audio_format must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	return nil
}
