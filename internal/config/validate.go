package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SourceDir == "" {
		return errors.New("paths.source_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.Language == "" {
		return errors.New("download.language must be set")
	}
	if c.Download.SubtitleFormat != "srt" {
		return fmt.Errorf("download.subtitle_format: unsupported value %q (only srt is parsed)", c.Download.SubtitleFormat)
	}
	if c.Download.ListRetries < 1 {
		return errors.New("download.list_retries must be at least 1")
	}
	if c.Download.ListRetryDelay < 0 {
		return errors.New("download.list_retry_delay must not be negative")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SampleRate <= 0 {
		return errors.New("audio.sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
