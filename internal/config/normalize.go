package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRecording(); err != nil {
		return err
	}
	c.normalizePlayback()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeRecording() error {
	if strings.TrimSpace(c.Recording.OutputDir) == "" {
		c.Recording.OutputDir = defaultOutputDir
	}
	var err error
	if c.Recording.OutputDir, err = expandPath(c.Recording.OutputDir); err != nil {
		return fmt.Errorf("recording.output_dir: %w", err)
	}
	c.Recording.FFmpegBinary = strings.TrimSpace(c.Recording.FFmpegBinary)
	if c.Recording.FFmpegBinary == "" {
		c.Recording.FFmpegBinary = defaultFFmpegBinary
	}
	return nil
}

func (c *Config) normalizePlayback() {
	c.Playback.Easing = strings.ToLower(strings.TrimSpace(c.Playback.Easing))
	if c.Playback.Easing == "" {
		c.Playback.Easing = defaultEasing
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "auto"
	}
}
