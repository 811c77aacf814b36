package config

import (
	"errors"
	"fmt"

	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRecording(); err != nil {
		return err
	}
	if err := c.validateTracking(); err != nil {
		return err
	}
	if err := c.validateZoom(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRecording() error {
	if c.Recording.TargetFPS <= 0 || c.Recording.TargetFPS > 240 {
		return errors.New("recording.target_fps must be between 1 and 240")
	}
	return nil
}

func (c *Config) validateTracking() error {
	if c.Tracking.MoveThrottleMs < 0 {
		return errors.New("tracking.move_throttle_ms must be non-negative")
	}
	return nil
}

func (c *Config) validateZoom() error {
	z := c.Zoom
	if !zoom.Depth(z.Depth).Valid() {
		return fmt.Errorf("zoom.depth must be between %d and %d", zoom.MinDepth, zoom.MaxDepth)
	}
	if z.DurationMs < zoom.MinRegionMs {
		return fmt.Errorf("zoom.duration_ms must be at least %d", zoom.MinRegionMs)
	}
	if z.MinIntervalMs < 0 {
		return errors.New("zoom.min_interval_ms must be non-negative")
	}
	if z.KeyframeSampleIntervalMs < 0 {
		return errors.New("zoom.keyframe_sample_interval_ms must be non-negative")
	}
	if z.KeyframeMinDistance < 0 || z.KeyframeMinDistance > 1 {
		return errors.New("zoom.keyframe_min_distance must be between 0 and 1")
	}
	if z.TrailingMinGapMs < 0 {
		return errors.New("zoom.trailing_min_gap_ms must be non-negative")
	}
	if z.TrailingDistanceRatio < 0 {
		return errors.New("zoom.trailing_distance_ratio must be non-negative")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	p := c.Playback
	if p.TransitionWindowMs < 0 {
		return errors.New("playback.transition_window_ms must be non-negative")
	}
	if _, ok := easings[p.Easing]; !ok {
		return fmt.Errorf("playback.easing: unsupported value %q", p.Easing)
	}
	if p.SmoothingFactor <= 0 || p.SmoothingFactor > 1 {
		return errors.New("playback.smoothing_factor must be in (0, 1]")
	}
	if p.MinDelta <= 0 {
		return errors.New("playback.min_delta must be positive")
	}
	if p.BlurThreshold < 0 || p.BlurGain < 0 || p.MaxBlur < 0 {
		return errors.New("playback blur settings must be non-negative")
	}
	if p.ClickToleranceMs < 0 {
		return errors.New("playback.click_tolerance_ms must be non-negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch c.Logging.Format {
	case logging.FormatAuto, logging.FormatText, logging.FormatJSON:
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
