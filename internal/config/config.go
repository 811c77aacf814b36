package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/playback"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

//go:embed sample_config.toml
var sampleConfig string

// Recording contains screen capture settings.
type Recording struct {
	TargetFPS    int    `toml:"target_fps"`
	OutputDir    string `toml:"output_dir"`
	FFmpegBinary string `toml:"ffmpeg_binary"`
	CaptureVideo bool   `toml:"capture_video"`
}

// Tracking contains cursor capture settings.
type Tracking struct {
	MoveThrottleMs int `toml:"move_throttle_ms"`
}

// Zoom contains auto-zoom synthesis settings.
type Zoom struct {
	Depth                    int     `toml:"depth"`
	DurationMs               int64   `toml:"duration_ms"`
	MinIntervalMs            int64   `toml:"min_interval_ms"`
	KeyframeSampleIntervalMs int64   `toml:"keyframe_sample_interval_ms"`
	KeyframeMinDistance      float64 `toml:"keyframe_min_distance"`
	TrailingMinGapMs         int64   `toml:"trailing_min_gap_ms"`
	TrailingDistanceRatio    float64 `toml:"trailing_distance_ratio"`
}

// Playback contains transform engine and cursor overlay settings.
type Playback struct {
	TransitionWindowMs int64   `toml:"transition_window_ms"`
	Easing             string  `toml:"easing"`
	SmoothingFactor    float64 `toml:"smoothing_factor"`
	MinDelta           float64 `toml:"min_delta"`
	BlurThreshold      float64 `toml:"blur_threshold"`
	BlurGain           float64 `toml:"blur_gain"`
	MaxBlur            float64 `toml:"max_blur"`
	ClickToleranceMs   int64   `toml:"click_tolerance_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for FocusFrame.
type Config struct {
	Recording Recording `toml:"recording"`
	Tracking  Tracking  `toml:"tracking"`
	Zoom      Zoom      `toml:"zoom"`
	Playback  Playback  `toml:"playback"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. An empty path
// searches the user config directory and then ./focusframe.toml. A missing
// file yields the defaults with exists set to false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// MoveThrottle is the minimum spacing between recorded move events.
func (c *Config) MoveThrottle() time.Duration {
	return time.Duration(c.Tracking.MoveThrottleMs) * time.Millisecond
}

// ZoomConfig converts the [zoom] section for the region synthesizer.
func (c *Config) ZoomConfig() zoom.Config {
	return zoom.Config{
		Depth:                    zoom.Depth(c.Zoom.Depth),
		DurationMs:               c.Zoom.DurationMs,
		MinIntervalMs:            c.Zoom.MinIntervalMs,
		KeyframeSampleIntervalMs: c.Zoom.KeyframeSampleIntervalMs,
		KeyframeMinDistance:      c.Zoom.KeyframeMinDistance,
		TrailingMinGapMs:         c.Zoom.TrailingMinGapMs,
		TrailingDistanceRatio:    c.Zoom.TrailingDistanceRatio,
	}
}

// PlaybackParams converts the [playback] section for the transform engine.
func (c *Config) PlaybackParams() playback.Params {
	return playback.Params{
		Blender: zoom.Blender{
			TransitionWindowMs: c.Playback.TransitionWindowMs,
			Ease:               easings[c.Playback.Easing],
		},
		SmoothingFactor: c.Playback.SmoothingFactor,
		MinDelta:        c.Playback.MinDelta,
		BlurThreshold:   c.Playback.BlurThreshold,
		BlurGain:        c.Playback.BlurGain,
		MaxBlur:         c.Playback.MaxBlur,
	}
}

var easings = map[string]func(float64) float64{
	"smootherstep": geom.SmootherStep,
	"smoothstep":   geom.SmoothStep,
	"linear":       geom.Clamp01,
}
