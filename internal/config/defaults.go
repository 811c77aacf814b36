package config

const (
	defaultConfigPath = "~/.config/focusframe/config.toml"
	projectConfigName = "focusframe.toml"

	defaultOutputDir    = "~/Videos/FocusFrame"
	defaultFFmpegBinary = "ffmpeg"
	defaultEasing       = "smootherstep"
)

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Recording: Recording{
			TargetFPS:    60,
			OutputDir:    defaultOutputDir,
			FFmpegBinary: defaultFFmpegBinary,
			CaptureVideo: true,
		},
		Tracking: Tracking{
			MoveThrottleMs: 8,
		},
		Zoom: Zoom{
			Depth:                    3,
			DurationMs:               2000,
			MinIntervalMs:            500,
			KeyframeSampleIntervalMs: 50,
			KeyframeMinDistance:      0.01,
			TrailingMinGapMs:         50,
			TrailingDistanceRatio:    0.5,
		},
		Playback: Playback{
			TransitionWindowMs: 320,
			Easing:             defaultEasing,
			SmoothingFactor:    0.1,
			MinDelta:           1e-4,
			BlurThreshold:      0.0005,
			BlurGain:           120,
			MaxBlur:            6,
			ClickToleranceMs:   300,
		},
		Logging: Logging{
			Level:  "info",
			Format: "auto",
		},
	}
}
