package playback

import "github.com/vedantwpatil/FocusFrame/internal/zoom"

// Params tunes the engine.
type Params struct {
	Blender zoom.Blender

	// SmoothingFactor is the fraction of the remaining gap closed per frame.
	SmoothingFactor float64
	// MinDelta is the gap below which a value snaps to its target.
	MinDelta float64

	// Motion blur: no blur below BlurThreshold, otherwise
	// min(MaxBlur, motion*BlurGain) pixels.
	BlurThreshold float64
	BlurGain      float64
	MaxBlur       float64
}

// DefaultParams returns the stock engine tuning.
func DefaultParams() Params {
	return Params{
		Blender:         zoom.NewBlender(),
		SmoothingFactor: 0.1,
		MinDelta:        1e-4,
		BlurThreshold:   0.0005,
		BlurGain:        120,
		MaxBlur:         6,
	}
}
