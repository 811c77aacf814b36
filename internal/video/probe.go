package video

import (
	"errors"
	"fmt"
	"math"
	"os"

	vidio "github.com/AlexEidt/Vidio"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
)

// Metadata describes a recorded video stream.
type Metadata struct {
	Path       string  `json:"path"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	DurationMs int64   `json:"durationMs"`
	FPS        float64 `json:"fps"`
	Frames     int     `json:"frames"`
}

// Size returns the natural frame size.
func (m Metadata) Size() geom.Size {
	return geom.Size{Width: float64(m.Width), Height: float64(m.Height)}
}

// FrameCount is the number of frames to plan. It prefers the container's
// frame count and falls back to duration times rate.
func (m Metadata) FrameCount() int {
	if m.Frames > 0 {
		return m.Frames
	}
	if m.FPS <= 0 || m.DurationMs <= 0 {
		return 0
	}
	return int(math.Ceil(float64(m.DurationMs) * m.FPS / 1000))
}

// FrameTimeMs is the presentation time of frame i.
func (m Metadata) FrameTimeMs(i int) int64 {
	if m.FPS <= 0 {
		return 0
	}
	return int64(math.Round(float64(i) * 1000 / m.FPS))
}

// Probe reads stream metadata from the video at path.
func Probe(path string) (Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Metadata{}, fmt.Errorf("input file does not exist: %s", path)
		}
		return Metadata{}, fmt.Errorf("stat %s: %w", path, err)
	}

	v, err := vidio.NewVideo(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open video %s: %w", path, err)
	}
	defer v.Close()

	return Metadata{
		Path:       path,
		Width:      v.Width(),
		Height:     v.Height(),
		DurationMs: int64(math.Round(v.Duration() * 1000)),
		FPS:        v.FPS(),
		Frames:     v.Frames(),
	}, nil
}
