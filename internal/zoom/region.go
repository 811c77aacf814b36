package zoom

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
)

// Depth is a discrete magnification level.
type Depth int

const (
	MinDepth     Depth = 1
	MaxDepth     Depth = 6
	DefaultDepth Depth = 3
)

var depthScales = [...]float64{1.25, 1.5, 1.8, 2.2, 3.5, 5.0}

// Valid reports whether d is one of the six supported levels.
func (d Depth) Valid() bool {
	return d >= MinDepth && d <= MaxDepth
}

// Scale returns the magnification factor for d. Out of range depths are
// clamped to the nearest level.
func (d Depth) Scale() float64 {
	d = min(max(d, MinDepth), MaxDepth)
	return depthScales[d-MinDepth]
}

// Keyframe is a focus sample at an offset from the region start.
type Keyframe struct {
	TimeOffsetMs int64      `json:"timeOffsetMs" yaml:"time_offset_ms"`
	Focus        geom.Point `json:"focus" yaml:"focus"`
}

// Region is a time interval during which playback zooms toward a focus.
type Region struct {
	ID             string     `json:"id" yaml:"id"`
	StartMs        int64      `json:"startMs" yaml:"start_ms"`
	EndMs          int64      `json:"endMs" yaml:"end_ms"`
	Depth          Depth      `json:"depth" yaml:"depth"`
	Focus          geom.Point `json:"focus" yaml:"focus"`
	FocusKeyframes []Keyframe `json:"focusKeyframes,omitempty" yaml:"focus_keyframes,omitempty"`
}

// AutoIDPrefix marks regions produced by Generate.
const AutoIDPrefix = "auto-zoom-"

// IsAuto reports whether the region was synthesized from clicks.
func (r Region) IsAuto() bool {
	return strings.HasPrefix(r.ID, AutoIDPrefix)
}

// DurationMs is the length of the region.
func (r Region) DurationMs() int64 {
	return r.EndMs - r.StartMs
}

// Overlaps reports whether the half-open intervals of r and o intersect.
func (r Region) Overlaps(o Region) bool {
	return !(r.EndMs <= o.StartMs || r.StartMs >= o.EndMs)
}

// Validate checks the region invariants.
func (r Region) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("region id is empty")
	}
	if r.StartMs < 0 || r.StartMs >= r.EndMs {
		return fmt.Errorf("region %s: invalid interval [%d, %d)", r.ID, r.StartMs, r.EndMs)
	}
	if !r.Depth.Valid() {
		return fmt.Errorf("region %s: depth %d out of range", r.ID, r.Depth)
	}
	if !inUnit(r.Focus) {
		return fmt.Errorf("region %s: focus (%v, %v) outside [0,1]", r.ID, r.Focus.X, r.Focus.Y)
	}
	if len(r.FocusKeyframes) == 1 {
		return fmt.Errorf("region %s: a single keyframe must be expressed as the static focus", r.ID)
	}
	var prev int64
	for i, kf := range r.FocusKeyframes {
		if kf.TimeOffsetMs < 0 || kf.TimeOffsetMs > r.DurationMs() {
			return fmt.Errorf("region %s: keyframe %d offset %d outside region", r.ID, i, kf.TimeOffsetMs)
		}
		if i > 0 && kf.TimeOffsetMs < prev {
			return fmt.Errorf("region %s: keyframe %d out of order", r.ID, i)
		}
		if !inUnit(kf.Focus) {
			return fmt.Errorf("region %s: keyframe %d focus outside [0,1]", r.ID, i)
		}
		prev = kf.TimeOffsetMs
	}
	return nil
}

// Clone returns a copy that shares no keyframe storage with r.
func (r Region) Clone() Region {
	if r.FocusKeyframes != nil {
		r.FocusKeyframes = append([]Keyframe(nil), r.FocusKeyframes...)
	}
	return r
}

func inUnit(p geom.Point) bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}
