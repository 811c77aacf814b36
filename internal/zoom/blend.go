package zoom

import (
	"sort"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
)

// DefaultTransitionWindowMs is the fade length on each side of a region.
const DefaultTransitionWindowMs = 320

// SplineTension is the Catmull-Rom tension used for keyframe focus paths.
const SplineTension = 0.5

// Blender resolves region strength over time.
type Blender struct {
	TransitionWindowMs int64
	Ease               func(float64) float64
}

// NewBlender returns a blender with the default window and smootherstep
// easing.
func NewBlender() Blender {
	return Blender{
		TransitionWindowMs: DefaultTransitionWindowMs,
		Ease:               geom.SmootherStep,
	}
}

// Strength is the [0,1] blend weight of r at timeMs. It ramps up over the
// window before StartMs and down over the window after EndMs.
func (b Blender) Strength(r Region, timeMs int64) float64 {
	w := b.TransitionWindowMs
	if w <= 0 {
		if timeMs >= r.StartMs && timeMs <= r.EndMs {
			return 1
		}
		return 0
	}

	leadIn := r.StartMs - w
	leadOut := r.EndMs + w
	if timeMs < leadIn || timeMs > leadOut {
		return 0
	}

	ease := b.Ease
	if ease == nil {
		ease = geom.SmootherStep
	}
	fadeIn := ease(float64(timeMs-leadIn) / float64(w))
	fadeOut := ease(float64(leadOut-timeMs) / float64(w))
	return min(fadeIn, fadeOut)
}

// Dominant returns the region with the greatest strength at timeMs. Ties
// go to the earlier entry in regions. ok is false when no region has a
// positive strength.
func (b Blender) Dominant(regions []Region, timeMs int64) (region Region, strength float64, ok bool) {
	best := -1
	for i, r := range regions {
		s := b.Strength(r, timeMs)
		if s > 0 && s > strength {
			best, strength = i, s
		}
	}
	if best < 0 {
		return Region{}, 0, false
	}
	return regions[best], strength, true
}

// Dominant resolves the dominant region with the default blender.
func Dominant(regions []Region, timeMs int64) (Region, float64, bool) {
	return NewBlender().Dominant(regions, timeMs)
}

// FocusAt returns the focus of r at timeMs, following its keyframes along a
// Catmull-Rom path when present.
func FocusAt(r Region, timeMs int64) geom.Point {
	kfs := r.FocusKeyframes
	if len(kfs) == 0 {
		return r.Focus
	}

	offset := timeMs - r.StartMs
	if offset < kfs[0].TimeOffsetMs {
		return kfs[0].Focus
	}
	last := len(kfs) - 1
	if offset >= kfs[last].TimeOffsetMs {
		return kfs[last].Focus
	}

	// First keyframe strictly after offset; its predecessor brackets it.
	i := sort.Search(len(kfs), func(i int) bool {
		return kfs[i].TimeOffsetMs > offset
	})
	p1, p2 := kfs[i-1], kfs[i]
	span := p2.TimeOffsetMs - p1.TimeOffsetMs
	if span <= 0 {
		return p1.Focus
	}
	t := float64(offset-p1.TimeOffsetMs) / float64(span)

	p0 := kfs[max(i-2, 0)]
	p3 := kfs[min(i+1, last)]

	return geom.ClampPoint(geom.Point{
		X: geom.CatmullRom(p0.Focus.X, p1.Focus.X, p2.Focus.X, p3.Focus.X, t, SplineTension),
		Y: geom.CatmullRom(p0.Focus.Y, p1.Focus.Y, p2.Focus.Y, p3.Focus.Y, t, SplineTension),
	})
}
