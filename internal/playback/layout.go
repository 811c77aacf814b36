package playback

import (
	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// Layout is the stage and source media geometry a frame is rendered into.
// Either size may be zero while the renderer is still loading.
type Layout struct {
	Stage geom.Size `json:"stage"`
	Media geom.Size `json:"media"`
}

// Ready reports whether both sizes are known.
func (l Layout) Ready() bool {
	return !l.Stage.Empty() && !l.Media.Empty()
}

// BaseScale fits the media inside the stage preserving aspect ratio.
func (l Layout) BaseScale() float64 {
	return min(l.Stage.Width/l.Media.Width, l.Stage.Height/l.Media.Height)
}

// MaskRect is the letterboxed media rectangle in stage pixels.
func (l Layout) MaskRect() geom.Rect {
	base := l.BaseScale()
	w, h := l.Media.Width*base, l.Media.Height*base
	return geom.Rect{
		X:      (l.Stage.Width - w) / 2,
		Y:      (l.Stage.Height - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Transform is what the renderer applies to the media sprite.
type Transform struct {
	AbsoluteScale float64   `json:"absoluteScale"`
	PositionX     float64   `json:"positionX"`
	PositionY     float64   `json:"positionY"`
	MaskRect      geom.Rect `json:"maskRect"`
}

// Transform places the media so the state's focus lands on the stage centre
// at the state's scale.
func (l Layout) Transform(s State) Transform {
	base := l.BaseScale()
	focusX := s.FocusX * l.Media.Width * base
	focusY := s.FocusY * l.Media.Height * base
	return Transform{
		AbsoluteScale: base * s.Scale,
		PositionX:     l.Stage.Width/2 - focusX*s.Scale,
		PositionY:     l.Stage.Height/2 - focusY*s.Scale,
		MaskRect:      l.MaskRect(),
	}
}

// FocusIndicator is the stage-pixel rectangle a region of the given depth
// shows when fully zoomed on focus.
func (l Layout) FocusIndicator(focus geom.Point, depth zoom.Depth) geom.Rect {
	mask := l.MaskRect()
	scale := depth.Scale()
	focus = ClampFocus(focus, scale)
	w, h := mask.Width/scale, mask.Height/scale
	return geom.Rect{
		X:      mask.X + focus.X*mask.Width - w/2,
		Y:      mask.Y + focus.Y*mask.Height - h/2,
		Width:  w,
		Height: h,
	}
}

// FocusRange is the interval of valid focus coordinates at scale: the
// frame shrunk by half the zoomed viewport on each side. When the viewport
// covers the whole frame only the centre is valid.
func FocusRange(scale float64) (lo, hi float64) {
	if scale <= 1 {
		return 0.5, 0.5
	}
	half := 0.5 / scale
	return half, 1 - half
}

// ClampFocus keeps focus inside FocusRange(scale) on both axes.
func ClampFocus(focus geom.Point, scale float64) geom.Point {
	lo, hi := FocusRange(scale)
	return geom.Point{
		X: geom.Clamp(focus.X, lo, hi),
		Y: geom.Clamp(focus.Y, lo, hi),
	}
}
