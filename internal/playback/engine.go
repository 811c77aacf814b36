package playback

import (
	"math"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// State is the smoothed animation state.
type State struct {
	Scale  float64 `json:"scale"`
	FocusX float64 `json:"focusX"`
	FocusY float64 `json:"focusY"`
}

// InitialState is unzoomed and centred.
func InitialState() State {
	return State{Scale: 1, FocusX: 0.5, FocusY: 0.5}
}

// FrameInput is a read-only snapshot of everything a tick depends on.
type FrameInput struct {
	TimeMs  int64
	Regions []zoom.Region
	Layout  Layout
	Playing bool
}

// Frame is the result of one tick. When Ready is false the layout was not
// known yet and nothing else is set.
type Frame struct {
	Ready      bool      `json:"ready"`
	TimeMs     int64     `json:"timeMs"`
	RegionID   string    `json:"regionId,omitempty"`
	Strength   float64   `json:"strength"`
	State      State     `json:"state"`
	Target     State     `json:"target"`
	Transform  Transform `json:"transform"`
	Motion     float64   `json:"motion"`
	BlurRadius float64   `json:"blurRadius"`
}

// Tick advances prev by one rendered frame. A zero State is treated as the
// initial state. If the layout is not ready, prev is returned unchanged.
func Tick(prev State, in FrameInput, p Params) (State, Frame) {
	if !in.Layout.Ready() {
		return prev, Frame{}
	}
	if prev == (State{}) {
		prev = InitialState()
	}

	frame := Frame{Ready: true, TimeMs: in.TimeMs}
	target := InitialState()
	if region, strength, ok := p.Blender.Dominant(in.Regions, in.TimeMs); ok {
		depthScale := region.Depth.Scale()
		focus := ClampFocus(zoom.FocusAt(region, in.TimeMs), depthScale)
		blended := geom.LerpPoint(geom.Center, focus, strength)

		target = State{
			Scale:  1 + (depthScale-1)*strength,
			FocusX: blended.X,
			FocusY: blended.Y,
		}
		frame.RegionID = region.ID
		frame.Strength = strength
	}

	next := State{
		Scale:  approach(prev.Scale, target.Scale, p),
		FocusX: approach(prev.FocusX, target.FocusX, p),
		FocusY: approach(prev.FocusY, target.FocusY, p),
	}

	frame.State = next
	frame.Target = target
	frame.Transform = in.Layout.Transform(next)
	frame.Motion = max(
		math.Abs(next.Scale-prev.Scale),
		math.Abs(next.FocusX-prev.FocusX),
		math.Abs(next.FocusY-prev.FocusY),
	)
	frame.BlurRadius = blurRadius(frame.Motion, in.Playing, p)
	return next, frame
}

// approach closes SmoothingFactor of the gap, or snaps once within MinDelta.
func approach(current, target float64, p Params) float64 {
	if math.Abs(target-current) > p.MinDelta {
		return current + (target-current)*p.SmoothingFactor
	}
	return target
}

func blurRadius(motion float64, playing bool, p Params) float64 {
	if !playing || motion < p.BlurThreshold {
		return 0
	}
	return geom.Clamp(motion*p.BlurGain, 0, p.MaxBlur)
}

// Engine owns the animation state between frames. It is not safe for
// concurrent use; drive it from the render loop.
type Engine struct {
	params Params
	state  State
}

// NewEngine returns an engine at the initial state.
func NewEngine(params Params) *Engine {
	return &Engine{params: params, state: InitialState()}
}

// Tick advances the engine by one frame.
func (e *Engine) Tick(in FrameInput) Frame {
	var frame Frame
	e.state, frame = Tick(e.state, in, e.params)
	return frame
}

// State returns the current animation state.
func (e *Engine) State() State {
	return e.state
}

// Reset returns the engine to the initial state, e.g. after a seek.
func (e *Engine) Reset() {
	e.state = InitialState()
}
