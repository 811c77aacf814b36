// Package geom holds the small numeric helpers shared by the zoom and
// playback packages: clamping, easing curves and spline evaluation.
package geom

import "math"

// Point is a position in normalized [0,1] frame space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Center is the middle of the frame.
var Center = Point{X: 0.5, Y: 0.5}

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether either dimension is unknown or degenerate.
func (s Size) Empty() bool {
	return !(s.Width > 0) || !(s.Height > 0)
}

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return Clamp(v, 0, 1)
}

// ClampPoint clamps both coordinates into [0, 1].
func ClampPoint(p Point) Point {
	return Point{X: Clamp01(p.X), Y: Clamp01(p.Y)}
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates each axis independently.
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// Distance is the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// SmoothStep is the cubic Hermite ease 3t²-2t³ with t clamped to [0,1].
func SmoothStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// SmootherStep is the quintic ease 6t⁵-15t⁴+10t³ with t clamped to [0,1].
// Both first and second derivatives vanish at the ends.
func SmootherStep(t float64) float64 {
	t = Clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

// CatmullRom evaluates the cardinal spline segment between p1 and p2 at
// t in [0,1], using p0 and p3 as neighbours. A tension of 0.5 gives the
// classic Catmull-Rom curve. The result equals p1 exactly at t=0 and p2
// exactly at t=1.
func CatmullRom(p0, p1, p2, p3, t, tension float64) float64 {
	t = Clamp01(t)
	if t == 0 {
		return p1
	}
	if t == 1 {
		return p2
	}
	m1 := tension * (p2 - p0)
	m2 := tension * (p3 - p1)

	t2 := t * t
	t3 := t2 * t
	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p1 + h10*m1 + h01*p2 + h11*m2
}
