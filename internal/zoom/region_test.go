package zoom

import (
	"testing"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
)

func TestDepthScaleTableIsIncreasing(t *testing.T) {
	prev := 1.0
	for d := MinDepth; d <= MaxDepth; d++ {
		s := d.Scale()
		if s <= prev {
			t.Fatalf("depth %d scale %v not above %v", d, s, prev)
		}
		prev = s
	}
	if Depth(0).Scale() != MinDepth.Scale() || Depth(9).Scale() != MaxDepth.Scale() {
		t.Fatal("out-of-range depths must clamp")
	}
}

func TestRegionValidate(t *testing.T) {
	valid := Region{ID: "ok", StartMs: 0, EndMs: 1000, Depth: 2, Focus: geom.Point{X: 0.5, Y: 0.5}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid region, got %v", err)
	}

	cases := map[string]func(r *Region){
		"empty id":        func(r *Region) { r.ID = " " },
		"inverted":        func(r *Region) { r.StartMs, r.EndMs = 1000, 1000 },
		"depth":           func(r *Region) { r.Depth = 7 },
		"focus":           func(r *Region) { r.Focus.X = 1.5 },
		"single keyframe": func(r *Region) { r.FocusKeyframes = []Keyframe{{}} },
		"unordered": func(r *Region) {
			r.FocusKeyframes = []Keyframe{{TimeOffsetMs: 500}, {TimeOffsetMs: 100}}
		},
		"offset past end": func(r *Region) {
			r.FocusKeyframes = []Keyframe{{TimeOffsetMs: 0}, {TimeOffsetMs: 1001}}
		},
	}
	for name, mutate := range cases {
		r := valid.Clone()
		mutate(&r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestRegionCloneCopiesKeyframes(t *testing.T) {
	r := keyframedRegion()
	c := r.Clone()
	c.FocusKeyframes[0].Focus.X = 0.99
	if r.FocusKeyframes[0].Focus.X == 0.99 {
		t.Fatal("Clone shares keyframe storage")
	}
}
