package playback

import (
	"sort"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// DefaultClickToleranceMs is how close to a click a sample counts as
// clicking.
const DefaultClickToleranceMs = 300

// CursorSample is the reconstructed pointer at a playback time, in
// normalized frame coordinates.
type CursorSample struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	IsClick bool    `json:"isClick"`
}

// CursorTrack answers pointer queries over a recorded event stream.
type CursorTrack struct {
	events           []tracking.CursorEvent
	clicks           []int64
	ClickToleranceMs int64
}

// NewCursorTrack indexes events by time. The input is not modified.
func NewCursorTrack(events []tracking.CursorEvent) *CursorTrack {
	sorted := make([]tracking.CursorEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TimestampMs < sorted[j].TimestampMs
	})

	var clicks []int64
	for _, ev := range sorted {
		if ev.Kind == tracking.KindClick {
			clicks = append(clicks, ev.TimestampMs)
		}
	}
	return &CursorTrack{events: sorted, clicks: clicks, ClickToleranceMs: DefaultClickToleranceMs}
}

// At returns the pointer at timeMs, eased between the surrounding events.
// ok is false when the track is empty.
func (c *CursorTrack) At(timeMs int64) (sample CursorSample, ok bool) {
	n := len(c.events)
	if n == 0 {
		return CursorSample{}, false
	}

	next := sort.Search(n, func(i int) bool {
		return c.events[i].TimestampMs > timeMs
	})
	switch {
	case next == 0:
		sample = CursorSample{X: c.events[0].NormX, Y: c.events[0].NormY}
	case next == n:
		sample = CursorSample{X: c.events[n-1].NormX, Y: c.events[n-1].NormY}
	default:
		a, b := c.events[next-1], c.events[next]
		progress := geom.SmoothStep(float64(timeMs-a.TimestampMs) / float64(b.TimestampMs-a.TimestampMs))
		sample = CursorSample{
			X: geom.Lerp(a.NormX, b.NormX, progress),
			Y: geom.Lerp(a.NormY, b.NormY, progress),
		}
	}
	sample.IsClick = c.clickNear(timeMs)
	return sample, true
}

func (c *CursorTrack) clickNear(timeMs int64) bool {
	i := sort.Search(len(c.clicks), func(i int) bool {
		return c.clicks[i] >= timeMs-c.ClickToleranceMs
	})
	return i < len(c.clicks) && c.clicks[i] <= timeMs+c.ClickToleranceMs
}

// CursorAt is a one-off query over events.
func CursorAt(events []tracking.CursorEvent, timeMs int64) (CursorSample, bool) {
	return NewCursorTrack(events).At(timeMs)
}
