package zoom

import (
	"fmt"
	"sort"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

// MinRegionMs is the shortest auto region worth animating.
const MinRegionMs = 300

// Config tunes region synthesis.
type Config struct {
	Depth                    Depth
	DurationMs               int64
	MinIntervalMs            int64
	KeyframeSampleIntervalMs int64
	KeyframeMinDistance      float64

	// A trailing keyframe is appended when the final move in the window is
	// more than TrailingMinGapMs past the last keyframe and at least
	// TrailingDistanceRatio*KeyframeMinDistance away from it.
	TrailingMinGapMs      int64
	TrailingDistanceRatio float64
}

// DefaultConfig returns the stock synthesis settings.
func DefaultConfig() Config {
	return Config{
		Depth:                    DefaultDepth,
		DurationMs:               2000,
		MinIntervalMs:            500,
		KeyframeSampleIntervalMs: 50,
		KeyframeMinDistance:      0.01,
		TrailingMinGapMs:         50,
		TrailingDistanceRatio:    0.5,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if !c.Depth.Valid() {
		c.Depth = def.Depth
	}
	if c.DurationMs <= 0 {
		c.DurationMs = def.DurationMs
	}
	if c.MinIntervalMs < 0 {
		c.MinIntervalMs = def.MinIntervalMs
	}
	if c.KeyframeSampleIntervalMs < 0 {
		c.KeyframeSampleIntervalMs = def.KeyframeSampleIntervalMs
	}
	if c.KeyframeMinDistance < 0 {
		c.KeyframeMinDistance = def.KeyframeMinDistance
	}
	if c.TrailingMinGapMs < 0 {
		c.TrailingMinGapMs = def.TrailingMinGapMs
	}
	if c.TrailingDistanceRatio < 0 {
		c.TrailingDistanceRatio = def.TrailingDistanceRatio
	}
	return c
}

// AutoID formats the id of the n-th synthesized region.
func AutoID(n int) string {
	return fmt.Sprintf("%s%d", AutoIDPrefix, n)
}

// Generate builds auto-zoom regions from the primary clicks in events.
// Region ids continue from nextID; the updated counter is returned.
func Generate(events []tracking.CursorEvent, videoDurationMs int64, nextID int, cfg Config) ([]Region, int) {
	cfg = cfg.withDefaults()

	var clicks, moves []tracking.CursorEvent
	for _, ev := range events {
		switch {
		case ev.IsPrimaryClick():
			clicks = append(clicks, ev)
		case ev.Kind == tracking.KindMove:
			moves = append(moves, ev)
		}
	}
	if len(clicks) == 0 {
		return nil, nextID
	}
	sortByTime(clicks)
	sortByTime(moves)

	var regions []Region
	lastZoomEnd := -cfg.MinIntervalMs
	for _, click := range clicks {
		start := click.TimestampMs
		if start-lastZoomEnd < cfg.MinIntervalMs {
			continue
		}
		end := min(start+cfg.DurationMs, videoDurationMs)
		if end-start < MinRegionMs {
			continue
		}

		focus := eventFocus(click)
		region := Region{
			ID:      AutoID(nextID),
			StartMs: start,
			EndMs:   end,
			Depth:   cfg.Depth,
			Focus:   focus,
		}
		if kfs := reduceKeyframes(moves, start, end, focus, cfg); len(kfs) > 1 {
			region.FocusKeyframes = kfs
		}

		regions = append(regions, region)
		nextID++
		lastZoomEnd = end
	}
	return regions, nextID
}

// reduceKeyframes compresses the moves inside [start, end) into sparse
// focus waypoints. moves must be sorted by timestamp.
func reduceKeyframes(moves []tracking.CursorEvent, start, end int64, initial geom.Point, cfg Config) []Keyframe {
	keyframes := []Keyframe{{TimeOffsetMs: 0, Focus: initial}}

	first := sort.Search(len(moves), func(i int) bool {
		return moves[i].TimestampMs >= start
	})

	lastSample := start
	var final *tracking.CursorEvent
	for i := first; i < len(moves) && moves[i].TimestampMs < end; i++ {
		move := &moves[i]
		final = move
		if move.TimestampMs-lastSample < cfg.KeyframeSampleIntervalMs {
			continue
		}
		lastSample = move.TimestampMs

		focus := eventFocus(*move)
		if geom.Distance(focus, keyframes[len(keyframes)-1].Focus) >= cfg.KeyframeMinDistance {
			keyframes = append(keyframes, Keyframe{TimeOffsetMs: move.TimestampMs - start, Focus: focus})
		}
	}

	if final != nil {
		last := keyframes[len(keyframes)-1]
		offset := final.TimestampMs - start
		focus := eventFocus(*final)
		if offset-last.TimeOffsetMs > cfg.TrailingMinGapMs &&
			geom.Distance(focus, last.Focus) >= cfg.KeyframeMinDistance*cfg.TrailingDistanceRatio {
			keyframes = append(keyframes, Keyframe{TimeOffsetMs: offset, Focus: focus})
		}
	}
	return keyframes
}

func eventFocus(ev tracking.CursorEvent) geom.Point {
	return geom.ClampPoint(geom.Point{X: ev.NormX, Y: ev.NormY})
}

func sortByTime(events []tracking.CursorEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampMs < events[j].TimestampMs
	})
}
