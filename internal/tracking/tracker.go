package tracking

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"
)

// DefaultMoveThrottle caps move sampling at roughly 120 Hz.
const DefaultMoveThrottle = 8 * time.Millisecond

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithMoveThrottle sets the minimum spacing between accepted move events.
func WithMoveThrottle(d time.Duration) Option {
	return func(t *Tracker) {
		if d >= 0 {
			t.throttle = d
		}
	}
}

// WithForwarder registers a callback that receives every accepted event.
// It runs on the input source's goroutine and must not block.
func WithForwarder(fn func(CursorEvent)) Option {
	return func(t *Tracker) {
		t.forward = fn
	}
}

// WithCursorLocator seeds each session with the pointer position at start.
func WithCursorLocator(locator CursorLocator) Option {
	return func(t *Tracker) {
		t.cursor = locator
	}
}

// Tracker turns raw input into CursorEvents for one recording at a time.
type Tracker struct {
	source   InputSource
	displays DisplayLocator
	cursor   CursorLocator
	logger   *slog.Logger
	now      func() time.Time
	throttle time.Duration
	forward  func(CursorEvent)

	mu        sync.Mutex
	running   bool
	bounds    image.Rectangle
	startMs   int64
	lastMove  time.Time
	movedOnce bool
	events    []CursorEvent
}

// NewTracker builds a tracker over the given input source and displays.
func NewTracker(source InputSource, displays DisplayLocator, opts ...Option) *Tracker {
	t := &Tracker{
		source:   source,
		displays: displays,
		logger:   slog.Default(),
		now:      time.Now,
		throttle: DefaultMoveThrottle,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start begins capturing for the display identified by sourceID.
// recordingStartMs is the wall-clock Unix time in milliseconds that event
// timestamps are measured from. Calling Start while running logs a warning
// and changes nothing.
func (t *Tracker) Start(sourceID string, recordingStartMs int64) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Warn("cursor tracking already running", "source_id", sourceID)
		return nil
	}
	bounds := ResolveBounds(t.displays, sourceID)
	t.running = true
	t.bounds = bounds
	t.startMs = recordingStartMs
	t.movedOnce = false
	t.events = make([]CursorEvent, 0, 1024)
	t.mu.Unlock()

	t.source.Subscribe(KindMove, func(raw RawEvent) { t.handle(KindMove, raw) })
	t.source.Subscribe(KindClick, func(raw RawEvent) { t.handle(KindClick, raw) })
	t.source.Subscribe(KindScroll, func(raw RawEvent) { t.handle(KindScroll, raw) })

	if err := t.source.Start(); err != nil {
		t.source.Unsubscribe()
		t.mu.Lock()
		t.running = false
		t.events = nil
		t.mu.Unlock()
		return fmt.Errorf("start input source: %w", err)
	}

	if t.cursor != nil {
		x, y := t.cursor.Location()
		t.handle(KindMove, RawEvent{X: x, Y: y})
	}

	t.logger.Info("cursor tracking started",
		"source_id", sourceID,
		"display", bounds.String(),
	)
	return nil
}

// Stop ends the session and returns every captured event in order. Input
// source failures are logged; the captured events are returned regardless.
func (t *Tracker) Stop() []CursorEvent {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return []CursorEvent{}
	}
	t.running = false
	events := t.events
	t.events = nil
	t.bounds = image.Rectangle{}
	t.mu.Unlock()

	t.source.Unsubscribe()
	if err := t.source.Stop(); err != nil {
		t.logger.Warn("stop input source", "error", err)
	}

	t.logger.Info("cursor tracking stopped", "events", len(events))
	return events
}

// IsRunning reports whether a session is active.
func (t *Tracker) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Snapshot returns a copy of the events captured so far.
func (t *Tracker) Snapshot() []CursorEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]CursorEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *Tracker) handle(kind EventKind, raw RawEvent) {
	now := t.now()

	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	if kind == KindMove {
		if t.movedOnce && now.Sub(t.lastMove) < t.throttle {
			t.mu.Unlock()
			return
		}
		t.lastMove = now
		t.movedOnce = true
	}

	nx, ny := Normalize(t.bounds, raw.X, raw.Y)
	ev := CursorEvent{
		Kind:        kind,
		TimestampMs: max(now.UnixMilli()-t.startMs, 0),
		RawX:        raw.X,
		RawY:        raw.Y,
		NormX:       nx,
		NormY:       ny,
	}
	switch kind {
	case KindClick:
		ev.Button = raw.Button
	case KindScroll:
		ev.ScrollDelta = float64(raw.Rotation)
	}
	t.events = append(t.events, ev)
	forward := t.forward
	t.mu.Unlock()

	if forward != nil {
		forward(ev)
	}
}
