package tracking

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"
	"time"
)

type fakeDisplays []image.Rectangle

func (f fakeDisplays) NumDisplays() int { return len(f) }

func (f fakeDisplays) DisplayBounds(index int) image.Rectangle {
	if index < 0 || index >= len(f) {
		return image.Rectangle{}
	}
	return f[index]
}

type fakeCursor struct{ x, y int }

func (f fakeCursor) Location() (int, int) { return f.x, f.y }

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var testDisplays = fakeDisplays{
	image.Rect(0, 0, 1920, 1080),
	image.Rect(1920, 0, 1920+2560, 1440),
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *ScriptSource, *fakeClock) {
	t.Helper()
	source := NewScriptSource()
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	base := []Option{WithClock(clock.Now), WithLogger(quietLogger())}
	return NewTracker(source, testDisplays, append(base, opts...)...), source, clock
}

func TestTrackerNormalizesAndTimestamps(t *testing.T) {
	tracker, source, clock := newTestTracker(t)

	if err := tracker.Start("screen:1:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	clock.Advance(100 * time.Millisecond)
	source.Emit(KindMove, RawEvent{X: 1920 + 1280, Y: 720})
	clock.Advance(50 * time.Millisecond)
	source.Emit(KindClick, RawEvent{X: 1920, Y: 0, Button: 1})
	clock.Advance(10 * time.Millisecond)
	source.Emit(KindScroll, RawEvent{X: 1920 + 2560, Y: 1440, Rotation: -3})

	events := tracker.Stop()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	move := events[0]
	if move.Kind != KindMove || move.TimestampMs != 100 {
		t.Fatalf("unexpected move event: %+v", move)
	}
	if move.NormX != 0.5 || move.NormY != 0.5 {
		t.Fatalf("expected centered move, got (%v, %v)", move.NormX, move.NormY)
	}

	click := events[1]
	if click.Kind != KindClick || click.TimestampMs != 150 || click.Button != 1 {
		t.Fatalf("unexpected click event: %+v", click)
	}
	if click.NormX != 0 || click.NormY != 0 {
		t.Fatalf("expected origin click, got (%v, %v)", click.NormX, click.NormY)
	}

	scroll := events[2]
	if scroll.Kind != KindScroll || scroll.ScrollDelta != -3 || scroll.NormX != 1 || scroll.NormY != 1 {
		t.Fatalf("unexpected scroll event: %+v", scroll)
	}
}

func TestTrackerClampsOutOfBoundsCoordinates(t *testing.T) {
	tracker, source, clock := newTestTracker(t)
	if err := tracker.Start("screen:0:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	points := []RawEvent{
		{X: -500, Y: -20},
		{X: 5000, Y: 9000},
		{X: 3000, Y: 500},
		{X: 960, Y: -1},
	}
	for _, p := range points {
		clock.Advance(20 * time.Millisecond)
		source.Emit(KindMove, p)
		source.Emit(KindClick, p)
	}

	for _, ev := range tracker.Stop() {
		if ev.NormX < 0 || ev.NormX > 1 || ev.NormY < 0 || ev.NormY > 1 {
			t.Fatalf("normalized coordinates escaped [0,1]: %+v", ev)
		}
	}
}

func TestTrackerThrottlesMovesOnly(t *testing.T) {
	tracker, source, clock := newTestTracker(t)
	if err := tracker.Start("screen:0:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// 20 moves 2ms apart span 40ms: accepted at 0, 8, 16, 24, 32ms.
	for i := 0; i < 20; i++ {
		source.Emit(KindMove, RawEvent{X: i, Y: i})
		source.Emit(KindClick, RawEvent{X: i, Y: i, Button: 1})
		clock.Advance(2 * time.Millisecond)
	}

	var moves, clicks int
	for _, ev := range tracker.Stop() {
		switch ev.Kind {
		case KindMove:
			moves++
		case KindClick:
			clicks++
		}
	}
	if moves != 5 {
		t.Fatalf("expected 5 throttled moves, got %d", moves)
	}
	if clicks != 20 {
		t.Fatalf("expected every click to pass, got %d", clicks)
	}
}

func TestTrackerStartTwiceIsNoop(t *testing.T) {
	tracker, source, clock := newTestTracker(t)
	if err := tracker.Start("screen:0:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	source.Emit(KindClick, RawEvent{X: 10, Y: 10})

	// A second start must not reset the buffer or the bounds.
	if err := tracker.Start("screen:1:0", clock.Now().UnixMilli()+5000); err != nil {
		t.Fatalf("second Start returned error: %v", err)
	}
	source.Emit(KindClick, RawEvent{X: 1920, Y: 1080})

	events := tracker.Stop()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[1].NormX != 1 || events[1].TimestampMs != 0 {
		t.Fatalf("second start changed session state: %+v", events[1])
	}
}

func TestTrackerStopWhenIdle(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	events := tracker.Stop()
	if events == nil || len(events) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", events)
	}
}

func TestTrackerStopClearsStateAndSurvivesSourceError(t *testing.T) {
	tracker, source, clock := newTestTracker(t)
	source.StopErr = errors.New("hook exploded")

	if err := tracker.Start("screen:0:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	source.Emit(KindClick, RawEvent{X: 1, Y: 1})

	if got := tracker.Stop(); len(got) != 1 {
		t.Fatalf("expected captured event despite stop error, got %d", len(got))
	}
	if tracker.IsRunning() {
		t.Fatal("tracker still running after Stop")
	}
	if source.Running() {
		t.Fatal("source still running after Stop")
	}

	source.Emit(KindClick, RawEvent{X: 1, Y: 1})
	if got := tracker.Stop(); len(got) != 0 {
		t.Fatalf("expected no events after stop, got %d", len(got))
	}
}

func TestTrackerStartFailure(t *testing.T) {
	tracker, source, clock := newTestTracker(t)
	source.StartErr = errors.New("no permission")

	if err := tracker.Start("screen:0:0", clock.Now().UnixMilli()); err == nil {
		t.Fatal("expected start error")
	}
	if tracker.IsRunning() {
		t.Fatal("tracker should not run after failed start")
	}
}

func TestTrackerForwardsAndSeedsCursor(t *testing.T) {
	var forwarded []CursorEvent
	tracker, source, clock := newTestTracker(t,
		WithForwarder(func(ev CursorEvent) { forwarded = append(forwarded, ev) }),
		WithCursorLocator(fakeCursor{x: 480, y: 270}),
	)

	if err := tracker.Start("window:42:0", clock.Now().UnixMilli()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	clock.Advance(30 * time.Millisecond)
	source.Emit(KindClick, RawEvent{X: 960, Y: 540, Button: 1})

	events := tracker.Stop()
	if len(forwarded) != len(events) || len(events) != 2 {
		t.Fatalf("forwarded %d events, buffered %d", len(forwarded), len(events))
	}
	seed := events[0]
	if seed.Kind != KindMove || seed.TimestampMs != 0 || seed.NormX != 0.25 || seed.NormY != 0.25 {
		t.Fatalf("unexpected seed event: %+v", seed)
	}
}

func TestResolveBounds(t *testing.T) {
	tests := []struct {
		sourceID string
		want     image.Rectangle
	}{
		{"screen:1:0", testDisplays[1]},
		{"screen:0:0", testDisplays[0]},
		{"screen:7:0", testDisplays[0]},
		{"window:1234:0", testDisplays[0]},
		{"screen:abc", testDisplays[0]},
		{"", testDisplays[0]},
	}
	for _, tt := range tests {
		if got := ResolveBounds(testDisplays, tt.sourceID); got != tt.want {
			t.Errorf("ResolveBounds(%q) = %v, want %v", tt.sourceID, got, tt.want)
		}
	}
}
