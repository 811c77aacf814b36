package recording_test

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/vedantwpatil/FocusFrame/internal/recording"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

type singleDisplay struct{}

func (singleDisplay) NumDisplays() int { return 1 }

func (singleDisplay) DisplayBounds(int) image.Rectangle { return image.Rect(0, 0, 1000, 500) }

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// fakeCapturer writes a placeholder file and blocks until told to stop.
type fakeCapturer struct {
	fail    error
	started chan string
}

func (f *fakeCapturer) Run(ctx context.Context, outputPath string, stop <-chan struct{}) error {
	if f.started != nil {
		f.started <- outputPath
	}
	if f.fail != nil {
		return f.fail
	}
	select {
	case <-stop:
	case <-ctx.Done():
	}
	return os.WriteFile(outputPath, []byte("video"), 0o644)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(capturer recording.VideoCapturer) (*recording.Session, *tracking.ScriptSource, *testClock) {
	clock := &testClock{now: time.UnixMilli(5_000_000)}
	source := tracking.NewScriptSource()
	tracker := tracking.NewTracker(source, singleDisplay{},
		tracking.WithClock(clock.Now),
		tracking.WithLogger(quietLogger()),
	)
	session := recording.NewSession(tracker, capturer,
		recording.WithClock(clock.Now),
		recording.WithLogger(quietLogger()),
	)
	return session, source, clock
}

func TestSessionRecordsVideoAndSidecar(t *testing.T) {
	capturer := &fakeCapturer{started: make(chan string, 1)}
	session, source, clock := newSession(capturer)
	videoPath := filepath.Join(t.TempDir(), "out", "demo.mp4")

	if err := session.Start(context.Background(), videoPath, "screen:0:0"); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if got := <-capturer.started; got != videoPath {
		t.Fatalf("capturer got %q", got)
	}
	if !session.IsRecording() {
		t.Fatal("expected session to be recording")
	}

	clock.Advance(200 * time.Millisecond)
	source.Emit(tracking.KindClick, tracking.RawEvent{X: 500, Y: 250, Button: 1})
	clock.Advance(300 * time.Millisecond)

	result, err := session.Stop()
	if err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if session.IsRecording() {
		t.Fatal("expected session to be idle")
	}
	if result.Duration != 500*time.Millisecond {
		t.Fatalf("unexpected duration %v", result.Duration)
	}
	if len(result.Events) != 1 || result.Events[0].TimestampMs != 200 || result.Events[0].NormX != 0.5 {
		t.Fatalf("unexpected events %+v", result.Events)
	}
	if source.Running() {
		t.Fatal("expected input source stopped")
	}

	if _, err := os.Stat(videoPath); err != nil {
		t.Fatalf("expected video file: %v", err)
	}
	events, found, err := tracking.ReadSidecar(videoPath)
	if err != nil || !found {
		t.Fatalf("expected sidecar, found=%v err=%v", found, err)
	}
	if result.SidecarPath != tracking.SidecarPath(videoPath) || len(events) != 1 {
		t.Fatalf("unexpected sidecar %q with %d events", result.SidecarPath, len(events))
	}
	if _, err := os.Stat(videoPath + recording.LockSuffix); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected lock file removed, got %v", err)
	}
}

func TestSessionCursorOnly(t *testing.T) {
	session, source, _ := newSession(nil)
	videoPath := filepath.Join(t.TempDir(), "cursor.mp4")

	if err := session.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	source.Emit(tracking.KindMove, tracking.RawEvent{X: 0, Y: 0})

	result, err := session.Stop()
	if err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
	if len(result.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(result.Events))
	}
	if _, found, _ := tracking.ReadSidecar(videoPath); !found {
		t.Fatal("expected sidecar without video capture")
	}
}

func TestSessionStateErrors(t *testing.T) {
	session, _, _ := newSession(nil)
	if _, err := session.Stop(); !errors.Is(err, recording.ErrNotRecording) {
		t.Fatalf("expected ErrNotRecording, got %v", err)
	}
	if session.Done() != nil {
		t.Fatal("expected nil done channel when idle")
	}

	videoPath := filepath.Join(t.TempDir(), "a.mp4")
	if err := session.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := session.Start(context.Background(), videoPath, ""); !errors.Is(err, recording.ErrAlreadyRecording) {
		t.Fatalf("expected ErrAlreadyRecording, got %v", err)
	}
	if _, err := session.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
}

func TestSessionLockPreventsSecondRecorder(t *testing.T) {
	first, _, _ := newSession(nil)
	second, _, _ := newSession(nil)
	videoPath := filepath.Join(t.TempDir(), "shared.mp4")

	if err := first.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if err := second.Start(context.Background(), videoPath, ""); !errors.Is(err, recording.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, err := first.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}

	if err := second.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("expected lock to be released, got %v", err)
	}
	if _, err := second.Stop(); err != nil {
		t.Fatalf("Stop returned error: %v", err)
	}
}

func TestSessionCaptureFailureStopsTracking(t *testing.T) {
	boom := errors.New("encoder crashed")
	session, source, _ := newSession(&fakeCapturer{fail: boom})
	videoPath := filepath.Join(t.TempDir(), "broken.mp4")

	if err := session.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	select {
	case <-session.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not end after capture failure")
	}
	if source.Running() {
		t.Fatal("expected tracking to stop with the capturer")
	}

	result, err := session.Stop()
	if !errors.Is(err, boom) {
		t.Fatalf("expected capture error, got %v", err)
	}
	if result == nil || result.SidecarPath == "" {
		t.Fatalf("expected sidecar to be written anyway, got %+v", result)
	}
}

func TestSessionStartFailureReleasesLock(t *testing.T) {
	clock := &testClock{now: time.UnixMilli(0)}
	source := tracking.NewScriptSource()
	source.StartErr = errors.New("no hook")
	tracker := tracking.NewTracker(source, singleDisplay{}, tracking.WithClock(clock.Now), tracking.WithLogger(quietLogger()))
	session := recording.NewSession(tracker, nil, recording.WithClock(clock.Now), recording.WithLogger(quietLogger()))
	videoPath := filepath.Join(t.TempDir(), "x.mp4")

	if err := session.Start(context.Background(), videoPath, ""); err == nil {
		t.Fatal("expected start error")
	}
	if session.IsRecording() {
		t.Fatal("expected idle session")
	}

	other, _, _ := newSession(nil)
	if err := other.Start(context.Background(), videoPath, ""); err != nil {
		t.Fatalf("expected lock released after failed start, got %v", err)
	}
	_, _ = other.Stop()
}
