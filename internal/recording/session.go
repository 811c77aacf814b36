package recording

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

var (
	// ErrAlreadyRecording is returned by Start while a session is active.
	ErrAlreadyRecording = errors.New("recording already in progress")
	// ErrNotRecording is returned by Stop when no session is active.
	ErrNotRecording = errors.New("no recording in progress")
	// ErrLocked means another process is recording to the same output.
	ErrLocked = errors.New("output is locked by another recording")
)

// LockSuffix is appended to the video path for the per-output lock file.
const LockSuffix = ".lock"

// Result describes a finished session.
type Result struct {
	VideoPath   string
	SidecarPath string
	Events      []tracking.CursorEvent
	Duration    time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the wall clock. It must agree with the tracker's.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// Session couples an optional video capturer with cursor tracking. A nil
// capturer records the cursor sidecar only.
type Session struct {
	tracker  *tracking.Tracker
	capturer VideoCapturer
	logger   *slog.Logger
	now      func() time.Time

	mu  sync.Mutex
	run *activeRun
}

type activeRun struct {
	videoPath string
	started   time.Time
	lock      *flock.Flock
	stop      chan struct{}
	done      chan struct{}
	events    []tracking.CursorEvent
	err       error
}

// NewSession builds a session around tracker and capturer.
func NewSession(tracker *tracking.Tracker, capturer VideoCapturer, opts ...Option) *Session {
	s := &Session{
		tracker:  tracker,
		capturer: capturer,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsRecording reports whether a session is active.
func (s *Session) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run != nil
}

// Start begins recording to videoPath with cursor coordinates normalized to
// the display named by sourceID. Cancelling ctx ends capture early; Stop
// must still be called to collect the result.
func (s *Session) Start(ctx context.Context, videoPath, sourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run != nil {
		return ErrAlreadyRecording
	}

	if err := os.MkdirAll(filepath.Dir(videoPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	lock := flock.New(videoPath + LockSuffix)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, videoPath)
	}

	started := s.now()
	if err := s.tracker.Start(sourceID, started.UnixMilli()); err != nil {
		_ = lock.Unlock()
		return err
	}

	run := &activeRun{
		videoPath: videoPath,
		started:   started,
		lock:      lock,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	group, gctx := errgroup.WithContext(ctx)
	if s.capturer != nil {
		group.Go(func() error {
			return s.capturer.Run(gctx, videoPath, run.stop)
		})
	}
	// Tracking ends with the session or as soon as capture fails.
	group.Go(func() error {
		select {
		case <-run.stop:
		case <-gctx.Done():
			s.logger.Warn("recording interrupted; stopping cursor tracking", "error", context.Cause(gctx))
		}
		run.events = s.tracker.Stop()
		return nil
	})
	go func() {
		run.err = group.Wait()
		close(run.done)
	}()

	s.run = run
	s.logger.Info("recording started",
		"video", videoPath,
		"source_id", sourceID,
		"capture_video", s.capturer != nil,
	)
	return nil
}

// Done is closed once the active session's capture and tracking have both
// ended, whether through Stop or a capture failure. It is nil when idle.
func (s *Session) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run == nil {
		return nil
	}
	return s.run.done
}

// Stop ends the session, writes the cursor sidecar and releases the output
// lock. The result is returned even when capture failed, together with
// that error.
func (s *Session) Stop() (*Result, error) {
	s.mu.Lock()
	run := s.run
	s.run = nil
	s.mu.Unlock()
	if run == nil {
		return nil, ErrNotRecording
	}

	close(run.stop)
	<-run.done
	defer s.releaseLock(run.lock)

	result := &Result{
		VideoPath: run.videoPath,
		Events:    run.events,
		Duration:  s.now().Sub(run.started),
	}
	sidecar, err := tracking.WriteSidecar(run.videoPath, run.events)
	if err != nil {
		return result, errors.Join(run.err, err)
	}
	result.SidecarPath = sidecar

	s.logger.Info("recording stopped",
		"video", run.videoPath,
		"sidecar", sidecar,
		"events", len(run.events),
		"duration", result.Duration,
	)
	return result, run.err
}

func (s *Session) releaseLock(lock *flock.Flock) {
	if err := lock.Unlock(); err != nil {
		s.logger.Warn("release output lock", "path", lock.Path(), "error", err)
		return
	}
	if err := os.Remove(lock.Path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("remove lock file", "path", lock.Path(), "error", err)
	}
}
