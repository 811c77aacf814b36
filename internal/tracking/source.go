package tracking

import (
	"errors"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// InputSource delivers global pointer events regardless of window focus.
// Handlers are invoked from the source's own goroutine.
type InputSource interface {
	Subscribe(kind EventKind, handler func(RawEvent))
	Unsubscribe()
	Start() error
	Stop() error
}

var (
	errHookRunning    = errors.New("input hook already started")
	errHookNotRunning = errors.New("input hook not started")
)

// hookStopTimeout bounds how long Stop waits for the dispatcher to drain.
const hookStopTimeout = 2 * time.Second

// HookSource is the InputSource backed by the gohook global event hook.
type HookSource struct {
	mu       sync.Mutex
	handlers map[EventKind]func(RawEvent)
	events   chan hook.Event
	done     chan struct{}
}

// NewHookSource returns an idle hook source.
func NewHookSource() *HookSource {
	return &HookSource{handlers: make(map[EventKind]func(RawEvent))}
}

func (h *HookSource) Subscribe(kind EventKind, handler func(RawEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[kind] = handler
}

func (h *HookSource) Unsubscribe() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = make(map[EventKind]func(RawEvent))
}

// Start begins receiving OS events. The hook is process-global, so only one
// HookSource may run at a time.
func (h *HookSource) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.events != nil {
		return errHookRunning
	}

	h.events = hook.Start()
	h.done = make(chan struct{})
	go h.dispatch(h.events, h.done)
	return nil
}

// Stop ends the hook and waits for the dispatcher to finish.
func (h *HookSource) Stop() error {
	h.mu.Lock()
	events, done := h.events, h.done
	h.events, h.done = nil, nil
	h.mu.Unlock()

	if events == nil {
		return errHookNotRunning
	}

	hook.End()

	select {
	case <-done:
		return nil
	case <-time.After(hookStopTimeout):
		return errors.New("timed out waiting for input hook to stop")
	}
}

func (h *HookSource) dispatch(events chan hook.Event, done chan struct{}) {
	defer close(done)
	for ev := range events {
		kind, ok := classifyHookEvent(ev)
		if !ok {
			continue
		}

		h.mu.Lock()
		handler := h.handlers[kind]
		h.mu.Unlock()

		if handler != nil {
			handler(RawEvent{
				X:        int(ev.X),
				Y:        int(ev.Y),
				Button:   int(ev.Button),
				Rotation: int(ev.Rotation),
			})
		}
	}
}

func classifyHookEvent(ev hook.Event) (EventKind, bool) {
	switch ev.Kind {
	case hook.MouseMove, hook.MouseDrag:
		return KindMove, true
	case hook.MouseDown:
		return KindClick, true
	case hook.MouseWheel:
		return KindScroll, true
	default:
		return 0, false
	}
}

// ScriptSource replays a fixed sequence of raw events on demand. It stands
// in for the OS hook wherever a deterministic input stream is needed.
type ScriptSource struct {
	mu       sync.Mutex
	handlers map[EventKind]func(RawEvent)
	running  bool

	// StartErr and StopErr, when set, are returned by Start and Stop.
	StartErr error
	StopErr  error
}

// NewScriptSource returns an idle scripted source.
func NewScriptSource() *ScriptSource {
	return &ScriptSource{handlers: make(map[EventKind]func(RawEvent))}
}

func (s *ScriptSource) Subscribe(kind EventKind, handler func(RawEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[kind] = handler
}

func (s *ScriptSource) Unsubscribe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = make(map[EventKind]func(RawEvent))
}

func (s *ScriptSource) Start() error {
	if s.StartErr != nil {
		return s.StartErr
	}
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
	return nil
}

func (s *ScriptSource) Stop() error {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
	return s.StopErr
}

// Running reports whether Start has been called without a matching Stop.
func (s *ScriptSource) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Emit delivers one event synchronously. Events are dropped while the
// source is stopped or nothing is subscribed to the kind.
func (s *ScriptSource) Emit(kind EventKind, raw RawEvent) {
	s.mu.Lock()
	handler := s.handlers[kind]
	running := s.running
	s.mu.Unlock()

	if running && handler != nil {
		handler(raw)
	}
}
