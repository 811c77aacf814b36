package tracking

import "fmt"

// EventKind distinguishes pointer activity types.
type EventKind uint8

const (
	KindMove EventKind = iota + 1
	KindClick
	KindScroll
)

// String returns the wire name of the kind.
func (k EventKind) String() string {
	switch k {
	case KindMove:
		return "move"
	case KindClick:
		return "click"
	case KindScroll:
		return "scroll"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	switch k {
	case KindMove, KindClick, KindScroll:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown event kind %d", uint8(k))
}

// UnmarshalText decodes a kind name.
func (k *EventKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "move":
		*k = KindMove
	case "click":
		*k = KindClick
	case "scroll":
		*k = KindScroll
	default:
		return fmt.Errorf("unknown event kind %q", text)
	}
	return nil
}

// PrimaryButton is the button number the hook reports for a left click.
const PrimaryButton = 1

// CursorEvent is one normalized pointer sample. Button 0 means the source
// did not report a button.
type CursorEvent struct {
	Kind        EventKind `json:"type"`
	TimestampMs int64     `json:"timestampMs"`
	RawX        int       `json:"rawX"`
	RawY        int       `json:"rawY"`
	NormX       float64   `json:"normX"`
	NormY       float64   `json:"normY"`
	Button      int       `json:"button,omitempty"`
	ScrollDelta float64   `json:"scrollDelta,omitempty"`
}

// IsPrimaryClick reports whether the event is a click of the primary
// button, or a click with no button information.
func (e CursorEvent) IsPrimaryClick() bool {
	return e.Kind == KindClick && (e.Button == 0 || e.Button == PrimaryButton)
}

// RawEvent is what an InputSource delivers: screen coordinates plus the
// optional button and wheel rotation.
type RawEvent struct {
	X        int
	Y        int
	Button   int
	Rotation int
}
