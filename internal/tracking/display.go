package tracking

import (
	"image"
	"strconv"
	"strings"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"
)

// DisplayLocator reports the geometry of attached displays. Index 0 is the
// primary display.
type DisplayLocator interface {
	NumDisplays() int
	DisplayBounds(index int) image.Rectangle
}

// CursorLocator reports the current pointer position in screen coordinates.
type CursorLocator interface {
	Location() (x, y int)
}

// ScreenDisplays reads display bounds from the OS.
type ScreenDisplays struct{}

func (ScreenDisplays) NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

func (ScreenDisplays) DisplayBounds(index int) image.Rectangle {
	bounds := screenshot.GetDisplayBounds(index)
	if bounds.Empty() && index == 0 {
		w, h := robotgo.GetScreenSize()
		return image.Rect(0, 0, w, h)
	}
	return bounds
}

// RobotLocator reads the pointer position through robotgo.
type RobotLocator struct{}

func (RobotLocator) Location() (int, int) {
	return robotgo.Location()
}

// ParseDisplayIndex extracts the display index from a capture source id of
// the form "screen:<index>:<n>". Window sources and malformed ids report
// false.
func ParseDisplayIndex(sourceID string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(sourceID), ":")
	if len(parts) < 2 || parts[0] != "screen" {
		return 0, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// ResolveBounds picks the display rectangle for a capture source, falling
// back to the primary display.
func ResolveBounds(displays DisplayLocator, sourceID string) image.Rectangle {
	index, ok := ParseDisplayIndex(sourceID)
	if !ok || index >= displays.NumDisplays() {
		index = 0
	}
	return displays.DisplayBounds(index)
}

// Normalize clamps a raw screen coordinate into bounds and scales it to
// [0,1] on each axis. Degenerate bounds yield 0 on that axis.
func Normalize(bounds image.Rectangle, x, y int) (float64, float64) {
	return normalizeAxis(x, bounds.Min.X, bounds.Dx()), normalizeAxis(y, bounds.Min.Y, bounds.Dy())
}

func normalizeAxis(v, origin, extent int) float64 {
	if extent <= 0 {
		return 0
	}
	v = min(max(v, origin), origin+extent)
	return float64(v-origin) / float64(extent)
}
