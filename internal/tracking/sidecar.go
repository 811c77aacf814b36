package tracking

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SidecarSuffix replaces the video extension to name the cursor data file.
const SidecarSuffix = ".cursor.json"

// SidecarPath returns the cursor data path associated with a video file.
func SidecarPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + SidecarSuffix
}

// EncodeEvents writes events as an ordered JSON array.
func EncodeEvents(w io.Writer, events []CursorEvent) error {
	if events == nil {
		events = []CursorEvent{}
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(events); err != nil {
		return fmt.Errorf("encode cursor events: %w", err)
	}
	return nil
}

// DecodeEvents reads an ordered JSON array of events.
func DecodeEvents(r io.Reader) ([]CursorEvent, error) {
	var events []CursorEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decode cursor events: %w", err)
	}
	if events == nil {
		events = []CursorEvent{}
	}
	return events, nil
}

// WriteSidecar stores events next to the video, replacing any previous file.
func WriteSidecar(videoPath string, events []CursorEvent) (string, error) {
	path := SidecarPath(videoPath)
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("create cursor sidecar: %w", err)
	}
	buf := bufio.NewWriter(file)
	if err := EncodeEvents(buf, events); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := buf.Flush(); err != nil {
		file.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("flush cursor sidecar: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("close cursor sidecar: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize cursor sidecar: %w", err)
	}
	return path, nil
}

// ReadSidecar loads the cursor data for a video. A missing sidecar is not an
// error: it reports found=false with no events.
func ReadSidecar(videoPath string) (events []CursorEvent, found bool, err error) {
	file, err := os.Open(SidecarPath(videoPath))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("open cursor sidecar: %w", err)
	}
	defer file.Close()

	events, err = DecodeEvents(bufio.NewReader(file))
	if err != nil {
		return nil, true, err
	}
	return events, true, nil
}
