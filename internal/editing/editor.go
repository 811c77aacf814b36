package editing

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// ErrRegionNotFound is returned when an operation names an unknown region.
var ErrRegionNotFound = errors.New("region not found")

// ManualIDPrefix marks regions added by hand.
const ManualIDPrefix = "manual-"

// Editor owns the region list for one recording. It is not safe for
// concurrent use.
type Editor struct {
	videoPath  string
	durationMs int64
	events     []tracking.CursorEvent
	cfg        zoom.Config
	logger     *slog.Logger

	regions    []zoom.Region
	nextAutoID int
	newID      func() string
}

// NewEditor starts an empty edit of videoPath. durationMs bounds every
// region; zero leaves regions unbounded.
func NewEditor(videoPath string, durationMs int64, events []tracking.CursorEvent, cfg zoom.Config, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		videoPath:  videoPath,
		durationMs: durationMs,
		events:     events,
		cfg:        cfg,
		logger:     logger,
		nextAutoID: 1,
		newID:      func() string { return ManualIDPrefix + uuid.NewString() },
	}
}

// Regions returns a copy of the current regions ordered by start time.
func (e *Editor) Regions() []zoom.Region {
	out := make([]zoom.Region, len(e.regions))
	for i, r := range e.regions {
		out[i] = r.Clone()
	}
	return out
}

// Region returns the region with the given id.
func (e *Editor) Region(id string) (zoom.Region, error) {
	i, err := e.find(id)
	if err != nil {
		return zoom.Region{}, err
	}
	return e.regions[i].Clone(), nil
}

// Events returns the cursor events the editor synthesizes from.
func (e *Editor) Events() []tracking.CursorEvent {
	return e.events
}

// ApplyAutoZoom replaces the synthesized regions with a fresh pass over the
// events. Manual regions are kept and win any overlap. Ids keep counting up
// from previous passes. It returns the number of auto regions now present.
func (e *Editor) ApplyAutoZoom() int {
	limit := e.durationMs
	if limit <= 0 {
		limit = math.MaxInt64
	}
	generated, next := zoom.Generate(e.events, limit, e.nextAutoID, e.cfg)
	e.nextAutoID = next
	e.regions = zoom.Merge(generated, e.manualRegions())

	kept := 0
	for _, r := range e.regions {
		if r.IsAuto() {
			kept++
		}
	}
	e.logger.Info("auto zoom applied",
		"generated", len(generated),
		"kept", kept,
		"manual", len(e.regions)-kept,
	)
	return kept
}

// AddManualRegion adds a hand-authored region. Auto regions it overlaps are
// removed.
func (e *Editor) AddManualRegion(startMs, endMs int64, depth zoom.Depth, focus geom.Point) (zoom.Region, error) {
	r := zoom.Region{
		ID:      e.newID(),
		StartMs: startMs,
		EndMs:   endMs,
		Depth:   depth,
		Focus:   focus,
	}
	if err := e.validateBounds(r); err != nil {
		return zoom.Region{}, err
	}

	e.regions = zoom.Merge(e.autoRegions(), append(e.manualRegions(), r))
	e.logger.Debug("manual region added", "id", r.ID, "start_ms", startMs, "end_ms", endMs)
	return r, nil
}

// SetFocus pins a region to a static focus, discarding its keyframes.
func (e *Editor) SetFocus(id string, focus geom.Point) error {
	i, err := e.find(id)
	if err != nil {
		return err
	}
	r := e.regions[i]
	r.Focus = focus
	r.FocusKeyframes = nil
	if err := r.Validate(); err != nil {
		return fmt.Errorf("set focus: %w", err)
	}
	e.regions[i] = r
	return nil
}

// SetDepth changes a region's zoom depth.
func (e *Editor) SetDepth(id string, depth zoom.Depth) error {
	i, err := e.find(id)
	if err != nil {
		return err
	}
	if !depth.Valid() {
		return fmt.Errorf("set depth: depth %d out of range", depth)
	}
	e.regions[i].Depth = depth
	return nil
}

// DeleteRegion removes a region.
func (e *Editor) DeleteRegion(id string) error {
	i, err := e.find(id)
	if err != nil {
		return err
	}
	e.regions = append(e.regions[:i], e.regions[i+1:]...)
	return nil
}

// Project snapshots the editor for persistence.
func (e *Editor) Project() *Project {
	return &Project{
		Version:    ProjectVersion,
		Video:      e.videoPath,
		DurationMs: e.durationMs,
		NextAutoID: e.nextAutoID,
		Regions:    e.Regions(),
	}
}

// Save writes the project file next to the video.
func (e *Editor) Save() (string, error) {
	path := ProjectPath(e.videoPath)
	if err := WriteProject(e.Project(), path); err != nil {
		return "", err
	}
	return path, nil
}

// Load restores the regions saved next to the video. found is false when
// no project exists, leaving the editor unchanged.
func (e *Editor) Load() (found bool, err error) {
	p, found, err := ReadProject(ProjectPath(e.videoPath))
	if err != nil || !found {
		return found, err
	}
	e.Restore(p)
	return true, nil
}

// Restore replaces the editor state with a validated project.
func (e *Editor) Restore(p *Project) {
	regions := make([]zoom.Region, len(p.Regions))
	for i, r := range p.Regions {
		regions[i] = r.Clone()
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].StartMs < regions[j].StartMs
	})
	e.regions = regions
	e.nextAutoID = p.NextAutoID
	if p.DurationMs > 0 && e.durationMs == 0 {
		e.durationMs = p.DurationMs
	}
}

func (e *Editor) validateBounds(r zoom.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if e.durationMs > 0 && r.EndMs > e.durationMs {
		return fmt.Errorf("region %s: end %d past video duration %d", r.ID, r.EndMs, e.durationMs)
	}
	return nil
}

func (e *Editor) find(id string) (int, error) {
	for i, r := range e.regions {
		if r.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrRegionNotFound, id)
}

func (e *Editor) autoRegions() []zoom.Region {
	var out []zoom.Region
	for _, r := range e.regions {
		if r.IsAuto() {
			out = append(out, r)
		}
	}
	return out
}

func (e *Editor) manualRegions() []zoom.Region {
	var out []zoom.Region
	for _, r := range e.regions {
		if !r.IsAuto() {
			out = append(out, r)
		}
	}
	return out
}
