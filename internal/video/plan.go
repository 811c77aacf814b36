package video

import (
	"context"
	"fmt"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/playback"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// PlanOptions configures Plan.
type PlanOptions struct {
	// Stage defaults to the video's natural size.
	Stage geom.Size
	// Params defaults to playback.DefaultParams when SmoothingFactor is zero.
	Params playback.Params
	// ClickToleranceMs overrides the cursor overlay click window when positive.
	ClickToleranceMs int64
	Progress         ProgressReporter
}

// PlannedFrame is one rendered frame of the plan.
type PlannedFrame struct {
	Index int `json:"index"`
	playback.Frame
	Cursor *playback.CursorSample `json:"cursor,omitempty"`
}

// progressEvery is how many frames pass between progress reports and
// cancellation checks.
const progressEvery = 30

// Plan runs the transform engine once per video frame, in order, as a
// playing preview would. Cursor samples are attached when events are given.
func Plan(ctx context.Context, meta Metadata, regions []zoom.Region, events []tracking.CursorEvent, opts PlanOptions) ([]PlannedFrame, error) {
	total := meta.FrameCount()
	if total <= 0 {
		return nil, fmt.Errorf("video %s has no frames to plan", meta.Path)
	}
	stage := opts.Stage
	if stage.Empty() {
		stage = meta.Size()
	}

	var cursor *playback.CursorTrack
	if len(events) > 0 {
		cursor = playback.NewCursorTrack(events)
		if opts.ClickToleranceMs > 0 {
			cursor.ClickToleranceMs = opts.ClickToleranceMs
		}
	}

	params := opts.Params
	if params.SmoothingFactor == 0 {
		params = playback.DefaultParams()
	}

	engine := playback.NewEngine(params)
	layout := playback.Layout{Stage: stage, Media: meta.Size()}
	frames := make([]PlannedFrame, 0, total)
	for i := 0; i < total; i++ {
		if i%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return frames, err
			}
			if opts.Progress != nil {
				opts.Progress.Report(float64(i) / float64(total))
			}
		}

		timeMs := meta.FrameTimeMs(i)
		planned := PlannedFrame{
			Index: i,
			Frame: engine.Tick(playback.FrameInput{
				TimeMs:  timeMs,
				Regions: regions,
				Layout:  layout,
				Playing: true,
			}),
		}
		if cursor != nil {
			if sample, ok := cursor.At(timeMs); ok {
				planned.Cursor = &sample
			}
		}
		frames = append(frames, planned)
	}

	if opts.Progress != nil {
		opts.Progress.ReportComplete()
	}
	return frames, nil
}
