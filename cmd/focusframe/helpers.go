package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/FocusFrame/internal/editing"
	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
	"github.com/vedantwpatil/FocusFrame/internal/video"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// mediaFlags lets commands skip probing when the caller already knows the
// stream parameters.
type mediaFlags struct {
	durationMs int64
	width      int
	height     int
	fps        float64
}

func (m *mediaFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&m.durationMs, "duration-ms", 0, "Video duration in milliseconds (probed when unset)")
	cmd.Flags().IntVar(&m.width, "width", 0, "Video width in pixels (probed when unset)")
	cmd.Flags().IntVar(&m.height, "height", 0, "Video height in pixels (probed when unset)")
	cmd.Flags().Float64Var(&m.fps, "fps", 0, "Video frame rate (probed when unset)")
}

func (m *mediaFlags) complete() bool {
	return m.durationMs > 0 && m.width > 0 && m.height > 0 && m.fps > 0
}

// resolve probes videoPath unless every parameter was given, then applies
// any explicit overrides.
func (m *mediaFlags) resolve(videoPath string) (video.Metadata, error) {
	meta := video.Metadata{Path: videoPath}
	if !m.complete() {
		probed, err := video.Probe(videoPath)
		if err != nil {
			return video.Metadata{}, fmt.Errorf("probe video (or pass --duration-ms, --width, --height and --fps): %w", err)
		}
		meta = probed
	}
	if m.durationMs > 0 {
		meta.DurationMs = m.durationMs
		meta.Frames = 0
	}
	if m.width > 0 {
		meta.Width = m.width
	}
	if m.height > 0 {
		meta.Height = m.height
	}
	if m.fps > 0 {
		meta.FPS = m.fps
		meta.Frames = 0
	}
	return meta, nil
}

// durationOnly resolves just the duration, probing when the flag is unset.
func (m *mediaFlags) durationOnly(videoPath string) (int64, error) {
	if m.durationMs > 0 {
		return m.durationMs, nil
	}
	meta, err := m.resolve(videoPath)
	if err != nil {
		return 0, err
	}
	return meta.DurationMs, nil
}

func loadEvents(videoPath string, logger *slog.Logger) ([]tracking.CursorEvent, error) {
	events, found, err := tracking.ReadSidecar(videoPath)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("no cursor sidecar; auto zoom has nothing to follow", "path", tracking.SidecarPath(videoPath))
	}
	return events, nil
}

// openEditor restores the saved project for videoPath, or synthesizes auto
// regions when there is none.
func openEditor(ctx *commandContext, cmd *cobra.Command, videoPath string, durationMs int64) (*editing.Editor, *slog.Logger, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	events, err := loadEvents(videoPath, logger)
	if err != nil {
		return nil, nil, err
	}
	editor := editing.NewEditor(videoPath, durationMs, events, cfg.ZoomConfig(), logger)
	found, err := editor.Load()
	if err != nil {
		return nil, nil, err
	}
	if !found {
		editor.ApplyAutoZoom()
	}
	return editor, logger, nil
}

func renderRegions(regions []zoom.Region) string {
	rows := make([][]string, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, []string{
			r.ID,
			formatMs(r.StartMs),
			formatMs(r.EndMs),
			strconv.Itoa(int(r.Depth)),
			strconv.FormatFloat(r.Depth.Scale(), 'f', 2, 64),
			formatPoint(r.Focus),
			strconv.Itoa(len(r.FocusKeyframes)),
		})
	}
	return renderTable(
		[]string{"ID", "Start", "End", "Depth", "Scale", "Focus", "Keyframes"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft, alignRight},
	)
}

func formatMs(ms int64) string {
	return fmt.Sprintf("%d.%03ds", ms/1000, ms%1000)
}

func formatPoint(p geom.Point) string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}
