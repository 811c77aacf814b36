package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/video"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	var every int
	var asJSON bool
	var stageW, stageH float64

	cmd := &cobra.Command{
		Use:   "plan <video>",
		Short: "Compute per-frame zoom transforms for a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath := args[0]
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			meta, err := media.resolve(videoPath)
			if err != nil {
				return err
			}
			editor, _, err := openEditor(ctx, cmd, videoPath, meta.DurationMs)
			if err != nil {
				return err
			}

			opts := video.PlanOptions{
				Stage:            geom.Size{Width: stageW, Height: stageH},
				Params:           cfg.PlaybackParams(),
				ClickToleranceMs: cfg.Playback.ClickToleranceMs,
			}
			if logging.IsTerminal(cmd.ErrOrStderr()) {
				opts.Progress = video.NewProgressBar(cmd.ErrOrStderr(), "Planning")
			}
			frames, err := video.Plan(cmd.Context(), meta, editor.Regions(), editor.Events(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(frames)
			}

			if every < 1 {
				every = 1
			}
			rows := make([][]string, 0, len(frames)/every+1)
			for i := 0; i < len(frames); i += every {
				f := frames[i]
				cursor := ""
				if f.Cursor != nil {
					cursor = fmt.Sprintf("(%.3f, %.3f)", f.Cursor.X, f.Cursor.Y)
					if f.Cursor.IsClick {
						cursor += " click"
					}
				}
				rows = append(rows, []string{
					strconv.Itoa(f.Index),
					formatMs(f.TimeMs),
					f.RegionID,
					strconv.FormatFloat(f.Strength, 'f', 3, 64),
					strconv.FormatFloat(f.State.Scale, 'f', 3, 64),
					fmt.Sprintf("(%.3f, %.3f)", f.State.FocusX, f.State.FocusY),
					fmt.Sprintf("(%.1f, %.1f)", f.Transform.PositionX, f.Transform.PositionY),
					strconv.FormatFloat(f.BlurRadius, 'f', 2, 64),
					cursor,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Frame", "Time", "Region", "Strength", "Scale", "Focus", "Position", "Blur", "Cursor"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
	media.register(cmd)
	cmd.Flags().IntVar(&every, "every", 30, "Show every Nth frame in the table")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write every frame as JSON")
	cmd.Flags().Float64Var(&stageW, "stage-width", 0, "Stage width in pixels (defaults to the video width)")
	cmd.Flags().Float64Var(&stageH, "stage-height", 0, "Stage height in pixels (defaults to the video height)")
	return cmd
}
