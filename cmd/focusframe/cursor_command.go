package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/FocusFrame/internal/playback"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

func newCursorCommand(ctx *commandContext) *cobra.Command {
	var at []int64

	cmd := &cobra.Command{
		Use:   "cursor <video>",
		Short: "Summarize the cursor sidecar or sample the pointer at given times",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			events, found, err := tracking.ReadSidecar(args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no cursor sidecar at %s", tracking.SidecarPath(args[0]))
			}

			out := cmd.OutOrStdout()
			if len(at) == 0 {
				fmt.Fprintln(out, summarizeEvents(events))
				return nil
			}

			track := playback.NewCursorTrack(events)
			track.ClickToleranceMs = cfg.Playback.ClickToleranceMs
			rows := make([][]string, 0, len(at))
			for _, t := range at {
				sample, ok := track.At(t)
				if !ok {
					rows = append(rows, []string{formatMs(t), "-", "-", ""})
					continue
				}
				rows = append(rows, []string{
					formatMs(t),
					strconv.FormatFloat(sample.X, 'f', 4, 64),
					strconv.FormatFloat(sample.Y, 'f', 4, 64),
					strconv.FormatBool(sample.IsClick),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Time", "X", "Y", "Click"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().Int64SliceVar(&at, "at", nil, "Playback times in milliseconds to sample")
	return cmd
}

func summarizeEvents(events []tracking.CursorEvent) string {
	counts := map[tracking.EventKind]int{}
	last := map[tracking.EventKind]int64{}
	for _, ev := range events {
		counts[ev.Kind]++
		last[ev.Kind] = max(last[ev.Kind], ev.TimestampMs)
	}
	kinds := []tracking.EventKind{tracking.KindMove, tracking.KindClick, tracking.KindScroll}
	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		lastSeen := "-"
		if counts[k] > 0 {
			lastSeen = formatMs(last[k])
		}
		rows = append(rows, []string{k.String(), strconv.Itoa(counts[k]), lastSeen})
	}
	return renderTable(
		[]string{"Kind", "Events", "Last"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	)
}
