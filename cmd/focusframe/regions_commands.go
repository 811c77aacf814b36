package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/FocusFrame/internal/editing"
	"github.com/vedantwpatil/FocusFrame/internal/geom"
	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

func newRegionsCommand(ctx *commandContext) *cobra.Command {
	regionsCmd := &cobra.Command{
		Use:   "regions",
		Short: "Inspect and edit the zoom regions of a recording",
	}

	regionsCmd.AddCommand(newRegionsListCommand(ctx))
	regionsCmd.AddCommand(newRegionsAutoCommand(ctx))
	regionsCmd.AddCommand(newRegionsAddCommand(ctx))
	regionsCmd.AddCommand(newRegionsSetCommand(ctx))
	regionsCmd.AddCommand(newRegionsDeleteCommand(ctx))

	return regionsCmd
}

// editRegions opens the editor for videoPath, applies fn and saves, then prints
// the resulting region table.
func editRegions(ctx *commandContext, cmd *cobra.Command, media *mediaFlags, videoPath string, fn func(*editing.Editor) error) error {
	durationMs, err := media.durationOnly(videoPath)
	if err != nil {
		return err
	}
	editor, _, err := openEditor(ctx, cmd, videoPath, durationMs)
	if err != nil {
		return err
	}
	if fn != nil {
		if err := fn(editor); err != nil {
			return err
		}
		path, err := editor.Save()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderRegions(editor.Regions()))
	return nil
}

func newRegionsListCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	cmd := &cobra.Command{
		Use:   "list <video>",
		Short: "Show saved regions, or synthesized ones when nothing is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRegions(ctx, cmd, &media, args[0], nil)
		},
	}
	media.register(cmd)
	return cmd
}

func newRegionsAutoCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	cmd := &cobra.Command{
		Use:   "auto <video>",
		Short: "Re-synthesize auto zoom regions from the cursor sidecar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRegions(ctx, cmd, &media, args[0], func(e *editing.Editor) error {
				e.ApplyAutoZoom()
				return nil
			})
		},
	}
	media.register(cmd)
	return cmd
}

func newRegionsAddCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	var startMs, endMs int64
	var depth int
	var x, y float64

	cmd := &cobra.Command{
		Use:   "add <video>",
		Short: "Add a manual zoom region",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRegions(ctx, cmd, &media, args[0], func(e *editing.Editor) error {
				r, err := e.AddManualRegion(startMs, endMs, zoom.Depth(depth), geom.Point{X: x, Y: y})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", r.ID)
				return nil
			})
		},
	}
	media.register(cmd)
	cmd.Flags().Int64Var(&startMs, "start", 0, "Region start in milliseconds")
	cmd.Flags().Int64Var(&endMs, "end", 0, "Region end in milliseconds")
	cmd.Flags().IntVar(&depth, "depth", int(zoom.DefaultDepth), "Zoom depth (1-6)")
	cmd.Flags().Float64Var(&x, "x", 0.5, "Normalized focus x")
	cmd.Flags().Float64Var(&y, "y", 0.5, "Normalized focus y")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newRegionsSetCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	var depth int
	var x, y float64

	cmd := &cobra.Command{
		Use:   "set <video> <region-id>",
		Short: "Change a region's depth or pin its focus",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("depth") && !flags.Changed("x") && !flags.Changed("y") {
				return errors.New("nothing to change: pass --depth and/or --x/--y")
			}
			id := args[1]
			return editRegions(ctx, cmd, &media, args[0], func(e *editing.Editor) error {
				if flags.Changed("depth") {
					if err := e.SetDepth(id, zoom.Depth(depth)); err != nil {
						return err
					}
				}
				if flags.Changed("x") || flags.Changed("y") {
					r, err := e.Region(id)
					if err != nil {
						return err
					}
					focus := r.Focus
					if flags.Changed("x") {
						focus.X = x
					}
					if flags.Changed("y") {
						focus.Y = y
					}
					if err := e.SetFocus(id, focus); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	media.register(cmd)
	cmd.Flags().IntVar(&depth, "depth", int(zoom.DefaultDepth), "Zoom depth (1-6)")
	cmd.Flags().Float64Var(&x, "x", 0.5, "Normalized focus x")
	cmd.Flags().Float64Var(&y, "y", 0.5, "Normalized focus y")
	return cmd
}

func newRegionsDeleteCommand(ctx *commandContext) *cobra.Command {
	var media mediaFlags
	cmd := &cobra.Command{
		Use:   "delete <video> <region-id>",
		Short: "Delete a zoom region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editRegions(ctx, cmd, &media, args[0], func(e *editing.Editor) error {
				return e.DeleteRegion(args[1])
			})
		},
	}
	media.register(cmd)
	return cmd
}
