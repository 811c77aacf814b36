package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/FocusFrame/internal/config"
	"github.com/vedantwpatil/FocusFrame/internal/logging"
	"github.com/vedantwpatil/FocusFrame/internal/recording"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

func newRecordCommand(ctx *commandContext) *cobra.Command {
	var display string
	var noVideo bool
	var limit time.Duration

	cmd := &cobra.Command{
		Use:   "record [output]",
		Short: "Record the screen and cursor until interrupted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			output := filepath.Join(cfg.Recording.OutputDir, "focusframe-"+time.Now().Format("20060102-150405")+".mp4")
			if len(args) == 1 {
				if output, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			tracker := tracking.NewTracker(tracking.NewHookSource(), tracking.ScreenDisplays{},
				tracking.WithLogger(logging.NewComponentLogger(logger, "tracker")),
				tracking.WithMoveThrottle(cfg.MoveThrottle()),
				tracking.WithCursorLocator(tracking.RobotLocator{}),
			)
			var capturer recording.VideoCapturer
			if cfg.Recording.CaptureVideo && !noVideo {
				capturer = recording.NewFFmpegCapturer(
					cfg.Recording.FFmpegBinary,
					cfg.Recording.TargetFPS,
					logging.NewComponentLogger(logger, "ffmpeg"),
				)
			}
			session := recording.NewSession(tracker, capturer,
				recording.WithLogger(logging.NewComponentLogger(logger, "recording")),
			)

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if limit > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, limit)
				defer cancel()
			}

			if err := session.Start(runCtx, output, display); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Recording to %s. Press Ctrl+C to stop.\n", output)

			select {
			case <-runCtx.Done():
			case <-session.Done():
			}

			result, err := session.Stop()
			if result != nil {
				fmt.Fprintf(out, "Stopped after %s: %d cursor events\n", result.Duration.Round(time.Millisecond), len(result.Events))
				if result.SidecarPath != "" {
					fmt.Fprintf(out, "Cursor sidecar: %s\n", result.SidecarPath)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&display, "display", "screen:0:0", "Display to normalize cursor coordinates against (screen:<index>:<n>)")
	cmd.Flags().BoolVar(&noVideo, "no-video", false, "Record the cursor sidecar only")
	cmd.Flags().DurationVar(&limit, "limit", 0, "Stop automatically after this long")
	return cmd
}
