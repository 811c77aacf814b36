package recording

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// VideoCapturer records the screen to a file.
type VideoCapturer interface {
	// Run records to outputPath until stop is closed or ctx is done, then
	// finalizes the file before returning.
	Run(ctx context.Context, outputPath string, stop <-chan struct{}) error
}

// FFmpegCapturer records the main screen with ffmpeg, encoding without the
// system cursor so the overlay can draw its own.
type FFmpegCapturer struct {
	Binary    string
	TargetFPS int
	Logger    *slog.Logger
	// Stderr receives ffmpeg's console output. Nil discards it.
	Stderr io.Writer
}

// NewFFmpegCapturer returns a capturer using binary at targetFPS.
func NewFFmpegCapturer(binary string, targetFPS int, logger *slog.Logger) *FFmpegCapturer {
	if logger == nil {
		logger = slog.Default()
	}
	return &FFmpegCapturer{Binary: binary, TargetFPS: targetFPS, Logger: logger}
}

func (f *FFmpegCapturer) Run(ctx context.Context, outputPath string, stop <-chan struct{}) error {
	input := ""
	if runtime.GOOS == "darwin" {
		index, err := f.findScreenDeviceIndex(ctx)
		if err != nil {
			return err
		}
		input = index + ":none"
	}
	args, err := captureArgs(runtime.GOOS, f.TargetFPS, input, outputPath)
	if err != nil {
		return err
	}

	cmd := exec.Command(f.Binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdin pipe: %w", err)
	}
	cmd.Stderr = f.Stderr

	f.Logger.Info("starting ffmpeg", "os", runtime.GOOS, "fps", f.TargetFPS, "output", outputPath)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	exited := make(chan struct{})
	go func() {
		select {
		case <-stop:
		case <-ctx.Done():
		case <-exited:
			return
		}
		f.Logger.Debug("signaling ffmpeg to stop")
		// "q" lets ffmpeg write the container trailer before exiting.
		if _, err := io.WriteString(stdin, "q\n"); err != nil {
			f.Logger.Warn("write ffmpeg quit command", "error", err)
		}
		stdin.Close()
	}()

	err = cmd.Wait()
	close(exited)
	if err != nil && !isGracefulExit(err) {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	f.Logger.Info("ffmpeg finished", "output", outputPath)
	return nil
}

// captureArgs builds the ffmpeg command line for goos. input overrides the
// platform's default capture device.
func captureArgs(goos string, fps int, input, outputPath string) ([]string, error) {
	rate := strconv.Itoa(fps)
	switch goos {
	case "windows":
		if input == "" {
			input = "desktop"
		}
		return []string{"-f", "gdigrab", "-framerate", rate, "-i", input,
			"-c:v", "libx264", "-pix_fmt", "yuv420p", "-y", outputPath}, nil
	case "darwin":
		if input == "" {
			input = "0:none"
		}
		return []string{"-f", "avfoundation", "-framerate", rate, "-i", input,
			"-c:v", "libx264", "-pix_fmt", "yuv420p", "-preset", "ultrafast", "-y", outputPath}, nil
	case "linux":
		if input == "" {
			input = os.Getenv("DISPLAY")
		}
		if input == "" {
			input = ":0.0"
		}
		return []string{"-f", "x11grab", "-framerate", rate, "-i", input,
			"-c:v", "libx264", "-pix_fmt", "yuv420p", "-y", outputPath}, nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// isGracefulExit reports whether err is one of the statuses ffmpeg uses
// when asked to quit.
func isGracefulExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	return exitErr.ExitCode() == 255 || err.Error() == "signal: interrupt"
}

func (f *FFmpegCapturer) findScreenDeviceIndex(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, f.Binary, "-f", "avfoundation", "-list_devices", "true", "-i", "")
	output, err := cmd.CombinedOutput()
	if err != nil && len(output) == 0 {
		return "", fmt.Errorf("list avfoundation devices: %w", err)
	}
	return parseScreenDeviceIndex(string(output))
}

// parseScreenDeviceIndex finds "Capture screen 0" among the avfoundation
// video devices ffmpeg lists.
func parseScreenDeviceIndex(output string) (string, error) {
	inVideoDevices := false
	index := 0
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "AVFoundation video devices:") {
			inVideoDevices = true
			continue
		}
		if strings.Contains(line, "AVFoundation audio devices:") {
			break
		}
		if !inVideoDevices {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.Contains(trimmed, "Capture screen 0") {
			return strconv.Itoa(index), nil
		}
		if strings.Contains(trimmed, "]") {
			index++
		}
	}
	return "", errors.New("could not find 'Capture screen 0' in ffmpeg device list")
}
