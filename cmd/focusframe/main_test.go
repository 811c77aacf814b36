package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vedantwpatil/FocusFrame/internal/editing"
	"github.com/vedantwpatil/FocusFrame/internal/tracking"
)

func setupCLITestEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	testChdir(t, dir)

	// Keep log output machine-readable and quiet.
	cfg := "[logging]\nlevel = \"error\"\nformat = \"json\"\n"
	if err := os.WriteFile(filepath.Join(dir, "focusframe.toml"), []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func writeDemoRecording(t *testing.T, dir string) string {
	t.Helper()
	videoPath := filepath.Join(dir, "demo.mp4")
	events := []tracking.CursorEvent{
		{Kind: tracking.KindMove, TimestampMs: 0, NormX: 0.1, NormY: 0.1},
		{Kind: tracking.KindClick, TimestampMs: 1000, NormX: 0.3, NormY: 0.4, Button: 1},
		{Kind: tracking.KindMove, TimestampMs: 1500, NormX: 0.5, NormY: 0.4},
		{Kind: tracking.KindClick, TimestampMs: 5000, NormX: 0.8, NormY: 0.2, Button: 1},
	}
	if _, err := tracking.WriteSidecar(videoPath, events); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
	return videoPath
}

func TestConfigInitAndShow(t *testing.T) {
	dir := setupCLITestEnv(t)

	target := filepath.Join(dir, "conf", "config.toml")
	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, err = runCLI(t, "--config", target, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "# Config path: "+target)
	requireContains(t, out, "[zoom]")
}

func TestConfigShowReportsDefaults(t *testing.T) {
	setupCLITestEnv(t)
	missing := filepath.Join(t.TempDir(), "none.toml")
	out, err := runCLI(t, "--config", missing, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "defaults were used")
}

func TestRegionsWorkflow(t *testing.T) {
	dir := setupCLITestEnv(t)
	videoPath := writeDemoRecording(t, dir)

	out, err := runCLI(t, "regions", "list", videoPath, "--duration-ms", "10000")
	if err != nil {
		t.Fatalf("regions list: %v", err)
	}
	requireContains(t, out, "auto-zoom-1")
	requireContains(t, out, "auto-zoom-2")

	out, err = runCLI(t, "regions", "add", videoPath, "--duration-ms", "10000",
		"--start", "4800", "--end", "6500", "--depth", "5", "--x", "0.6", "--y", "0.6")
	if err != nil {
		t.Fatalf("regions add: %v", err)
	}
	requireContains(t, out, "Added manual-")

	project, found, err := editing.ReadProject(editing.ProjectPath(videoPath))
	if err != nil || !found {
		t.Fatalf("expected project file, found=%v err=%v", found, err)
	}
	if len(project.Regions) != 2 || project.Regions[0].ID != "auto-zoom-1" {
		t.Fatalf("expected manual region to replace auto-zoom-2, got %+v", project.Regions)
	}
	manualID := project.Regions[1].ID

	if _, err := runCLI(t, "regions", "set", videoPath, "auto-zoom-1", "--duration-ms", "10000", "--depth", "6", "--x", "0.5"); err != nil {
		t.Fatalf("regions set: %v", err)
	}
	project, _, _ = editing.ReadProject(editing.ProjectPath(videoPath))
	r := project.Regions[0]
	if r.Depth != 6 || r.Focus.X != 0.5 || r.Focus.Y != 0.4 || r.FocusKeyframes != nil {
		t.Fatalf("unexpected region after set: %+v", r)
	}

	if _, err := runCLI(t, "regions", "set", videoPath, "auto-zoom-1", "--duration-ms", "10000"); err == nil {
		t.Fatal("expected error when nothing changes")
	}

	if _, err := runCLI(t, "regions", "delete", videoPath, manualID, "--duration-ms", "10000"); err != nil {
		t.Fatalf("regions delete: %v", err)
	}
	if _, err := runCLI(t, "regions", "delete", videoPath, manualID, "--duration-ms", "10000"); err == nil {
		t.Fatal("expected error deleting a missing region")
	}
}

func TestPlanJSON(t *testing.T) {
	dir := setupCLITestEnv(t)
	videoPath := writeDemoRecording(t, dir)

	out, err := runCLI(t, "plan", videoPath, "--json",
		"--duration-ms", "2000", "--width", "1920", "--height", "1080", "--fps", "10")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}

	var frames []struct {
		Index    int     `json:"index"`
		TimeMs   int64   `json:"timeMs"`
		RegionID string  `json:"regionId"`
		Strength float64 `json:"strength"`
		Cursor   *struct {
			X float64 `json:"x"`
		} `json:"cursor"`
	}
	if err := json.Unmarshal([]byte(out), &frames); err != nil {
		t.Fatalf("decode plan: %v\n%s", err, out)
	}
	if len(frames) != 20 {
		t.Fatalf("expected 20 frames, got %d", len(frames))
	}
	if frames[15].TimeMs != 1500 || frames[15].RegionID != "auto-zoom-1" || frames[15].Strength != 1 {
		t.Fatalf("unexpected frame 15 %+v", frames[15])
	}
	if frames[0].Cursor == nil || frames[0].Cursor.X != 0.1 {
		t.Fatalf("expected cursor sample on first frame, got %+v", frames[0].Cursor)
	}
}

func TestPlanTable(t *testing.T) {
	dir := setupCLITestEnv(t)
	videoPath := writeDemoRecording(t, dir)

	out, err := runCLI(t, "plan", videoPath, "--every", "5",
		"--duration-ms", "2000", "--width", "1280", "--height", "720", "--fps", "10")
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	// go-pretty upper-cases headers.
	requireContains(t, out, "STRENGTH")
	requireContains(t, out, "auto-zoom-1")
}

func TestCursorCommand(t *testing.T) {
	dir := setupCLITestEnv(t)
	videoPath := writeDemoRecording(t, dir)

	out, err := runCLI(t, "cursor", videoPath)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	requireContains(t, out, "click")
	requireContains(t, out, "5.000s")

	out, err = runCLI(t, "cursor", videoPath, "--at", "1250,3000")
	if err != nil {
		t.Fatalf("cursor --at: %v", err)
	}
	requireContains(t, out, "0.4000")
	requireContains(t, out, "true")

	if _, err := runCLI(t, "cursor", filepath.Join(dir, "missing.mp4")); err == nil {
		t.Fatal("expected error without sidecar")
	}
}

func TestFormatMs(t *testing.T) {
	if got := formatMs(1234); got != "1.234s" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := formatMs(5); got != "0.005s" {
		t.Fatalf("unexpected format %q", got)
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, which needs Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
