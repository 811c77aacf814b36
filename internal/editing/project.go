package editing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vedantwpatil/FocusFrame/internal/zoom"
)

// ProjectSuffix replaces the video extension to name the project file.
const ProjectSuffix = ".zoom.yaml"

// ProjectVersion is the current project file layout.
const ProjectVersion = 1

// Project is the persisted editing state.
type Project struct {
	Version    int           `yaml:"version"`
	Video      string        `yaml:"video"`
	DurationMs int64         `yaml:"duration_ms"`
	NextAutoID int           `yaml:"next_auto_id"`
	Regions    []zoom.Region `yaml:"regions"`
}

// ProjectPath maps a video path to its project file.
func ProjectPath(videoPath string) string {
	ext := filepath.Ext(videoPath)
	return strings.TrimSuffix(videoPath, ext) + ProjectSuffix
}

// Validate checks the version, every region, and id uniqueness.
func (p *Project) Validate() error {
	if p.Version != ProjectVersion {
		return fmt.Errorf("unsupported project version %d", p.Version)
	}
	if p.NextAutoID < 1 {
		return fmt.Errorf("next_auto_id must be positive, got %d", p.NextAutoID)
	}
	seen := make(map[string]struct{}, len(p.Regions))
	for _, r := range p.Regions {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate region id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// WriteProject writes a project to a YAML file.
func WriteProject(project *Project, path string) error {
	data, err := yaml.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project %s: %w", path, err)
	}
	return nil
}

// ReadProject reads and validates a project file. A missing file reports
// found=false with a nil error.
func ReadProject(path string) (project *Project, found bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read project %s: %w", path, err)
	}

	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, true, fmt.Errorf("decode project %s: %w", path, err)
	}
	if err := p.Validate(); err != nil {
		return nil, true, fmt.Errorf("project %s: %w", path, err)
	}
	return &p, true, nil
}
