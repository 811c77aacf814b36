package video

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressReporter receives plan progress in [0,1].
type ProgressReporter interface {
	Report(progress float64)
	ReportComplete()
}

// ProgressBar draws a single-line text bar.
type ProgressBar struct {
	out         io.Writer
	description string
	width       int
	startTime   time.Time
	lastUpdate  time.Time
	interval    time.Duration
	now         func() time.Time
}

// NewProgressBar writes to out, redrawing at most every 100ms.
func NewProgressBar(out io.Writer, description string) *ProgressBar {
	return &ProgressBar{
		out:         out,
		description: description,
		width:       30,
		startTime:   time.Now(),
		interval:    100 * time.Millisecond,
		now:         time.Now,
	}
}

func (p *ProgressBar) Report(progress float64) {
	now := p.now()
	if progress < 1 && now.Sub(p.lastUpdate) < p.interval {
		return
	}
	p.lastUpdate = now
	p.draw(progress, now)
}

func (p *ProgressBar) ReportComplete() {
	p.draw(1, p.now())
	fmt.Fprintln(p.out)
}

func (p *ProgressBar) draw(progress float64, now time.Time) {
	progress = min(max(progress, 0), 1)
	completed := int(float64(p.width) * progress)
	bar := strings.Repeat("=", completed) + strings.Repeat("-", p.width-completed)
	fmt.Fprintf(p.out, "\r%s [%s] %5.1f%% Elapsed: %v",
		p.description,
		bar,
		progress*100,
		now.Sub(p.startTime).Round(time.Second),
	)
}
