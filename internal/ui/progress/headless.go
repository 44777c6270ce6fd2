package progress

import (
	"fmt"
	"io"
	"sync"
)

// LinePrinter is a tracker listener for non-interactive output. It
// prints one plain line per status transition instead of redrawing.
type LinePrinter struct {
	w io.Writer
	t *Tracker

	mu   sync.Mutex
	seen []Status
}

// NewLinePrinter attaches a line printer to the tracker and returns it.
func NewLinePrinter(w io.Writer, t *Tracker) *LinePrinter {
	p := &LinePrinter{w: w, t: t}
	t.SetListener(p)
	return p
}

// StepChanged implements Listener.
func (p *LinePrinter) StepChanged() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, step := range p.t.Steps() {
		if i < len(p.seen) && p.seen[i] == step.Status {
			continue
		}
		for len(p.seen) <= i {
			p.seen = append(p.seen, StatusPending)
		}
		p.seen[i] = step.Status

		if step.Status == StatusPending {
			continue
		}
		m, _ := mark(step.Status)
		line := fmt.Sprintf("%s %s", m, step.Name)
		if step.Status == StatusError && step.Message != "" {
			line += ": " + firstLine(step.Message)
		}
		fmt.Fprintln(p.w, line)
	}
}
