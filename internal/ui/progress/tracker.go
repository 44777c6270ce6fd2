// Package progress tracks named steps through a multi-stage operation
// and renders them, either as a live Bubble Tea view or as plain lines
// for non-interactive output.
package progress

import "sync"

// Status is the lifecycle state of a step.
type Status string

// Step statuses. Transitions are monotone: a step never moves back to an
// earlier status, and complete/error/skipped are terminal.
const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
	StatusSkipped  Status = "skipped"
)

// statusRank orders statuses for the monotonicity guard.
var statusRank = map[Status]int{
	StatusPending:  0,
	StatusRunning:  1,
	StatusComplete: 2,
	StatusError:    2,
	StatusSkipped:  2,
}

// Step is one tracked step.
type Step struct {
	Name    string
	Status  Status
	Message string
}

// Listener is notified synchronously after every step transition so an
// attached renderer can redraw. A tracker without a listener is valid
// (headless use).
type Listener interface {
	StepChanged()
}

// Tracker is an append-only list of steps with monotone status
// transitions. It carries no decision-making logic.
type Tracker struct {
	mu       sync.Mutex
	title    string
	steps    []Step
	listener Listener
}

// NewTracker creates a tracker with the given display title.
func NewTracker(title string) *Tracker {
	return &Tracker{title: title}
}

// Title returns the display title.
func (t *Tracker) Title() string {
	return t.title
}

// SetListener registers the single refresh listener (or nil to detach).
func (t *Tracker) SetListener(l Listener) {
	t.mu.Lock()
	t.listener = l
	t.mu.Unlock()
}

// Add appends a pending step and returns its index.
func (t *Tracker) Add(name string) int {
	t.mu.Lock()
	t.steps = append(t.steps, Step{Name: name, Status: StatusPending})
	idx := len(t.steps) - 1
	t.mu.Unlock()
	return idx
}

// Start marks a step as running.
func (t *Tracker) Start(index int) {
	t.transition(index, StatusRunning, "")
}

// Complete marks a step as completed.
func (t *Tracker) Complete(index int) {
	t.transition(index, StatusComplete, "")
}

// Error marks a step as failed with an optional message.
func (t *Tracker) Error(index int, message string) {
	t.transition(index, StatusError, message)
}

// Skip marks a step as skipped.
func (t *Tracker) Skip(index int) {
	t.transition(index, StatusSkipped, "")
}

// Steps returns a snapshot of the current steps.
func (t *Tracker) Steps() []Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// transition applies a status change, enforcing monotonicity, and
// notifies the listener.
func (t *Tracker) transition(index int, status Status, message string) {
	t.mu.Lock()
	if index < 0 || index >= len(t.steps) {
		t.mu.Unlock()
		return
	}

	current := t.steps[index].Status
	if statusRank[status] < statusRank[current] {
		t.mu.Unlock()
		return
	}
	// Terminal states never change again.
	if statusRank[current] == statusRank[status] && current != status && statusRank[current] == 2 {
		t.mu.Unlock()
		return
	}

	t.steps[index].Status = status
	if message != "" {
		t.steps[index].Message = message
	}
	listener := t.listener
	t.mu.Unlock()

	if listener != nil {
		listener.StepChanged()
	}
}
