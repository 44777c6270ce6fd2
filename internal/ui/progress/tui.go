package progress

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// stepChangedMsg signals that the tracker mutated and the view is stale.
type stepChangedMsg struct{}

// doneMsg carries the pipeline result into the program.
type doneMsg struct {
	err error
}

// programListener forwards tracker transitions into the program.
type programListener struct {
	p *tea.Program
}

func (l programListener) StepChanged() {
	l.p.Send(stepChangedMsg{})
}

// model is the Bubble Tea model for a live install view.
type model struct {
	tracker *Tracker
	cancel  context.CancelFunc

	done bool
	err  error
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Cancel the pipeline; the resulting doneMsg quits.
			m.cancel()
		}

	case stepChangedMsg:
		return m, nil

	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	return Render(m.tracker)
}

// RunLive renders the tracker live while run executes in the background.
// The returned error is the pipeline's error; Ctrl+C cancels the context
// handed to run.
func RunLive(ctx context.Context, tracker *Tracker, run func(ctx context.Context) error) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(model{tracker: tracker, cancel: cancel})

	tracker.SetListener(programListener{p: p})
	defer tracker.SetListener(nil)

	go func() {
		p.Send(doneMsg{err: run(runCtx)})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress display error: %w", err)
	}

	if fm, ok := finalModel.(model); ok {
		return fm.err
	}
	return nil
}
