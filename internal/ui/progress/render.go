package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#22c55e")
	colorRed    = lipgloss.Color("#ef4444")
	colorYellow = lipgloss.Color("#eab308")
	colorDim    = lipgloss.Color("#6b7280")
	colorWhite  = lipgloss.Color("#f9fafb")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	completeStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	skippedStyle  = lipgloss.NewStyle().Foreground(colorYellow)
	pendingStyle  = lipgloss.NewStyle().Foreground(colorDim)
	runningStyle  = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
)

// Status marks, ASCII on purpose so non-UTF-8 terminals stay readable.
const (
	markComplete = "[OK]"
	markError    = "[!!]"
	markRunning  = "[..]"
	markPending  = "[  ]"
	markSkipped  = "[--]"
)

// mark returns the render mark and style for a status.
func mark(status Status) (string, lipgloss.Style) {
	switch status {
	case StatusComplete:
		return markComplete, completeStyle
	case StatusError:
		return markError, errorStyle
	case StatusRunning:
		return markRunning, runningStyle
	case StatusSkipped:
		return markSkipped, skippedStyle
	default:
		return markPending, pendingStyle
	}
}

// Render renders the tracker as a styled multi-line block.
func Render(t *Tracker) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(t.Title()))
	b.WriteString("\n")

	for _, step := range t.Steps() {
		m, style := mark(step.Status)
		line := fmt.Sprintf("  %s %s", m, step.Name)
		if step.Status == StatusError && step.Message != "" {
			line += ": " + firstLine(step.Message)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// firstLine keeps multi-line error diagnostics out of the step list; the
// full message is printed separately by the caller.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
