// Package agent wires AI agent command folders from an installed
// template package. Each supported agent maps to a fixed destination
// folder in the project; "none" skips the integration entirely.
package agent

// Target describes one AI agent integration.
type Target struct {
	// Key is the stable identifier used on the command line.
	Key string

	// Name is the human-readable label shown in the chooser.
	Name string

	// Folder is the destination path relative to the project root.
	// Empty means the integration is a no-op.
	Folder string
}

// Agent keys.
const (
	KeyCursor  = "cursor"
	KeyCopilot = "copilot"
	KeyNone    = "none"
)

// targets is the closed set of supported integrations, in chooser order.
var targets = []Target{
	{Key: KeyCursor, Name: "Cursor", Folder: ".cursor/commands"},
	{Key: KeyCopilot, Name: "GitHub Copilot", Folder: ".github/agents"},
	{Key: KeyNone, Name: "None (skip AI setup)", Folder: ""},
}

// Targets returns the supported integrations in display order.
func Targets() []Target {
	out := make([]Target, len(targets))
	copy(out, targets)
	return out
}

// Lookup returns the target for key and whether the key is known.
func Lookup(key string) (Target, bool) {
	for _, tgt := range targets {
		if tgt.Key == key {
			return tgt, true
		}
	}
	return Target{}, false
}
