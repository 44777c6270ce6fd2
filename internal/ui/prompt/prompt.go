// Package prompt holds the interactive questions asked before an
// installation run.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/danglephuc/apidog-test/internal/agent"
)

// agentOptions converts the agent target table into select options.
func agentOptions() []huh.Option[string] {
	targets := agent.Targets()
	opts := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		label := t.Name
		if t.Folder != "" {
			label = fmt.Sprintf("%s (%s)", t.Name, t.Folder)
		}
		opts[i] = huh.NewOption(label, t.Key)
	}
	return opts
}

// SelectAgent asks which AI agent integration to set up. ok is false
// when the user aborted the prompt.
func SelectAgent(ctx context.Context) (key string, ok bool, err error) {
	key = agent.KeyNone

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("AI Agent Integration").
				Description("Installs slash commands for the selected coding agent").
				Options(agentOptions()...).
				Value(&key),
		),
	).RunWithContext(ctx)

	if errors.Is(err, huh.ErrUserAborted) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return key, true, nil
}

// ConfirmOverwrite asks whether to replace an existing installation.
// Defaults to No.
func ConfirmOverwrite(ctx context.Context, fileCount int) (bool, error) {
	confirmed := false

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Existing installation found").
				Description(fmt.Sprintf(
					"The .apidog directory already holds %d entries. Replace the managed scripts and templates?",
					fileCount)).
				Affirmative("Replace").
				Negative("Keep").
				Value(&confirmed),
		),
	).RunWithContext(ctx)

	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
