// Package runner executes the JavaScript tooling that ships with the
// installed templates through a Node.js interpreter.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/danglephuc/apidog-test/internal/logger"
)

// ErrInterpreterNotFound indicates the Node.js binary is not on PATH.
var ErrInterpreterNotFound = errors.New(
	"node interpreter not found; install Node.js from https://nodejs.org and retry")

// ExitError reports a script that ran but exited non-zero.
type ExitError struct {
	Script string
	Code   int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("script %s exited with code %d", e.Script, e.Code)
}

// Runner invokes scripts with an interpreter binary.
type Runner struct {
	// NodeBin is the interpreter executable. Empty means "node" from
	// PATH.
	NodeBin string
}

// New returns a runner using the default interpreter.
func New() *Runner {
	return &Runner{}
}

// Run executes scriptPath with the given arguments, inheriting the
// caller's stdio so the script owns the terminal for its lifetime.
func (r *Runner) Run(ctx context.Context, scriptPath string, args ...string) error {
	bin := r.NodeBin
	if bin == "" {
		bin = "node"
	}

	cmdArgs := append([]string{scriptPath}, args...)
	cmd := exec.CommandContext(ctx, bin, cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logger.L().Debugw("running script", "interpreter", bin, "script", scriptPath, "args", args)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w (looked for %q)", ErrInterpreterNotFound, bin)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Script: scriptPath, Code: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %s: %w", scriptPath, err)
}
