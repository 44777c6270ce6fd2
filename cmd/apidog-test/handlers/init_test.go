package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danglephuc/apidog-test/internal/agent"
	"github.com/danglephuc/apidog-test/internal/installer"
	"github.com/danglephuc/apidog-test/internal/ui/progress"
	"github.com/danglephuc/apidog-test/internal/util/prerequisites"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	origIsTerminal := isTerminal
	origSelectAgent := promptSelectAgent
	origConfirmOverwrite := promptConfirmOverwrite
	origNewClient := newReleaseClient
	origRunPipeline := runPipeline
	origRunLiveUI := runLiveUI
	origCheckPrereqs := checkPrereqs

	t.Cleanup(func() {
		isTerminal = origIsTerminal
		promptSelectAgent = origSelectAgent
		promptConfirmOverwrite = origConfirmOverwrite
		newReleaseClient = origNewClient
		runPipeline = origRunPipeline
		runLiveUI = origRunLiveUI
		checkPrereqs = origCheckPrereqs
	})

	checkPrereqs = func() *prerequisites.CheckResults { return &prerequisites.CheckResults{} }
}

func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func TestResolveTargetDir(t *testing.T) {
	t.Run("here flag", func(t *testing.T) {
		dir, err := resolveTargetDir(InitOptions{Here: true})
		require.NoError(t, err)
		assert.Equal(t, ".", dir)
	})

	t.Run("dot project means here", func(t *testing.T) {
		dir, err := resolveTargetDir(InitOptions{Project: "."})
		require.NoError(t, err)
		assert.Equal(t, ".", dir)
	})

	t.Run("project name creates directory", func(t *testing.T) {
		t.Chdir(t.TempDir())
		dir, err := resolveTargetDir(InitOptions{Project: "my-api"})
		require.NoError(t, err)
		assert.Equal(t, "my-api", dir)
		assert.DirExists(t, "my-api")
	})

	t.Run("project and here conflict", func(t *testing.T) {
		_, err := resolveTargetDir(InitOptions{Project: "my-api", Here: true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot combine")
	})

	t.Run("neither project nor here", func(t *testing.T) {
		_, err := resolveTargetDir(InitOptions{})
		require.Error(t, err)
	})

	t.Run("invalid project names", func(t *testing.T) {
		for _, name := range []string{"../escape", "a/b", "-leading", "has space"} {
			_, err := resolveTargetDir(InitOptions{Project: name})
			assert.Error(t, err, "name %q should be rejected", name)
		}
	})
}

func TestResolveAgent(t *testing.T) {
	saveAndRestoreInitFactories(t)

	t.Run("valid flag", func(t *testing.T) {
		key, err := resolveAgent(context.Background(), agent.KeyCursor)
		require.NoError(t, err)
		assert.Equal(t, agent.KeyCursor, key)
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := resolveAgent(context.Background(), "emacs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cursor, copilot, none")
	})

	t.Run("non-interactive defaults to none", func(t *testing.T) {
		isTerminal = func() bool { return false }
		key, err := resolveAgent(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, agent.KeyNone, key)
	})

	t.Run("interactive uses prompt", func(t *testing.T) {
		isTerminal = func() bool { return true }
		promptSelectAgent = func(ctx context.Context) (string, bool, error) {
			return agent.KeyCopilot, true, nil
		}
		key, err := resolveAgent(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, agent.KeyCopilot, key)
	})

	t.Run("aborted prompt falls back to none", func(t *testing.T) {
		isTerminal = func() bool { return true }
		promptSelectAgent = func(ctx context.Context) (string, bool, error) {
			return "", false, nil
		}
		key, err := resolveAgent(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, agent.KeyNone, key)
	})
}

func TestConfirmExisting(t *testing.T) {
	saveAndRestoreInitFactories(t)

	t.Run("fresh target proceeds", func(t *testing.T) {
		proceed, err := confirmExisting(context.Background(), filepath.Join(t.TempDir(), ".apidog"), false)
		require.NoError(t, err)
		assert.True(t, proceed)
	})

	t.Run("force proceeds without prompting", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), ".apidog")
		require.NoError(t, os.MkdirAll(root, 0o755))
		promptConfirmOverwrite = func(ctx context.Context, fileCount int) (bool, error) {
			t.Fatal("prompt must not run with --force")
			return false, nil
		}

		proceed, err := confirmExisting(context.Background(), root, true)
		require.NoError(t, err)
		assert.True(t, proceed)
	})

	t.Run("non-interactive declines with hint", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), ".apidog")
		require.NoError(t, os.MkdirAll(root, 0o755))
		isTerminal = func() bool { return false }

		var proceed bool
		var err error
		output := captureOutput(func() {
			proceed, err = confirmExisting(context.Background(), root, false)
		})
		require.NoError(t, err)
		assert.False(t, proceed)
		assert.Contains(t, output, "--force")
	})

	t.Run("interactive prompt decides", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), ".apidog")
		require.NoError(t, os.MkdirAll(root, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "a"), nil, 0o644))
		isTerminal = func() bool { return true }

		var gotCount int
		promptConfirmOverwrite = func(ctx context.Context, fileCount int) (bool, error) {
			gotCount = fileCount
			return true, nil
		}

		proceed, err := confirmExisting(context.Background(), root, false)
		require.NoError(t, err)
		assert.True(t, proceed)
		assert.Equal(t, 1, gotCount)
	})
}

func TestInit_HeadlessSuccess(t *testing.T) {
	saveAndRestoreInitFactories(t)
	t.Chdir(t.TempDir())

	isTerminal = func() bool { return false }
	runPipeline = func(ctx context.Context, client installer.ReleaseClient, tracker *progress.Tracker, opts installer.Options) (*installer.Result, error) {
		assert.Equal(t, ".", opts.TargetDir)
		assert.Equal(t, agent.KeyNone, opts.AgentKey)
		for i := range tracker.Steps() {
			tracker.Start(i)
			tracker.Complete(i)
		}
		return &installer.Result{
			TargetDir:  opts.TargetDir,
			AgentKey:   opts.AgentKey,
			ReleaseTag: "v3.0.0",
			Warnings:   []string{"sample warning"},
		}, nil
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), InitOptions{Here: true})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "[OK] "+installer.StepFetch)
	assert.Contains(t, output, "Warning: sample warning")
	assert.Contains(t, output, "Templates installed!")
	assert.Contains(t, output, "v3.0.0")
}

func TestInit_LiveViewOwnsStepOutput(t *testing.T) {
	saveAndRestoreInitFactories(t)
	t.Chdir(t.TempDir())

	isTerminal = func() bool { return true }
	promptSelectAgent = func(ctx context.Context) (string, bool, error) {
		return agent.KeyNone, true, nil
	}
	runPipeline = func(ctx context.Context, client installer.ReleaseClient, tracker *progress.Tracker, opts installer.Options) (*installer.Result, error) {
		for i := range tracker.Steps() {
			tracker.Start(i)
			tracker.Complete(i)
		}
		return &installer.Result{TargetDir: opts.TargetDir, AgentKey: opts.AgentKey, ReleaseTag: "v3.0.0"}, nil
	}
	runLiveUI = func(ctx context.Context, tracker *progress.Tracker, run func(ctx context.Context) error) error {
		return run(ctx)
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), InitOptions{Here: true})
	})
	require.NoError(t, err)

	// The live view already showed the steps; the handler must not
	// render them a second time.
	assert.NotContains(t, output, "[OK] "+installer.StepFetch)
	assert.Contains(t, output, "Templates installed!")
}

func TestInit_WarnsOnMissingNode(t *testing.T) {
	saveAndRestoreInitFactories(t)
	t.Chdir(t.TempDir())

	isTerminal = func() bool { return false }
	checkPrereqs = func() *prerequisites.CheckResults {
		node := prerequisites.Tool{Name: "node", Required: true, InstallURL: "https://nodejs.org/en/download"}
		return &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{{Tool: node}},
			Missing: []prerequisites.Tool{node},
		}
	}
	runPipeline = func(ctx context.Context, client installer.ReleaseClient, tracker *progress.Tracker, opts installer.Options) (*installer.Result, error) {
		return &installer.Result{TargetDir: opts.TargetDir, AgentKey: opts.AgentKey, ReleaseTag: "v1.0.0"}, nil
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), InitOptions{Here: true})
	})
	require.NoError(t, err, "a missing interpreter must not block the install")
	assert.Contains(t, output, "missing required tools: node (https://nodejs.org/en/download)")
	assert.Contains(t, output, "Templates installed!")
}

func TestInit_PipelineFailure(t *testing.T) {
	saveAndRestoreInitFactories(t)
	t.Chdir(t.TempDir())

	isTerminal = func() bool { return false }
	pipelineErr := errors.New("rate limited")
	runPipeline = func(ctx context.Context, client installer.ReleaseClient, tracker *progress.Tracker, opts installer.Options) (*installer.Result, error) {
		tracker.Start(0)
		tracker.Error(0, pipelineErr.Error())
		return nil, pipelineErr
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), InitOptions{Here: true})
	})
	require.ErrorIs(t, err, pipelineErr)
	assert.Contains(t, output, "Installation failed")
	assert.Contains(t, output, "rate limited")
}

func TestPrintInitSuccess(t *testing.T) {
	result := &installer.Result{
		TargetDir:  "my-api",
		AgentKey:   agent.KeyCursor,
		ReleaseTag: "v2.1.0",
	}

	output := captureOutput(func() {
		printInitSuccess("my-api", result)
	})

	assert.Contains(t, output, "v2.1.0")
	assert.Contains(t, output, filepath.Join("my-api", ".apidog"))
	assert.Contains(t, output, "Cursor (.cursor/commands)")
	assert.Contains(t, output, "cd my-api")
	assert.Contains(t, output, "apidog-test check")
}
