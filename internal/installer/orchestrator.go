package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/danglephuc/apidog-test/internal/agent"
	"github.com/danglephuc/apidog-test/internal/config"
	"github.com/danglephuc/apidog-test/internal/github"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/marker"
	"github.com/danglephuc/apidog-test/internal/ui/progress"
)

// ReleaseClient resolves and downloads template releases. Satisfied by
// *github.Client; tests substitute a fake.
type ReleaseClient interface {
	LatestRelease(ctx context.Context) (*github.Release, error)
	DownloadArchive(ctx context.Context, sel github.AssetSelection, releaseTag string) (*github.DownloadResult, error)
}

// Options parameterizes a template installation run.
type Options struct {
	// TargetDir is the project directory receiving the .apidog tree.
	TargetDir string

	// AgentKey selects the AI integration to set up ("" or "none"
	// disables it).
	AgentKey string

	// LocalTemplate, when set, is a local archive installed instead of a
	// GitHub release. Resolve and download are skipped and the archive is
	// kept in place.
	LocalTemplate string

	Config config.Config
}

// Result reports what an installation run produced.
type Result struct {
	TargetDir  string
	AgentKey   string
	ReleaseTag string
	Warnings   []string
}

// Pipeline step names, in execution order.
const (
	StepFetch    = "Fetch latest release"
	StepDownload = "Download template archive"
	StepExtract  = "Extract and install templates"
	StepAgent    = "Set up AI integration"
	StepFinalize = "Finalize workspace"
)

// NewTrackerSteps registers the pipeline steps on a fresh tracker and
// returns the tracker. Callers attach their renderer before Run.
func NewTrackerSteps(title string) *progress.Tracker {
	t := progress.NewTracker(title)
	for _, name := range []string{StepFetch, StepDownload, StepExtract, StepAgent, StepFinalize} {
		t.Add(name)
	}
	return t
}

// Run executes the installation pipeline against the tracker created by
// NewTrackerSteps. On failure the current step is marked failed, the
// staging directory is removed, and a .apidog directory created by this
// run is rolled back; a pre-existing .apidog is left as found.
func Run(ctx context.Context, client ReleaseClient, tracker *progress.Tracker, opts Options) (*Result, error) {
	rootDir := filepath.Join(opts.TargetDir, RootDirName)
	rootExisted := dirExists(rootDir)

	res := &Result{TargetDir: opts.TargetDir, AgentKey: opts.AgentKey}

	fail := func(step int, err error) (*Result, error) {
		tracker.Error(step, err.Error())
		_ = os.RemoveAll(filepath.Join(opts.TargetDir, StagingDirName))
		if !rootExisted {
			_ = os.RemoveAll(rootDir)
		}
		return nil, err
	}

	archivePath, keepArchive := opts.LocalTemplate, opts.LocalTemplate != ""
	if keepArchive {
		// Local installs bypass the release lookup entirely.
		tracker.Start(0)
		tracker.Skip(0)
		tracker.Start(1)
		tracker.Skip(1)
		res.ReleaseTag = "local"
		logger.L().Debugw("installing local template", "archive", archivePath)
	} else {
		tracker.Start(0)
		release, err := client.LatestRelease(ctx)
		if err != nil {
			return fail(0, err)
		}
		sel, err := github.SelectAsset(release, opts.Config.RepoName)
		if err != nil {
			return fail(0, err)
		}
		res.ReleaseTag = release.TagName
		tracker.Complete(0)

		tracker.Start(1)
		dl, err := client.DownloadArchive(ctx, sel, release.TagName)
		if err != nil {
			return fail(1, err)
		}
		archivePath = dl.Path
		logger.L().Debugw("downloaded template archive",
			"file", dl.Filename, "size", dl.Size, "sha256", dl.Digest)
		tracker.Complete(1)
	}

	tracker.Start(2)
	stagingDir, err := Install(archivePath, opts.TargetDir, keepArchive)
	if err != nil {
		return fail(2, err)
	}
	tracker.Complete(2)

	tracker.Start(3)
	warnings, err := agent.Setup(opts.TargetDir, opts.AgentKey, stagingDir)
	if stagingDir != "" {
		_ = os.RemoveAll(stagingDir)
	}
	if err != nil {
		return fail(3, err)
	}
	res.Warnings = append(res.Warnings, warnings...)
	if opts.AgentKey == "" || opts.AgentKey == agent.KeyNone {
		tracker.Skip(3)
	} else {
		tracker.Complete(3)
	}

	tracker.Start(4)
	if err := finalize(rootDir, res.ReleaseTag); err != nil {
		return fail(4, err)
	}
	tracker.Complete(4)

	return res, nil
}

// finalize creates the workspace subfolders and writes the version
// marker. Workspace folders are additive, existing contents survive.
func finalize(rootDir, releaseTag string) error {
	for _, name := range WorkspaceSubdirs {
		if err := os.MkdirAll(filepath.Join(rootDir, name), 0o755); err != nil {
			return fmt.Errorf("failed to create workspace folder %s: %w", name, err)
		}
	}
	if err := marker.Write(rootDir, releaseTag, time.Now()); err != nil {
		return fmt.Errorf("failed to write version marker: %w", err)
	}
	return nil
}
