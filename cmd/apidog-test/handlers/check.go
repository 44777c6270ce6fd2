package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danglephuc/apidog-test/internal/agent"
	"github.com/danglephuc/apidog-test/internal/installer"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/marker"
	"github.com/danglephuc/apidog-test/internal/ui/progress"
	"github.com/danglephuc/apidog-test/internal/util/prerequisites"
)

// Factory function variables for check - can be replaced in tests.
var (
	// checkTools probes for required client tools.
	checkTools = prerequisites.Check
)

// Check probes the installation in the current directory and prints one
// status line per probe. It never modifies anything.
func Check(ctx context.Context, verbose bool) error {
	if verbose {
		logger.SetVerbose(true)
	}
	return checkDir(".")
}

// checkDir runs the probes against one project directory.
func checkDir(targetDir string) error {
	root := filepath.Join(targetDir, installer.RootDirName)

	if !dirExists(root) {
		fmt.Printf("No %s directory found. Run 'apidog-test init --here' to install the templates.\n",
			installer.RootDirName)
		return fmt.Errorf("%s is not initialized", targetDir)
	}

	tracker := progress.NewTracker("Installation check")
	failures := 0

	probe := func(name string, ok bool, detail string) {
		idx := tracker.Add(name)
		tracker.Start(idx)
		if ok {
			tracker.Complete(idx)
		} else {
			failures++
			tracker.Error(idx, detail)
		}
	}

	if rec, err := marker.Read(root); err == nil {
		probe(fmt.Sprintf("Version marker (%s)", rec.TemplateVersion), true, "")
	} else {
		probe("Version marker", false, "missing or unreadable .version file")
	}

	for _, name := range installer.ContentSubdirs {
		probe(name+" folder", dirExists(filepath.Join(root, name)), "missing; re-run init")
	}
	for _, name := range installer.WorkspaceSubdirs {
		probe(name+" folder", dirExists(filepath.Join(root, name)), "missing; re-run init")
	}

	for _, script := range templateScripts {
		path := filepath.Join(root, "scripts", script)
		probe("script "+script, fileExists(path), "missing; re-run init")
	}

	// Agent folders are informational: absent ones are skipped, not
	// failures.
	for _, tgt := range agent.Targets() {
		if tgt.Folder == "" {
			continue
		}
		idx := tracker.Add(fmt.Sprintf("%s commands (%s)", tgt.Name, tgt.Folder))
		tracker.Start(idx)
		if dirExists(filepath.Join(targetDir, tgt.Folder)) {
			tracker.Complete(idx)
		} else {
			tracker.Skip(idx)
		}
	}

	for _, result := range checkTools(prerequisites.DefaultTools()).Results {
		probe(result.Tool.Name+" interpreter", result.Found,
			fmt.Sprintf("not found on PATH; install from %s", result.Tool.InstallURL))
	}

	// Optional tooling is informational, like the agent folders.
	for _, result := range checkTools(prerequisites.OptionalTools()).Results {
		idx := tracker.Add(result.Tool.Name + " (optional)")
		tracker.Start(idx)
		if result.Found {
			tracker.Complete(idx)
		} else {
			tracker.Skip(idx)
		}
	}

	fmt.Print(progress.Render(tracker))

	if failures > 0 {
		return fmt.Errorf("%d check(s) failed", failures)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
