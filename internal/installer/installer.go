// Package installer extracts template archives and merges their contents
// into the canonical .apidog directory of a project.
package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/danglephuc/apidog-test/internal/logger"
)

// Directory names under the target project.
const (
	// RootDirName is the canonical installed directory.
	RootDirName = ".apidog"

	// StagingDirName is the ephemeral extraction workspace. It never
	// survives an install, successful or not.
	StagingDirName = ".apidog-temp"
)

// ContentSubdirs are the template-provided subtrees replaced on install.
var ContentSubdirs = []string{"scripts", "templates"}

// WorkspaceSubdirs are the read/write folders created fresh (additively)
// after every install.
var WorkspaceSubdirs = []string{"collections", "openapi", "temp", "test-case"}

// ErrStructureMismatch indicates an archive without a recognized layout.
var ErrStructureMismatch = errors.New(
	"archive does not contain expected structure (scripts/, templates/, commands/ or .apidog/)")

// Layout identifies the recognized archive content shapes.
type Layout int

// Recognized layouts, checked in this order.
const (
	// LayoutRoot has scripts/, templates/ or commands/ directly at the
	// archive root.
	LayoutRoot Layout = iota

	// LayoutNested ships a complete .apidog/ directory at the root.
	LayoutNested
)

// Install extracts archivePath into a staging directory under targetDir,
// detects the template layout, and merges the content into
// <targetDir>/.apidog.
//
// For the root layout the staging directory is returned so the caller
// can read a commands/ folder from it; the caller owns its removal. For
// the nested layout staging is consumed and "" is returned. The archive
// file is deleted unless keepArchive is set. On any error both staging
// and the archive (subject to keepArchive) are removed before the error
// propagates.
func Install(archivePath, targetDir string, keepArchive bool) (stagingDir string, err error) {
	staging := filepath.Join(targetDir, StagingDirName)
	root := filepath.Join(targetDir, RootDirName)

	defer func() {
		if err == nil {
			return
		}
		_ = os.RemoveAll(staging)
		if !keepArchive {
			_ = os.Remove(archivePath)
		}
	}()

	// Always start from a fresh staging directory.
	if err := os.RemoveAll(staging); err != nil {
		return "", fmt.Errorf("failed to clear staging directory %s: %w", staging, err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory %s: %w", staging, err)
	}

	if err := extractArchive(archivePath, staging); err != nil {
		return "", err
	}

	if err := flattenWrapper(staging); err != nil {
		return "", err
	}

	layout, err := detectLayout(staging)
	if err != nil {
		return "", err
	}

	switch layout {
	case LayoutRoot:
		if err := mergeRootLayout(staging, root); err != nil {
			return "", err
		}
		if !keepArchive {
			_ = os.Remove(archivePath)
		}
		// Staging survives for command-folder consumers; the caller
		// removes it once downstream steps are done.
		return staging, nil

	default: // LayoutNested
		if err := replaceTree(filepath.Join(staging, RootDirName), root); err != nil {
			return "", err
		}
		if err := os.RemoveAll(staging); err != nil {
			return "", fmt.Errorf("failed to remove staging directory %s: %w", staging, err)
		}
		if !keepArchive {
			_ = os.Remove(archivePath)
		}
		return "", nil
	}
}

// flattenWrapper hoists the contents of a single wrapping directory up
// to the staging root. Release hosts wrap source archives in one
// generated top-level folder.
func flattenWrapper(staging string) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return fmt.Errorf("failed to read staging directory %s: %w", staging, err)
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}
	// A lone scripts/, templates/, commands/ or .apidog/ directory is
	// already the content, not a wrapper around it.
	switch entries[0].Name() {
	case "scripts", "templates", "commands", RootDirName:
		return nil
	}

	wrapper := filepath.Join(staging, entries[0].Name())
	children, err := os.ReadDir(wrapper)
	if err != nil {
		return fmt.Errorf("failed to read wrapper directory %s: %w", wrapper, err)
	}

	for _, child := range children {
		oldPath := filepath.Join(wrapper, child.Name())
		newPath := filepath.Join(staging, child.Name())
		if err := os.Rename(oldPath, newPath); err != nil {
			return fmt.Errorf("failed to flatten %s: %w", oldPath, err)
		}
	}

	if err := os.Remove(wrapper); err != nil {
		return fmt.Errorf("failed to remove wrapper directory %s: %w", wrapper, err)
	}

	logger.L().Debugw("flattened archive wrapper", "wrapper", filepath.Base(wrapper))
	return nil
}

// detectLayout classifies the staged content. The root layout is checked
// first, so an archive carrying both shapes resolves to root.
func detectLayout(staging string) (Layout, error) {
	for _, name := range []string{"scripts", "templates", "commands"} {
		if dirExists(filepath.Join(staging, name)) {
			return LayoutRoot, nil
		}
	}
	if dirExists(filepath.Join(staging, RootDirName)) {
		return LayoutNested, nil
	}
	return 0, ErrStructureMismatch
}

// mergeRootLayout replaces exactly the scripts/ and templates/ subtrees
// of the canonical root with their staged counterparts. Sibling content
// under the root is never touched.
func mergeRootLayout(staging, root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", root, err)
	}

	for _, name := range ContentSubdirs {
		src := filepath.Join(staging, name)
		if !dirExists(src) {
			continue
		}
		if err := replaceTree(src, filepath.Join(root, name)); err != nil {
			return err
		}
	}
	return nil
}

// replaceTree removes dst if present, then copies the src tree in
// wholesale.
func replaceTree(src, dst string) error {
	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dst, err)
	}
	return copyTree(src, dst)
}

// copyTree recursively copies a directory tree, preserving file modes.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode().Perm())
	})
}

// copyFile copies a single regular file with the given permissions.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
