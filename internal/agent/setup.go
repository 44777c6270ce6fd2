package agent

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/danglephuc/apidog-test/internal/logger"
)

// aiCommandsDir is the agent-specific source folder inside an installed
// .apidog directory (nested template layout).
const aiCommandsDir = "ai-commands"

// Setup populates the destination folder for the selected agent with the
// command definition files shipped in the template package.
//
// Sources are tried in order: a commands/ directory directly under
// stagingDir (root template layout), then
// <projectDir>/.apidog/ai-commands/<key> (nested layout, staging already
// consumed). A missing source is a warning, not a failure; warnings are
// returned for the caller to display.
func Setup(projectDir, key, stagingDir string) ([]string, error) {
	if key == KeyNone || key == "" {
		return nil, nil
	}

	tgt, ok := Lookup(key)
	if !ok {
		return []string{fmt.Sprintf("Unknown AI agent %q, skipping AI setup", key)}, nil
	}
	if tgt.Folder == "" {
		return nil, nil
	}

	destDir := filepath.Join(projectDir, filepath.FromSlash(tgt.Folder))
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create agent folder %s: %w", destDir, err)
	}

	srcDir := findCommandSource(projectDir, key, stagingDir)
	if srcDir == "" {
		return []string{fmt.Sprintf("No command templates found for %s", tgt.Name)}, nil
	}

	logger.L().Debugw("copying agent command files", "agent", key, "source", srcDir, "dest", destDir)

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read command source %s: %w", srcDir, err)
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(destDir, entry.Name())
		if err := copyFile(src, dst); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// findCommandSource locates the folder holding command definition files,
// or returns "" when neither candidate exists.
func findCommandSource(projectDir, key, stagingDir string) string {
	if stagingDir != "" {
		rootCommands := filepath.Join(stagingDir, "commands")
		if isDir(rootCommands) {
			return rootCommands
		}
	}

	nested := filepath.Join(projectDir, ".apidog", aiCommandsDir, key)
	if isDir(nested) {
		return nested
	}

	return ""
}

// copyFile copies a regular file preserving mode and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to preserve timestamps on %s: %w", dst, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
