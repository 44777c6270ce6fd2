package handlers

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/danglephuc/apidog-test/internal/installer"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/runner"
)

// Template script names under .apidog/scripts.
const (
	ScriptConvert = "convert_scenario.js"
	ScriptCompare = "compare_endpoints.js"
	ScriptMerge   = "merge_test_cases.js"
	ScriptReverse = "reverse_convert.js"
)

// templateScripts lists every script the templates are expected to ship.
var templateScripts = []string{ScriptConvert, ScriptCompare, ScriptMerge, ScriptReverse}

// runScript executes one script - can be replaced in tests.
var runScript = func(ctx context.Context, nodeBin, scriptPath string, args ...string) error {
	r := &runner.Runner{NodeBin: nodeBin}
	return r.Run(ctx, scriptPath, args...)
}

// RunTemplateScript locates a template script in the current project
// and runs it with the given arguments, passing stdio through.
func RunTemplateScript(ctx context.Context, script, nodeBin string, args ...string) error {
	scriptPath := filepath.Join(installer.RootDirName, "scripts", script)
	if !fileExists(scriptPath) {
		return fmt.Errorf(
			"%s not found; run 'apidog-test init --here' to install the templates", scriptPath)
	}

	logger.L().Debugw("invoking template script", "script", script, "args", args)
	return runScript(ctx, nodeBin, scriptPath, args...)
}

// Convert lints the scenario YAML input and forwards it to the
// conversion script. Lint findings are warnings only, the script is the
// authority on what it accepts.
func Convert(ctx context.Context, path, output, nodeBin string) error {
	files, err := collectScenarioFiles(path)
	if err != nil {
		return err
	}

	for _, file := range files {
		if lintErr := lintYAML(file); lintErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s does not parse as YAML: %v\n", file, lintErr)
		}
	}

	args := []string{path}
	if output != "" {
		args = append(args, output)
	}
	return RunTemplateScript(ctx, ScriptConvert, nodeBin, args...)
}

// collectScenarioFiles expands a file or directory argument into the
// YAML files it covers.
func collectScenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".yaml", ".yml":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML scenario files found under %s", path)
	}
	return files, nil
}

// lintYAML checks that a file parses as YAML.
func lintYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc any
	return yaml.Unmarshal(data, &doc)
}
