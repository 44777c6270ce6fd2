// Package handlers implements the command logic behind the cobra
// definitions in the commands package.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/danglephuc/apidog-test/internal/agent"
	"github.com/danglephuc/apidog-test/internal/config"
	"github.com/danglephuc/apidog-test/internal/github"
	"github.com/danglephuc/apidog-test/internal/installer"
	"github.com/danglephuc/apidog-test/internal/logger"
	"github.com/danglephuc/apidog-test/internal/ui/progress"
	"github.com/danglephuc/apidog-test/internal/ui/prompt"
	"github.com/danglephuc/apidog-test/internal/util/prerequisites"
)

// projectNameRegex validates new project directory names.
var projectNameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// Factory function variables for init - can be replaced in tests.
var (
	// isTerminal reports whether stdin and stdout are attached to a TTY.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) &&
			(isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))
	}

	// promptSelectAgent asks for the agent integration.
	promptSelectAgent = prompt.SelectAgent

	// promptConfirmOverwrite asks before replacing an installation.
	promptConfirmOverwrite = prompt.ConfirmOverwrite

	// newReleaseClient builds the GitHub client for the pipeline.
	newReleaseClient = func(cfg config.Config, token string) installer.ReleaseClient {
		return github.NewClient(cfg, token)
	}

	// runPipeline executes the installation pipeline.
	runPipeline = installer.Run

	// runLiveUI drives the pipeline under the live progress view.
	runLiveUI = progress.RunLive

	// checkPrereqs probes for the tools the installed scripts need.
	checkPrereqs = prerequisites.CheckDefault
)

// InitOptions carries the init command's arguments and flags.
type InitOptions struct {
	Project       string
	Here          bool
	Agent         string
	Force         bool
	LocalTemplate string
	GitHubToken   string
	Verbose       bool
}

// Init installs the template package according to opts.
func Init(ctx context.Context, opts InitOptions) error {
	if opts.Verbose {
		logger.SetVerbose(true)
	}

	targetDir, err := resolveTargetDir(opts)
	if err != nil {
		return err
	}

	rootDir := filepath.Join(targetDir, installer.RootDirName)
	if proceed, err := confirmExisting(ctx, rootDir, opts.Force); err != nil {
		return err
	} else if !proceed {
		fmt.Println("Initialization cancelled.")
		return nil
	}

	agentKey, err := resolveAgent(ctx, opts.Agent)
	if err != nil {
		return err
	}

	// The install itself needs no Node.js, but the scripts it ships do;
	// warn early instead of failing on the first convert.
	if tools := checkPrereqs(); tools.HasErrors() {
		fmt.Printf("Warning: %v\n", tools.Error())
	}

	cfg := config.Default()
	var client installer.ReleaseClient
	if opts.LocalTemplate == "" {
		client = newReleaseClient(cfg, opts.GitHubToken)
	}

	pipelineOpts := installer.Options{
		TargetDir:     targetDir,
		AgentKey:      agentKey,
		LocalTemplate: opts.LocalTemplate,
		Config:        cfg,
	}

	tracker := installer.NewTrackerSteps("Installing Apidog test templates")

	var result *installer.Result
	run := func(ctx context.Context) error {
		var runErr error
		result, runErr = runPipeline(ctx, client, tracker, pipelineOpts)
		return runErr
	}

	if isTerminal() {
		// The live view leaves its final frame on screen when it exits.
		err = runLiveUI(ctx, tracker, run)
	} else {
		progress.NewLinePrinter(os.Stdout, tracker)
		err = run(ctx)
	}

	if err != nil {
		printErrorPanel(err)
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Printf("Warning: %s\n", warning)
	}

	printInitSuccess(targetDir, result)
	return nil
}

// resolveTargetDir validates the project/here combination and returns
// the installation directory, creating it for new projects.
func resolveTargetDir(opts InitOptions) (string, error) {
	here := opts.Here || opts.Project == "."

	switch {
	case opts.Here && opts.Project != "" && opts.Project != ".":
		return "", errors.New("cannot combine a project name with --here")
	case !here && opts.Project == "":
		return "", errors.New("provide a project name, or --here to install into the current directory")
	}

	if here {
		return ".", nil
	}

	if !projectNameRegex.MatchString(opts.Project) || strings.Contains(opts.Project, "..") {
		return "", fmt.Errorf("invalid project name %q", opts.Project)
	}
	if err := os.MkdirAll(opts.Project, 0o755); err != nil {
		return "", fmt.Errorf("failed to create project directory %s: %w", opts.Project, err)
	}
	return opts.Project, nil
}

// confirmExisting decides whether an existing installation may be
// replaced. A fresh target always proceeds.
func confirmExisting(ctx context.Context, rootDir string, force bool) (bool, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return true, nil // no installation yet
	}
	if force {
		return true, nil
	}

	if !isTerminal() {
		fmt.Println("An installation already exists here. Re-run with --force to replace it.")
		return false, nil
	}

	return promptConfirmOverwrite(ctx, len(entries))
}

// resolveAgent picks the AI integration: explicit flag first, then the
// interactive chooser, then none.
func resolveAgent(ctx context.Context, flagValue string) (string, error) {
	if flagValue != "" {
		if _, ok := agent.Lookup(flagValue); !ok {
			return "", fmt.Errorf("unknown AI agent %q (valid: %s)", flagValue, agentKeys())
		}
		return flagValue, nil
	}

	if !isTerminal() {
		return agent.KeyNone, nil
	}

	key, ok, err := promptSelectAgent(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		// Aborting the chooser skips the integration, not the install.
		return agent.KeyNone, nil
	}
	return key, nil
}

func agentKeys() string {
	targets := agent.Targets()
	keys := make([]string, len(targets))
	for i, t := range targets {
		keys[i] = t.Key
	}
	return strings.Join(keys, ", ")
}
