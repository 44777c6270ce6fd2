package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Init returns the command for installing the templates into a project.
//
// Flags:
//
//	--here: install into the current directory instead of a new one
//	--ai: AI agent integration to set up (cursor, copilot, none)
//	--force: replace an existing installation without asking
//	--local-template: install from a local archive instead of GitHub
//	--github-token: GitHub API token (falls back to GH_TOKEN/GITHUB_TOKEN)
//	--verbose, -v: enable debug logging
func Init() *cobra.Command {
	var opts handlers.InitOptions

	cmd := &cobra.Command{
		Use:   "init [project]",
		Short: "Install the Apidog test templates into a project",
		Long: `Install the Apidog test templates into a project.

Downloads the latest template release and installs it into the .apidog
directory of the target project. Pass a project name to create a new
directory, or --here to install into the current one; a project name
of "." means the current directory too.

When the target already contains an installation, the managed scripts
and templates are replaced after confirmation; your collections and
other workspace data are never touched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Project = args[0]
			}
			return handlers.Init(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Here, "here", false, "Install into the current directory")
	cmd.Flags().StringVar(&opts.Agent, "ai", "", "AI agent integration (cursor, copilot, none)")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Replace an existing installation without asking")
	cmd.Flags().StringVar(&opts.LocalTemplate, "local-template", "", "Install from a local archive file")
	cmd.Flags().StringVar(&opts.GitHubToken, "github-token", "", "GitHub API token")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
