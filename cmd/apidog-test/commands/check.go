package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Check returns the command for verifying an installation.
func Check() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the template installation in the current directory",
		Long: `Verify the template installation in the current directory.

Probes the .apidog directory, the installed scripts and templates, the
AI agent command folders and the Node.js interpreter, and reports each
as a status line. The command is read-only.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Check(cmd.Context(), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}
