package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Compare returns the command wrapping the endpoint comparison script.
func Compare() *cobra.Command {
	var nodeBin string

	cmd := &cobra.Command{
		Use:   "compare <openapi> <scenario-dir> [apidog-json] [output]",
		Short: "Compare OpenAPI endpoints against test scenario coverage",
		Args:  cobra.RangeArgs(2, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RunTemplateScript(cmd.Context(), handlers.ScriptCompare, nodeBin, args...)
		},
	}

	cmd.Flags().StringVar(&nodeBin, "node-bin", "", "Node.js interpreter to use")

	return cmd
}
