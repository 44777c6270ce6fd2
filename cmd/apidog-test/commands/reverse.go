package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Reverse returns the command wrapping the reverse conversion script.
func Reverse() *cobra.Command {
	var nodeBin string

	cmd := &cobra.Command{
		Use:   "reverse <apidog-json> [output-yaml]",
		Short: "Convert an Apidog collection back to scenario YAML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RunTemplateScript(cmd.Context(), handlers.ScriptReverse, nodeBin, args...)
		},
	}

	cmd.Flags().StringVar(&nodeBin, "node-bin", "", "Node.js interpreter to use")

	return cmd
}
