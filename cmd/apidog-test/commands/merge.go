package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Merge returns the command wrapping the test case merge script.
func Merge() *cobra.Command {
	var nodeBin string

	cmd := &cobra.Command{
		Use:   "merge <input-folder> <output-file>",
		Short: "Merge exported test case collections into one file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.RunTemplateScript(cmd.Context(), handlers.ScriptMerge, nodeBin, args...)
		},
	}

	cmd.Flags().StringVar(&nodeBin, "node-bin", "", "Node.js interpreter to use")

	return cmd
}
