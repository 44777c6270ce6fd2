package commands

import (
	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/handlers"
)

// Convert returns the command wrapping the scenario conversion script.
func Convert() *cobra.Command {
	var (
		output  string
		nodeBin string
	)

	cmd := &cobra.Command{
		Use:   "convert <path>",
		Short: "Convert test scenario YAML files to Apidog collections",
		Long: `Convert test scenario YAML files to Apidog collections.

Accepts a single YAML file or a directory, which is scanned recursively
for *.yaml and *.yml files. Files that fail to parse as YAML are
reported up front; the conversion itself is performed by the installed
convert_scenario.js script.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Convert(cmd.Context(), args[0], output, nodeBin)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory")
	cmd.Flags().StringVar(&nodeBin, "node-bin", "", "Node.js interpreter to use")

	return cmd
}
