// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated
// to handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the apidog-test CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "apidog-test",
		Short:        "Install and run Apidog test-generation templates",
		SilenceUsage: true,
	}

	// Setup commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Check())

	// Script wrappers
	cmd.AddCommand(Convert())
	cmd.AddCommand(Compare())
	cmd.AddCommand(Merge())
	cmd.AddCommand(Reverse())

	cmd.AddCommand(Version())

	return cmd
}
