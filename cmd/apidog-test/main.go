// Package main is the entry point for the apidog-test CLI.
//
// apidog-test installs and maintains Apidog test-generation templates
// in a project: it resolves the latest template release on GitHub,
// downloads and extracts it into the .apidog directory, optionally sets
// up AI coding-agent commands, and wraps the bundled Node.js tooling
// with convenience commands.
//
// Commands: init, check, convert, compare, merge, reverse, version.
//
// For detailed usage information, run:
//
//	apidog-test --help
package main

import (
	"fmt"
	"os"

	"github.com/danglephuc/apidog-test/cmd/apidog-test/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
