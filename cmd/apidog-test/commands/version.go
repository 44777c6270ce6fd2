package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/danglephuc/apidog-test/internal/installer"
	"github.com/danglephuc/apidog-test/internal/marker"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information from main.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Version returns the version command.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("apidog-test %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

			if rec, err := marker.Read(installer.RootDirName); err == nil {
				fmt.Printf("  templates: %s (installed %s)\n", rec.TemplateVersion, rec.InstalledAt)
			}
		},
	}
}
