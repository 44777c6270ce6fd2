package handlers

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/danglephuc/apidog-test/internal/agent"
	"github.com/danglephuc/apidog-test/internal/installer"
)

var errorPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#ef4444")).
	Padding(0, 1)

// printErrorPanel renders a failed install's error in a bordered panel.
func printErrorPanel(err error) {
	fmt.Println()
	fmt.Println(errorPanelStyle.Render("Installation failed\n\n" + err.Error()))
}

// printInitSuccess prints the post-install summary and next steps.
func printInitSuccess(targetDir string, result *installer.Result) {
	root := filepath.Join(targetDir, installer.RootDirName)

	fmt.Println()
	fmt.Println("Templates installed!")
	fmt.Println()
	fmt.Printf("  Version:  %s\n", result.ReleaseTag)
	fmt.Printf("  Location: %s\n", root)
	if tgt, ok := agent.Lookup(result.AgentKey); ok && tgt.Folder != "" {
		fmt.Printf("  AI agent: %s (%s)\n", tgt.Name, tgt.Folder)
	}
	fmt.Println()

	fmt.Println("Workflow")
	fmt.Println("--------")
	fmt.Println("  1. Export your OpenAPI spec into .apidog/openapi/")
	fmt.Println("  2. Write test scenarios as YAML, or generate them with your AI agent")
	fmt.Println("  3. Convert scenarios to an Apidog collection:")
	fmt.Println("     apidog-test convert <scenario.yaml>")
	fmt.Println("  4. Import the collection from .apidog/collections/ into Apidog")
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	if targetDir != "." {
		fmt.Printf("  cd %s\n", targetDir)
	}
	fmt.Println("  apidog-test check")
	fmt.Println()
}
