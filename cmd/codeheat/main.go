// Package main provides the entry point for the codeheat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/codeheat/cmd/codeheat/commands"
	"github.com/Sumatoshi-tech/codeheat/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codeheat",
		Short: "Codeheat - per-line edit frequency heat maps for git repositories",
		Long: `Codeheat computes how many commits touched every line of every text file
in a git work tree and renders the result as a heat-mapped HTML report
tree with a ranked overview index.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "codeheat %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
