// Package cli implements the tallyctl command tree: headless
// categorization and reporting over a statement file, sharing the core
// pipeline with the web server.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tallyctl",
		Short: "Rule-based bank statement categorizer",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCategorizeCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}
