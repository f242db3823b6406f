// Package cmd provides the CLI commands for CortexAST.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cortexast/cortexast/pkg/version"
)

var rootFlag string // --root, the CLI-flag link in the repo-root priority chain

// NewRootCmd creates the root command for the cortexast CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cortexast",
		Short: "AST-accurate, token-efficient code intelligence for AI agents",
		Long: `CortexAST serves AST-accurate, token-efficient views of a source
repository to AI coding agents, either as a one-shot slice on disk or as
a live MCP stdio server.`,
		Version: version.Version,
	}

	cmd.SetVersionTemplate("cortexast version {{.Version}}\n")
	cmd.PersistentFlags().StringVar(&rootFlag, "root", "", "repo root, overrides CORTEXAST_ROOT and the find-up heuristic")

	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newSliceCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
