package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cortexast/cortexast/internal/mcpserver"
)

// newMCPCmd creates the mcp command, starting the stdio MCP server.
func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP stdio server",
		Long:  `Start the CortexAST MCP server over stdio, serving cortex_code_explorer, cortex_symbol_analyzer, cortex_chronos, and run_diagnostics to an MCP client.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := mcpserver.NewServer(slog.Default(), rootFlag)
			return server.Serve(cmd.Context())
		},
	}
}
