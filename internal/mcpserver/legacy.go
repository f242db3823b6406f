package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexast/cortexast/internal/router"
)

// legacyCodeExplorerActions and friends list the pre-consolidation tool
// names that now live under a megatool, so each can be registered as its
// own MCP tool routed to the fixed action it always meant.
var (
	legacyCodeExplorerActions   = []string{"map_overview", "deep_slice"}
	legacySymbolAnalyzerActions = []string{"read_source", "find_usages", "find_implementations", "blast_radius", "propagation_checklist"}
	legacyChronosActions        = []string{"save_checkpoint", "list_checkpoints", "compare_checkpoint", "delete_checkpoint"}
)

// registerLegacyShims adds one MCP tool per pre-consolidation name so
// clients built against the old tool surface keep working unmodified.
func (s *Server) registerLegacyShims() {
	for _, action := range legacyCodeExplorerActions {
		action := action
		if _, _, ok := router.ResolveLegacyName(action); !ok {
			continue
		}
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        action,
			Description: "Legacy alias for cortex_code_explorer action=" + action + ".",
		}, func(ctx context.Context, req *mcp.CallToolRequest, in CodeExplorerInput) (*mcp.CallToolResult, ToolOutput, error) {
			return s.dispatchCodeExplorer(ctx, in, action)
		})
	}

	for _, action := range legacySymbolAnalyzerActions {
		action := action
		if _, _, ok := router.ResolveLegacyName(action); !ok {
			continue
		}
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        action,
			Description: "Legacy alias for cortex_symbol_analyzer action=" + action + ".",
		}, func(ctx context.Context, req *mcp.CallToolRequest, in SymbolAnalyzerInput) (*mcp.CallToolResult, ToolOutput, error) {
			return s.dispatchSymbolAnalyzer(ctx, in, action)
		})
	}

	for _, action := range legacyChronosActions {
		action := action
		if _, _, ok := router.ResolveLegacyName(action); !ok {
			continue
		}
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        action,
			Description: "Legacy alias for cortex_chronos action=" + action + ".",
		}, func(ctx context.Context, req *mcp.CallToolRequest, in ChronosInput) (*mcp.CallToolResult, ToolOutput, error) {
			return s.dispatchChronos(ctx, in, action)
		})
	}

	s.logger.Debug("legacy tool shims registered",
		slog.Int("count", len(legacyCodeExplorerActions)+len(legacySymbolAnalyzerActions)+len(legacyChronosActions)))
}
