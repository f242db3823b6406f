package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cortexast/cortexast/internal/config"
	"github.com/cortexast/cortexast/internal/reporoot"
	"github.com/cortexast/cortexast/internal/router"
	"github.com/cortexast/cortexast/pkg/version"
)

// Server is the MCP stdio server for CortexAST. It bridges AI clients to
// the Tool Router, re-resolving the repo root and re-reading
// .cortexast.json on every call since either can change between calls in
// a long-lived session.
type Server struct {
	mcp     *mcp.Server
	logger  *slog.Logger
	cliRoot string // --root flag, if the CLI was started with one
	envVar  string // CORTEXAST_ROOT, pre-read once at startup

	initRoot *reporoot.InitializeParams
}

// NewServer constructs a Server and registers its four tools.
func NewServer(logger *slog.Logger, cliRoot string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		logger:  logger,
		cliRoot: cliRoot,
		envVar:  os.Getenv("CORTEXAST_ROOT"),
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    "CortexAST",
		Version: version.Version,
	}, nil)

	s.registerTools()
	s.registerLegacyShims()
	return s
}

// SetInitializeParams records the MCP client's initialize-time workspace
// root, the second link in the repo-root priority chain.
func (s *Server) SetInitializeParams(p *reporoot.InitializeParams) {
	s.initRoot = p
}

// Serve runs the server over stdio until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("starting MCP server", slog.String("transport", "stdio"))
	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "cortex_code_explorer",
		Description: "Explore a repo's structure and pull AST-accurate, token-budgeted slices of its source. Actions: map_overview (a skeleton tree of the whole repo or a subdirectory), deep_slice (a query-ranked XML slice bounded by a token budget). Prefer this over reading whole files blind.",
	}, s.handleCodeExplorer)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "cortex_symbol_analyzer",
		Description: "Answer precise questions about one symbol: its exact source (read_source), every call site (find_usages), every trait/interface implementor (find_implementations), its call graph in both directions (blast_radius), or every place a rename would need to touch (propagation_checklist).",
	}, s.handleSymbolAnalyzer)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "cortex_chronos",
		Description: "Save and compare structural snapshots of a symbol across edits. save_checkpoint captures a symbol's AST shape under a tag; compare_checkpoint diffs two tags (or a tag against the live file with tag_b=\"__live__\"), reporting \"no structural change\" when only whitespace moved.",
	}, s.handleChronos)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "run_diagnostics",
		Description: "Run the repo's own type-checker (cargo check or tsc --noEmit, auto-detected) and return file:line-pinned diagnostics with source context.",
	}, s.handleDiagnostics)

	s.logger.Info("MCP tools registered", slog.Int("count", 4))
}

func (s *Server) resolveRoot(repoPath string) (string, error) {
	return reporoot.Resolve(reporoot.Request{
		PerCallRepoPath: repoPath,
		Initialize:      s.initRoot,
		CLIFlag:         s.cliRoot,
		EnvVar:          s.envVar,
	})
}

func (s *Server) newRouter(repoRoot string) *router.Router {
	cfg, err := config.Load(repoRoot)
	if err != nil {
		cfg = config.NewConfig()
	}
	return router.New(router.Config{
		OutputDirName:     cfg.OutputDir,
		CharsPerToken:     cfg.TokenEstim.CharsPerToken,
		SkeletonMode:      cfg.SkeletonMode,
		ExcludeDirNames:   cfg.Scan.ExcludeDirNames,
		IncludeSubmodules: cfg.Scan.IncludeSubmodules,
		MaxFileBytes:      cfg.TokenEstim.MaxFileBytes,
	})
}

func (s *Server) handleCodeExplorer(ctx context.Context, _ *mcp.CallToolRequest, in CodeExplorerInput) (*mcp.CallToolResult, ToolOutput, error) {
	return s.dispatchCodeExplorer(ctx, in, in.Action)
}

func (s *Server) dispatchCodeExplorer(ctx context.Context, in CodeExplorerInput, action string) (*mcp.CallToolResult, ToolOutput, error) {
	root, err := s.resolveRoot(in.RepoPath)
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	res, err := s.newRouter(root).Dispatch(ctx, root, router.ToolCodeExplorer, action, router.Request{
		TargetDir:       in.TargetDir,
		SearchFilter:    in.SearchFilter,
		IgnoreGitignore: in.IgnoreGitignore,
		Query:           in.Query,
		BudgetTokens:    in.BudgetTokens,
		QueryLimit:      in.QueryLimit,
		MaxChars:        in.MaxChars,
		SkeletonOnly:    in.SkeletonOnly,
	})
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	return nil, ToolOutput{Text: res.Text, Truncated: res.Truncated}, nil
}

func (s *Server) handleSymbolAnalyzer(ctx context.Context, _ *mcp.CallToolRequest, in SymbolAnalyzerInput) (*mcp.CallToolResult, ToolOutput, error) {
	return s.dispatchSymbolAnalyzer(ctx, in, in.Action)
}

func (s *Server) dispatchSymbolAnalyzer(ctx context.Context, in SymbolAnalyzerInput, action string) (*mcp.CallToolResult, ToolOutput, error) {
	root, err := s.resolveRoot(in.RepoPath)
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	symbolName := in.SymbolName
	if symbolName == "" {
		symbolName = in.ChangedPath
	}
	res, err := s.newRouter(root).Dispatch(ctx, root, router.ToolSymbolAnalyzer, action, router.Request{
		Path:            in.Path,
		SymbolNames:     in.SymbolNames,
		SymbolName:      symbolName,
		TargetDir:       in.TargetDir,
		MaxChars:        in.MaxChars,
		SkeletonOnly:    in.SkeletonOnly,
		Aliases:         in.Aliases,
		IgnoreGitignore: in.IgnoreGitignore,
	})
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	return nil, ToolOutput{Text: res.Text, Truncated: res.Truncated}, nil
}

func (s *Server) handleChronos(ctx context.Context, _ *mcp.CallToolRequest, in ChronosInput) (*mcp.CallToolResult, ToolOutput, error) {
	return s.dispatchChronos(ctx, in, in.Action)
}

func (s *Server) dispatchChronos(ctx context.Context, in ChronosInput, action string) (*mcp.CallToolResult, ToolOutput, error) {
	root, err := s.resolveRoot(in.RepoPath)
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	req := router.Request{
		Path:        in.Path,
		SymbolName:  in.SymbolName,
		Namespace:   in.Namespace,
		SemanticTag: in.SemanticTag,
		TagA:        in.TagA,
		TagB:        in.TagB,
		MaxChars:    in.MaxChars,
	}
	if action == "save_checkpoint" {
		req.SavedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := s.newRouter(root).Dispatch(ctx, root, router.ToolChronos, action, req)
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	return nil, ToolOutput{Text: res.Text, Truncated: res.Truncated}, nil
}

func (s *Server) handleDiagnostics(ctx context.Context, _ *mcp.CallToolRequest, in DiagnosticsInput) (*mcp.CallToolResult, ToolOutput, error) {
	root, err := s.resolveRoot(in.RepoPath)
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	res, err := s.newRouter(root).Dispatch(ctx, root, router.ToolDiagnostics, "", router.Request{
		MaxChars: in.MaxChars,
	})
	if err != nil {
		return nil, ToolOutput{}, MapError(err)
	}
	return nil, ToolOutput{Text: res.Text, Truncated: res.Truncated}, nil
}
