package router

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cortexast/cortexast/internal/cerrors"
	"github.com/cortexast/cortexast/internal/chronos"
	"github.com/cortexast/cortexast/internal/diagnostics"
	"github.com/cortexast/cortexast/internal/symbolgraph"
	"github.com/cortexast/cortexast/internal/vectorstore"
)

// Config configures a Router's collaborators. OutputDirName and
// CharsPerToken mirror the engine-wide defaults a .cortexast.json config
// file can override per call.
type Config struct {
	OutputDirName     string
	CharsPerToken     int
	Embedder          vectorstore.Embedder
	SkeletonMode      string
	ExcludeDirNames   []string
	IncludeSubmodules bool
	MaxFileBytes      int64
}

// Router dispatches validated (tool, action) pairs to the engine.
type Router struct {
	cfg Config
}

// New constructs a Router, applying defaults for an unset Config.
func New(cfg Config) *Router {
	if cfg.OutputDirName == "" {
		cfg.OutputDirName = ".cortexast"
	}
	if cfg.CharsPerToken <= 0 {
		cfg.CharsPerToken = 4
	}
	return &Router{cfg: cfg}
}

func (r *Router) outputDir(repoRoot string) string {
	return filepath.Join(repoRoot, r.cfg.OutputDirName)
}

// Dispatch validates action against tool's enum, routes to the matching
// engine operation, and clips the rendered text at max_chars.
func (r *Router) Dispatch(ctx context.Context, repoRoot string, tool Megatool, action string, req Request) (Response, error) {
	enum, ok := actionsByTool[tool]
	if !ok {
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unknown tool: %s", tool), nil)
	}
	if !enum[action] {
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unknown action %q for tool %s", action, tool), nil)
	}

	maxChars := req.maxChars()

	switch tool {
	case ToolCodeExplorer:
		return r.dispatchCodeExplorer(ctx, repoRoot, action, req, maxChars)
	case ToolSymbolAnalyzer:
		return r.dispatchSymbolAnalyzer(ctx, repoRoot, action, req, maxChars)
	case ToolChronos:
		return r.dispatchChronos(ctx, repoRoot, action, req, maxChars)
	case ToolDiagnostics:
		return r.dispatchDiagnostics(ctx, repoRoot, req, maxChars)
	default:
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unhandled tool: %s", tool), nil)
	}
}

func (r *Router) engine(repoRoot string) *symbolgraph.Engine {
	return symbolgraph.NewEngineWithConfig(repoRoot, symbolgraph.EngineConfig{
		CharsPerToken:     r.cfg.CharsPerToken,
		ExcludeDirNames:   r.cfg.ExcludeDirNames,
		IncludeSubmodules: r.cfg.IncludeSubmodules,
		MaxFileBytes:      r.cfg.MaxFileBytes,
	})
}

func (r *Router) dispatchCodeExplorer(ctx context.Context, repoRoot, action string, req Request, maxChars int) (Response, error) {
	e := r.engine(repoRoot)
	switch action {
	case "map_overview":
		res, err := e.MapOverview(ctx, symbolgraph.MapOverviewRequest{
			TargetDir:       req.TargetDir,
			SearchFilter:    req.SearchFilter,
			IgnoreGitignore: req.IgnoreGitignore,
			MaxChars:        maxChars,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.Text, Truncated: res.Truncated}, nil

	case "deep_slice":
		var store *vectorstore.Store
		if req.Query != "" {
			store = vectorstore.New(vectorstore.Config{
				OutputDir:     r.outputDir(repoRoot),
				CharsPerToken: r.cfg.CharsPerToken,
				Embedder:      r.cfg.Embedder,
			})
		}
		res, err := e.DeepSlice(ctx, store, symbolgraph.DeepSliceRequest{
			Target:       req.TargetDir,
			Query:        req.Query,
			BudgetTokens: req.BudgetTokens,
			QueryLimit:   req.QueryLimit,
			MaxChars:     maxChars,
			SkeletonOnly: req.SkeletonOnly,
			SkeletonMode: r.cfg.SkeletonMode,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.XML, Truncated: res.Truncated}, nil

	default:
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unhandled action: %s", action), nil)
	}
}

func (r *Router) dispatchSymbolAnalyzer(ctx context.Context, repoRoot, action string, req Request, maxChars int) (Response, error) {
	e := r.engine(repoRoot)
	switch action {
	case "read_source":
		res, err := e.ReadSource(ctx, symbolgraph.ReadSourceRequest{
			Path:         req.Path,
			SymbolNames:  req.SymbolNames,
			MaxChars:     maxChars,
			SkeletonOnly: req.SkeletonOnly,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.Text, Truncated: res.Truncated}, nil

	case "find_usages":
		res, err := e.FindUsages(ctx, symbolgraph.FindUsagesRequest{
			SymbolName: req.SymbolName,
			TargetDir:  req.TargetDir,
			MaxChars:   maxChars,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.Text, Truncated: res.Truncated}, nil

	case "find_implementations":
		res, err := e.FindImplementations(ctx, symbolgraph.FindImplementationsRequest{
			TraitName: req.SymbolName,
			TargetDir: req.TargetDir,
			MaxChars:  maxChars,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.Text, Truncated: res.Truncated}, nil

	case "blast_radius":
		res, err := e.BlastRadius(ctx, symbolgraph.BlastRadiusRequest{
			SymbolName: req.SymbolName,
			DefPath:    req.Path,
			TargetDir:  req.TargetDir,
			MaxChars:   maxChars,
		})
		if err != nil {
			return Response{}, err
		}
		return Response{Text: res.Text, Truncated: res.Truncated}, nil

	case "propagation_checklist":
		res, err := e.PropagationChecklist(ctx, symbolgraph.PropagationChecklistRequest{
			SymbolName:      req.SymbolName,
			TargetDir:       req.TargetDir,
			Aliases:         req.Aliases,
			IgnoreGitignore: req.IgnoreGitignore,
		})
		if err != nil {
			return Response{}, err
		}
		text, truncated := truncate(res.Text, maxChars)
		return Response{Text: text, Truncated: truncated || res.Truncated}, nil

	default:
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unhandled action: %s", action), nil)
	}
}

func (r *Router) dispatchChronos(ctx context.Context, repoRoot, action string, req Request, maxChars int) (Response, error) {
	store := chronos.New(repoRoot, r.outputDir(repoRoot))
	switch action {
	case "save_checkpoint":
		cp, err := store.Save(ctx, chronos.SaveRequest{
			Path:        req.Path,
			SymbolName:  req.SymbolName,
			SemanticTag: req.SemanticTag,
			Namespace:   req.Namespace,
			SavedAt:     req.SavedAt,
		})
		if err != nil {
			return Response{}, err
		}
		text := fmt.Sprintf("saved checkpoint %s/%s@%s (hash %s)", cp.Namespace, cp.SymbolName, cp.SemanticTag, cp.StructuralHash)
		return clipped(text, maxChars), nil

	case "list_checkpoints":
		list, err := store.List(ctx)
		if err != nil {
			return Response{}, err
		}
		return clipped(renderChecklist(list), maxChars), nil

	case "compare_checkpoint":
		res, err := store.Compare(ctx, chronos.CompareRequest{
			SymbolName: req.SymbolName,
			TagA:       req.TagA,
			TagB:       req.TagB,
			Namespace:  req.Namespace,
			Path:       req.Path,
		})
		if err != nil {
			return Response{}, err
		}
		return clipped(res.Render(), maxChars), nil

	case "delete_checkpoint":
		res, err := store.Delete(chronos.DeleteRequest{
			Namespace:   req.Namespace,
			SymbolName:  req.SymbolName,
			SemanticTag: req.SemanticTag,
			Path:        req.Path,
		})
		if err != nil {
			return Response{}, err
		}
		text := fmt.Sprintf("deleted %d checkpoint(s)", res.DeletedCount)
		if res.UsedLegacy {
			text += " (legacy directory)"
		}
		return clipped(text, maxChars), nil

	default:
		return Response{}, cerrors.InvalidAction(fmt.Sprintf("unhandled action: %s", action), nil)
	}
}

func (r *Router) dispatchDiagnostics(ctx context.Context, repoRoot string, req Request, maxChars int) (Response, error) {
	res, err := diagnostics.Run(ctx, repoRoot)
	if err != nil {
		return Response{}, err
	}
	return clipped(renderDiagnostics(res), maxChars), nil
}

func renderDiagnostics(res diagnostics.Result) string {
	if len(res.Diagnostics) == 0 {
		return fmt.Sprintf("%s: no diagnostics", res.ProjectType)
	}
	out := fmt.Sprintf("%s: %d diagnostic(s)\n", res.ProjectType, len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		out += fmt.Sprintf("%s:%d:%d: %s: %s\n", d.Path, d.Line, d.Column, d.Severity, d.Message)
		if d.SourceContext != "" {
			out += fmt.Sprintf("    %s\n", d.SourceContext)
		}
	}
	return out
}

func clipped(text string, maxChars int) Response {
	t, truncated := truncate(text, maxChars)
	return Response{Text: t, Truncated: truncated}
}

func renderChecklist(list []chronos.ListedCheckpoint) string {
	if len(list) == 0 {
		return "(no checkpoints saved)"
	}
	out := "checkpoints:\n"
	for _, c := range list {
		hashPrefix := c.StructuralHash
		if len(hashPrefix) > 8 {
			hashPrefix = hashPrefix[:8]
		}
		out += fmt.Sprintf("  %s/%s@%s saved_at=%s hash=%s\n", c.Namespace, c.SymbolName, c.SemanticTag, c.SavedAt, hashPrefix)
	}
	return out
}
