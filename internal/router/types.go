// Package router dispatches megatool (tool, action) pairs to the engine
// operations in internal/symbolgraph, internal/chronos, and
// internal/diagnostics, validates the action enum per tool, and enforces
// max_chars on every response. The repo root arrives already resolved from
// the caller.
package router

// DefaultMaxChars is applied when a caller omits max_chars.
const DefaultMaxChars = 8000

// Megatool names the four tools plus run_diagnostics the server advertises.
type Megatool string

const (
	ToolCodeExplorer   Megatool = "cortex_code_explorer"
	ToolSymbolAnalyzer Megatool = "cortex_symbol_analyzer"
	ToolChronos        Megatool = "cortex_chronos"
	ToolDiagnostics    Megatool = "run_diagnostics"
)

// actionsByTool is the enum the router validates every request against.
var actionsByTool = map[Megatool]map[string]bool{
	ToolCodeExplorer: {
		"map_overview": true,
		"deep_slice":   true,
	},
	ToolSymbolAnalyzer: {
		"read_source":           true,
		"find_usages":           true,
		"find_implementations":  true,
		"blast_radius":          true,
		"propagation_checklist": true,
	},
	ToolChronos: {
		"save_checkpoint":    true,
		"list_checkpoints":   true,
		"compare_checkpoint": true,
		"delete_checkpoint":  true,
	},
	ToolDiagnostics: {
		"": true, // run_diagnostics has no action enum, it's a single operation
	},
}

// legacyShims maps a pre-consolidation tool name straight to the action it
// now lives under; every legacy name equals its action name today, since
// consolidation renamed the tool surface but never the actions themselves.
var legacyShims = map[string]struct {
	Tool   Megatool
	Action string
}{
	"map_overview":          {ToolCodeExplorer, "map_overview"},
	"deep_slice":            {ToolCodeExplorer, "deep_slice"},
	"read_source":           {ToolSymbolAnalyzer, "read_source"},
	"find_usages":           {ToolSymbolAnalyzer, "find_usages"},
	"find_implementations":  {ToolSymbolAnalyzer, "find_implementations"},
	"blast_radius":          {ToolSymbolAnalyzer, "blast_radius"},
	"propagation_checklist": {ToolSymbolAnalyzer, "propagation_checklist"},
	"save_checkpoint":       {ToolChronos, "save_checkpoint"},
	"list_checkpoints":      {ToolChronos, "list_checkpoints"},
	"compare_checkpoint":    {ToolChronos, "compare_checkpoint"},
	"delete_checkpoint":     {ToolChronos, "delete_checkpoint"},
	"run_diagnostics":       {ToolDiagnostics, ""},
}

// ResolveLegacyName translates a pre-consolidation tool name into its
// (megatool, action) pair. ok is false when name isn't a recognized legacy
// shim, in which case callers should try name as a megatool name directly.
func ResolveLegacyName(name string) (tool Megatool, action string, ok bool) {
	shim, found := legacyShims[name]
	if !found {
		return "", "", false
	}
	return shim.Tool, shim.Action, true
}

// Request is the union of every parameter any action accepts. Only the
// fields relevant to the chosen action are read.
type Request struct {
	RepoPath        string
	MaxChars        int
	TargetDir       string
	SearchFilter    string
	IgnoreGitignore bool
	Query           string
	BudgetTokens    int
	QueryLimit      int
	Path            string
	SymbolNames     []string
	SymbolName      string
	Namespace       string
	SemanticTag     string
	TagA            string
	TagB            string
	SavedAt         string
	SkeletonOnly    bool
	Aliases         []string
}

func (r Request) maxChars() int {
	if r.MaxChars > 0 {
		return r.MaxChars
	}
	return DefaultMaxChars
}

// Response is the text the tool surface returns, plus whether it was
// clipped at max_chars.
type Response struct {
	Text      string
	Truncated bool
}
