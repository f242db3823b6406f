// Package mcpserver bridges the MCP stdio transport to the Tool Router. It
// registers the four megatools, resolves the repo root per call (per-call
// repo_path, initialize params, --root, CORTEXAST_ROOT, then the working
// directory; the find-up heuristic is not applied, since no FindUpFrom path
// is passed), and translates *cerrors.CortexError into MCP tool
// errors the way the teacher's own server maps its AmanError type.
package mcpserver

// CodeExplorerInput is the flat input schema for cortex_code_explorer.
type CodeExplorerInput struct {
	Action          string `json:"action" jsonschema:"map_overview or deep_slice"`
	RepoPath        string `json:"repo_path,omitempty" jsonschema:"absolute path to the repo, overrides every other root-resolution source"`
	TargetDir       string `json:"target_dir,omitempty" jsonschema:"directory to scope the operation to, relative to the repo root"`
	SearchFilter    string `json:"search_filter,omitempty" jsonschema:"substring filter on file path or symbol name for map_overview"`
	IgnoreGitignore bool   `json:"ignore_gitignore,omitempty" jsonschema:"include files .gitignore would normally exclude"`
	Query           string `json:"query,omitempty" jsonschema:"natural-language query ranking deep_slice's file inclusion order"`
	BudgetTokens    int    `json:"budget_tokens,omitempty" jsonschema:"token budget for deep_slice, default 32000"`
	QueryLimit      int    `json:"query_limit,omitempty" jsonschema:"max vector store results considered when query is set"`
	MaxChars        int    `json:"max_chars,omitempty" jsonschema:"clip the response at this many characters, default 8000"`
	SkeletonOnly    bool   `json:"skeleton_only,omitempty" jsonschema:"force skeletonization of every included file in deep_slice regardless of config"`
}

// SymbolAnalyzerInput is the flat input schema for cortex_symbol_analyzer.
type SymbolAnalyzerInput struct {
	Action          string   `json:"action" jsonschema:"read_source, find_usages, find_implementations, blast_radius, or propagation_checklist"`
	RepoPath        string   `json:"repo_path,omitempty" jsonschema:"absolute path to the repo, overrides every other root-resolution source"`
	Path            string   `json:"path,omitempty" jsonschema:"file path for read_source, or the definition's file for blast_radius"`
	SymbolNames     []string `json:"symbol_names,omitempty" jsonschema:"symbol names to extract for read_source; empty extracts every top-level symbol"`
	SymbolName      string   `json:"symbol_name,omitempty" jsonschema:"symbol, trait, or interface name for every action but read_source"`
	ChangedPath     string   `json:"changed_path,omitempty" jsonschema:"legacy alias for symbol_name on propagation_checklist"`
	TargetDir       string   `json:"target_dir,omitempty" jsonschema:"directory to scope the search to, relative to the repo root"`
	MaxChars        int      `json:"max_chars,omitempty" jsonschema:"clip the response at this many characters, default 8000"`
	SkeletonOnly    bool     `json:"skeleton_only,omitempty" jsonschema:"return each read_source symbol's skeleton instead of its raw source"`
	Aliases         []string `json:"aliases,omitempty" jsonschema:"extra spellings to search for in propagation_checklist, unioned with auto-generated casing variants"`
	IgnoreGitignore bool     `json:"ignore_gitignore,omitempty" jsonschema:"include files .gitignore would normally exclude, for propagation_checklist"`
}

// ChronosInput is the flat input schema for cortex_chronos.
type ChronosInput struct {
	Action      string `json:"action" jsonschema:"save_checkpoint, list_checkpoints, compare_checkpoint, or delete_checkpoint"`
	RepoPath    string `json:"repo_path,omitempty" jsonschema:"absolute path to the repo, overrides every other root-resolution source"`
	Path        string `json:"path,omitempty" jsonschema:"file the symbol lives in, required by save_checkpoint and a live compare_checkpoint"`
	SymbolName  string `json:"symbol_name,omitempty" jsonschema:"symbol name the checkpoint is keyed on"`
	Namespace   string `json:"namespace,omitempty" jsonschema:"checkpoint namespace, defaults to \"default\""`
	SemanticTag string `json:"semantic_tag,omitempty" jsonschema:"human label for a saved checkpoint, e.g. before_refactor"`
	TagA        string `json:"tag_a,omitempty" jsonschema:"left-hand tag for compare_checkpoint"`
	TagB        string `json:"tag_b,omitempty" jsonschema:"right-hand tag for compare_checkpoint; \"__live__\" diffs against the file on disk"`
	MaxChars    int    `json:"max_chars,omitempty" jsonschema:"clip the response at this many characters, default 8000"`
}

// DiagnosticsInput is the input schema for run_diagnostics.
type DiagnosticsInput struct {
	RepoPath string `json:"repo_path,omitempty" jsonschema:"absolute path to the repo, overrides every other root-resolution source"`
	MaxChars int    `json:"max_chars,omitempty" jsonschema:"clip the response at this many characters, default 8000"`
}

// ToolOutput is the structured output every megatool returns.
type ToolOutput struct {
	Text      string `json:"text" jsonschema:"the rendered result"`
	Truncated bool   `json:"truncated" jsonschema:"true if the result was clipped at max_chars"`
}
