package symbolgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cortexast/cortexast/internal/scanner"
	"github.com/cortexast/cortexast/internal/skeleton"
	"github.com/cortexast/cortexast/internal/vectorstore"
)

// DefaultBudgetTokens is deep_slice's default token budget when the
// caller does not specify one.
const DefaultBudgetTokens = 32000

// rootManifestNames are always included at minimal cost regardless of
// ranking, since they orient a reader faster than any single source file.
var rootManifestNames = []string{
	"README.md", "go.mod", "package.json", "Cargo.toml", "pyproject.toml",
}

// DeepSliceRequest is the input to DeepSlice.
type DeepSliceRequest struct {
	Target       string
	Query        string
	BudgetTokens int
	QueryLimit   int
	MaxChars     int

	// SkeletonOnly forces skeletonization of every included file
	// regardless of SkeletonMode.
	SkeletonOnly bool
	// SkeletonMode is config.Config.SkeletonMode: "full" includes raw
	// source instead of a skeleton unless SkeletonOnly overrides it; any
	// other value (including "" and "auto") skeletonizes.
	SkeletonMode string
}

// DeepSliceResult is the rendered XML slice.
type DeepSliceResult struct {
	XML             string
	Truncated       bool
	IncludedFiles   int
	EstimatedTokens int
}

// DeepSlice composes skeletonized files into a token-budgeted XML slice,
// ranking by vector similarity when Query is set.
func (e *Engine) DeepSlice(ctx context.Context, store *vectorstore.Store, req DeepSliceRequest) (DeepSliceResult, error) {
	if !pathExists(e.RepoRoot, req.Target) {
		return DeepSliceResult{}, notFoundWithDidYouMean(e.RepoRoot, req.Target)
	}
	budget := req.BudgetTokens
	if budget <= 0 {
		budget = DefaultBudgetTokens
	}

	files, err := e.enumerate(ctx, req.Target, false)
	if err != nil {
		return DeepSliceResult{}, err
	}
	var parseable []scanner.File
	for _, f := range files {
		if f.Parseable() {
			parseable = append(parseable, f)
		}
	}

	ranked := parseable
	if req.Query != "" && store != nil {
		results, qErr := store.Query(ctx, req.Query, req.QueryLimit, budget)
		if qErr == nil && len(results) > 0 {
			ranked = rankByQueryResults(parseable, results)
		}
	}

	sk := skeleton.New(e.CharsPerToken)
	skeletonize := req.SkeletonOnly || strings.ToLower(req.SkeletonMode) != "full"
	var b strings.Builder
	b.WriteString("<slice>\n")

	included := 0
	spent := 0

	for _, name := range rootManifestNames {
		if spent >= budget {
			break
		}
		full := filepath.Join(e.RepoRoot, name)
		if !pathExists(e.RepoRoot, name) {
			continue
		}
		data, readErr := readFileBounded(full)
		if readErr != nil {
			continue
		}
		tokens := skeleton.EstimateTokens(string(data), e.CharsPerToken)
		fmt.Fprintf(&b, "  <file path=%q language=\"manifest\">\n%s\n  </file>\n", name, xmlEscape(string(data)))
		spent += tokens
		included++
	}

	for _, f := range ranked {
		if spent >= budget {
			break
		}
		data, readErr := readFileBounded(f.AbsPath)
		if readErr != nil {
			continue
		}
		text := string(data)
		if skeletonize {
			if res, skErr := sk.Skeletonize(ctx, f, data); skErr == nil {
				text = res.SkeletonText
			}
		}
		tokens := skeleton.EstimateTokens(text, e.CharsPerToken)
		if spent+tokens > budget {
			continue
		}
		fmt.Fprintf(&b, "  <file path=%q language=%q>\n%s\n  </file>\n", f.Path, f.LanguageTag, xmlEscape(text))
		spent += tokens
		included++
	}

	fmt.Fprintf(&b, "  <summary included_files=\"%d\" estimated_tokens=\"%d\"/>\n", included, spent)
	b.WriteString("</slice>\n")

	text, truncated := Truncate(b.String(), req.MaxChars)
	return DeepSliceResult{XML: text, Truncated: truncated, IncludedFiles: included, EstimatedTokens: spent}, nil
}

func rankByQueryResults(files []scanner.File, results []vectorstore.QueryResult) []scanner.File {
	rank := make(map[string]int, len(results))
	for i, r := range results {
		rank[r.Path] = i
	}
	byPath := make(map[string]scanner.File, len(files))
	for _, f := range files {
		byPath[f.Path] = f
	}
	var ranked []scanner.File
	seen := make(map[string]bool)
	for _, r := range results {
		if f, ok := byPath[r.Path]; ok && !seen[r.Path] {
			ranked = append(ranked, f)
			seen[r.Path] = true
		}
	}
	for _, f := range files {
		if !seen[f.Path] {
			ranked = append(ranked, f)
			seen[f.Path] = true
		}
	}
	return ranked
}

func xmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// readFileBounded reads a file, refusing anything larger than the scanner's
// resource guard so a stray huge manifest can't blow the token budget on
// its own.
func readFileBounded(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > scanner.MaxFileBytes {
		return nil, fmt.Errorf("file too large: %s", path)
	}
	return os.ReadFile(path)
}
