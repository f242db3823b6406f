package symbolgraph

import (
	"context"
	"fmt"
	"strings"

	"github.com/cortexast/cortexast/internal/driver"
	"github.com/cortexast/cortexast/internal/scanner"
	"github.com/cortexast/cortexast/internal/skeleton"
)

// StrictSummaryThreshold is the file-count cutoff above which map_overview
// collapses each file to a single-line skeleton instead of a full symbol
// list.
const StrictSummaryThreshold = 50

// SymbolNameFilterThreshold is the file-count ceiling below which
// search_filter also matches symbol names, not just paths.
const SymbolNameFilterThreshold = 300

// MapOverviewRequest is the input to MapOverview.
type MapOverviewRequest struct {
	TargetDir       string
	SearchFilter    string // case-insensitive, "|"-separated OR terms
	IgnoreGitignore bool
	MaxChars        int
}

// MapOverviewResult is the rendered overview plus whether it was clipped.
type MapOverviewResult struct {
	Text      string
	Truncated bool
}

// MapOverview produces a directory-scoped symbol map, collapsing to
// single-line skeletons above StrictSummaryThreshold files.
func (e *Engine) MapOverview(ctx context.Context, req MapOverviewRequest) (MapOverviewResult, error) {
	if req.TargetDir != "" && !pathExists(e.RepoRoot, req.TargetDir) {
		return MapOverviewResult{}, notFoundWithDidYouMean(e.RepoRoot, req.TargetDir)
	}

	files, err := e.enumerate(ctx, req.TargetDir, req.IgnoreGitignore)
	if err != nil {
		return MapOverviewResult{}, err
	}
	var parseable []scanner.File
	for _, f := range files {
		if f.Parseable() {
			parseable = append(parseable, f)
		}
	}

	terms := filterTerms(req.SearchFilter)
	matchSymbols := len(parseable) <= SymbolNameFilterThreshold

	var kept []scanner.File
	dropped := 0
	var b strings.Builder

	sk := skeleton.New(e.CharsPerToken)
	strict := len(parseable) > StrictSummaryThreshold

	if strict {
		fmt.Fprintf(&b, "%d files under %s (strict summary: symbol lists collapsed)\n\n", len(parseable), displayTarget(req.TargetDir))
	}

	for _, pf := range e.parseAll(ctx, parseable) {
		f, tree, data := pf.File, pf.Tree, pf.Data
		symbolNames := symbolNamesFromTree(tree, f.Path)
		if len(terms) > 0 {
			if !pathMatchesTerms(f.Path, terms) && !(matchSymbols && symbolMatchesTerms(symbolNames, terms)) {
				dropped++
				continue
			}
		}
		kept = append(kept, f)

		if strict {
			res, _ := sk.Skeletonize(ctx, f, data)
			b.WriteString(singleLine(f.Path, res.SkeletonText))
			b.WriteString("\n")
			continue
		}

		fmt.Fprintf(&b, "## %s (%s)\n", f.Path, f.LanguageTag)
		if tree != nil {
			for _, sym := range driver.ExtractDefinitions(tree, f.Path) {
				fmt.Fprintf(&b, "  %s %s %d-%d\n", sym.Kind, sym.Name, sym.LineRange[0], sym.LineRange[1])
			}
		}
		b.WriteString("\n")
	}

	if dropped > 0 {
		fmt.Fprintf(&b, "(%d file(s) dropped by search_filter)\n", dropped)
	}

	text, truncated := Truncate(b.String(), req.MaxChars)
	return MapOverviewResult{Text: text, Truncated: truncated}, nil
}

func symbolNamesFromTree(tree *driver.Tree, path string) []string {
	if tree == nil {
		return nil
	}
	defs := driver.ExtractDefinitions(tree, path)
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

func filterTerms(filter string) []string {
	if filter == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(filter, "|") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

func pathMatchesTerms(path string, terms []string) bool {
	lower := strings.ToLower(path)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func symbolMatchesTerms(names []string, terms []string) bool {
	for _, n := range names {
		lower := strings.ToLower(n)
		for _, t := range terms {
			if strings.Contains(lower, t) {
				return true
			}
		}
	}
	return false
}

func singleLine(path, skeletonText string) string {
	collapsed := strings.Join(strings.Fields(skeletonText), " ")
	return fmt.Sprintf("%s: %s", path, collapsed)
}

func displayTarget(targetDir string) string {
	if targetDir == "" {
		return "repo root"
	}
	return targetDir
}
