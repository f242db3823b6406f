package symbolgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cortexast/cortexast/internal/driver"
)

// FindUsagesRequest scopes a usage search to a symbol name under a
// directory.
type FindUsagesRequest struct {
	SymbolName string
	TargetDir  string
	MaxChars   int
}

// UsageGroup is every usage found in one file, sorted by line.
type UsageGroup struct {
	Path   string
	Usages []driver.Usage
}

// FindUsagesResult groups usages by path, sorted by path.
type FindUsagesResult struct {
	Text      string
	Groups    []UsageGroup
	Truncated bool
}

// FindUsages scans every parseable file under TargetDir for occurrences
// of SymbolName, classified by category (call, type_ref, field_access,
// field_init, impl) and never matching inside comments or string
// literals.
func (e *Engine) FindUsages(ctx context.Context, req FindUsagesRequest) (FindUsagesResult, error) {
	if req.TargetDir != "" && !pathExists(e.RepoRoot, req.TargetDir) {
		return FindUsagesResult{}, notFoundWithDidYouMean(e.RepoRoot, req.TargetDir)
	}
	files, err := e.enumerate(ctx, req.TargetDir, false)
	if err != nil {
		return FindUsagesResult{}, err
	}

	var groups []UsageGroup
	for _, pf := range e.parseAll(ctx, files) {
		f, tree := pf.File, pf.Tree
		if tree == nil {
			continue
		}
		usages := driver.ExtractUsages(tree, f.Path, req.SymbolName)
		if len(usages) == 0 {
			continue
		}
		sort.Slice(usages, func(i, j int) bool {
			if usages[i].Line != usages[j].Line {
				return usages[i].Line < usages[j].Line
			}
			return usages[i].Category < usages[j].Category
		})
		groups = append(groups, UsageGroup{Path: f.Path, Usages: usages})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Path < groups[j].Path })

	var b strings.Builder
	total := 0
	fmt.Fprintf(&b, "usages of %s:\n\n", req.SymbolName)
	for _, g := range groups {
		fmt.Fprintf(&b, "## %s\n", g.Path)
		byCategory := map[driver.UsageCategory][]driver.Usage{}
		for _, u := range g.Usages {
			byCategory[u.Category] = append(byCategory[u.Category], u)
			total++
		}
		for _, cat := range []driver.UsageCategory{
			driver.CategoryCall, driver.CategoryTypeRef, driver.CategoryFieldInit,
			driver.CategoryFieldAccess, driver.CategoryImpl,
		} {
			us := byCategory[cat]
			if len(us) == 0 {
				continue
			}
			lines := make([]string, len(us))
			for i, u := range us {
				lines[i] = fmt.Sprintf("%d", u.Line)
			}
			fmt.Fprintf(&b, "  %s: lines %s\n", cat, strings.Join(lines, ", "))
		}
		b.WriteString("\n")
	}
	if total == 0 {
		fmt.Fprintf(&b, "(no usages found under %s)\n", displayTarget(req.TargetDir))
	}

	text, truncated := Truncate(b.String(), req.MaxChars)
	return FindUsagesResult{Text: text, Groups: groups, Truncated: truncated}, nil
}
