package symbolgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cortexast/cortexast/internal/driver"
)

// FindImplementationsRequest scopes an implementor search to a trait,
// interface, or protocol name under a directory.
type FindImplementationsRequest struct {
	TraitName string
	TargetDir string
	MaxChars  int
}

// FindImplementationsResult groups implementors by language, each group
// sorted by path then line.
type FindImplementationsResult struct {
	Text         string
	Implementors []driver.Implementor
	Truncated    bool
}

// FindImplementations scans parseable files under TargetDir for types
// implementing TraitName, using each language driver's own notion of
// implementation (Rust trait impl blocks, TypeScript "implements"
// clauses, Go structural satisfaction where the driver supports it).
func (e *Engine) FindImplementations(ctx context.Context, req FindImplementationsRequest) (FindImplementationsResult, error) {
	if req.TargetDir != "" && !pathExists(e.RepoRoot, req.TargetDir) {
		return FindImplementationsResult{}, notFoundWithDidYouMean(e.RepoRoot, req.TargetDir)
	}
	files, err := e.enumerate(ctx, req.TargetDir, false)
	if err != nil {
		return FindImplementationsResult{}, err
	}

	var all []driver.Implementor
	langByPath := map[string]string{}
	for _, pf := range e.parseAll(ctx, files) {
		f, tree := pf.File, pf.Tree
		if tree == nil {
			continue
		}
		impls := driver.ExtractImplementors(tree, f.Path, req.TraitName)
		for _, im := range impls {
			langByPath[im.Path] = f.LanguageTag
			all = append(all, im)
		}
	}

	byLang := map[string][]driver.Implementor{}
	for _, im := range all {
		lang := langByPath[im.Path]
		byLang[lang] = append(byLang[lang], im)
	}
	var langs []string
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var b strings.Builder
	fmt.Fprintf(&b, "implementors of %s:\n\n", req.TraitName)
	for _, lang := range langs {
		group := byLang[lang]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Path != group[j].Path {
				return group[i].Path < group[j].Path
			}
			return group[i].Line < group[j].Line
		})
		fmt.Fprintf(&b, "## %s\n", lang)
		for _, im := range group {
			fmt.Fprintf(&b, "  %s (%s:%d)\n", im.TypeName, im.Path, im.Line)
		}
		b.WriteString("\n")
	}
	if len(all) == 0 {
		fmt.Fprintf(&b, "(no implementors of %s found under %s)\n", req.TraitName, displayTarget(req.TargetDir))
	}

	text, truncated := Truncate(b.String(), req.MaxChars)
	return FindImplementationsResult{Text: text, Implementors: all, Truncated: truncated}, nil
}
