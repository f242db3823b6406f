package symbolgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/cortexast/cortexast/internal/driver"
)

// MaxChecklistFiles and MaxChecklistChars bound propagation_checklist's
// output: a change that touches hundreds of files across languages is
// exactly the case where an exhaustive dump stops being useful.
const (
	MaxChecklistFiles = 50
	MaxChecklistChars = 8000
	maxLinesPerFile   = 5
)

// PropagationChecklistRequest traces a symbol by name and its
// case-convention aliases across every language in the repo.
type PropagationChecklistRequest struct {
	SymbolName string
	TargetDir  string

	// Aliases are caller-supplied additional spellings to search for,
	// unioned with the auto-generated casing variants.
	Aliases []string
	// IgnoreGitignore includes files a .gitignore would otherwise prune.
	IgnoreGitignore bool
}

// ChecklistEntry is one file's hit lines for one alias.
type ChecklistEntry struct {
	Path     string
	Language string
	Lines    []int
	Clipped  bool
}

// PropagationChecklistResult is the domain-grouped, path-sorted checklist.
type PropagationChecklistResult struct {
	Text      string
	Aliases   []string
	Entries   []ChecklistEntry
	Truncated bool
}

// PropagationChecklist traces SymbolName (plus its snake_case, camelCase,
// and PascalCase aliases) across every parseable file under TargetDir,
// grouping hits by domain in the order Proto, Rust, TypeScript, Python,
// Other, then by path. Output is capped at MaxChecklistFiles files and
// MaxChecklistChars characters; exceeding either appends a warning line
// instead of silently dropping data.
func (e *Engine) PropagationChecklist(ctx context.Context, req PropagationChecklistRequest) (PropagationChecklistResult, error) {
	if req.TargetDir != "" && !pathExists(e.RepoRoot, req.TargetDir) {
		return PropagationChecklistResult{}, notFoundWithDidYouMean(e.RepoRoot, req.TargetDir)
	}
	files, err := e.enumerate(ctx, req.TargetDir, req.IgnoreGitignore)
	if err != nil {
		return PropagationChecklistResult{}, err
	}

	aliases := aliasesFor(req.SymbolName, req.Aliases)

	var entries []ChecklistEntry
	pathToLang := map[string]string{}
	for _, pf := range e.parseAll(ctx, files) {
		f, tree := pf.File, pf.Tree
		if tree == nil {
			continue
		}
		lineSet := map[int]bool{}
		for _, alias := range aliases {
			for _, u := range driver.ExtractUsages(tree, f.Path, alias) {
				lineSet[u.Line] = true
			}
		}
		for _, sym := range driver.ExtractDefinitions(tree, f.Path) {
			for _, alias := range aliases {
				if sym.Name == alias {
					lineSet[sym.LineRange[0]] = true
				}
			}
		}
		if len(lineSet) == 0 {
			continue
		}
		lines := make([]int, 0, len(lineSet))
		for l := range lineSet {
			lines = append(lines, l)
		}
		sort.Ints(lines)
		clipped := false
		if len(lines) > maxLinesPerFile {
			lines = lines[:maxLinesPerFile]
			clipped = true
		}
		pathToLang[f.Path] = f.LanguageTag
		entries = append(entries, ChecklistEntry{Path: f.Path, Language: f.LanguageTag, Lines: lines, Clipped: clipped})
	}

	paths := make([]string, len(entries))
	byPath := map[string]ChecklistEntry{}
	for i, en := range entries {
		paths[i] = en.Path
		byPath[en.Path] = en
	}
	sortByDomainThenPath(paths, pathToLang)

	overflow := len(paths) > MaxChecklistFiles
	if overflow {
		paths = paths[:MaxChecklistFiles]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "propagation checklist for %s (aliases: %s):\n\n", req.SymbolName, strings.Join(aliases, ", "))

	currentGroup := ""
	for _, p := range paths {
		en := byPath[p]
		group := domainGroup(en.Language)
		if group != currentGroup {
			fmt.Fprintf(&b, "## %s\n", group)
			currentGroup = group
		}
		lineStrs := make([]string, len(en.Lines))
		for i, l := range en.Lines {
			lineStrs[i] = fmt.Sprintf("%d", l)
		}
		suffix := ""
		if en.Clipped {
			suffix = "…"
		}
		fmt.Fprintf(&b, "  %s: lines %s%s\n", en.Path, strings.Join(lineStrs, ", "), suffix)
	}

	if overflow {
		fmt.Fprintf(&b, "\nBLAST RADIUS WARNING: %d files matched, showing first %d\n", len(entries), MaxChecklistFiles)
	}

	text, truncated := Truncate(b.String(), MaxChecklistChars)
	return PropagationChecklistResult{Text: text, Aliases: aliases, Entries: entries, Truncated: truncated || overflow}, nil
}

// aliasesFor generates the symbol name plus its snake_case, camelCase, and
// PascalCase variants, unioned with any caller-supplied extra aliases,
// deduplicated.
func aliasesFor(name string, extra []string) []string {
	seen := map[string]bool{}
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	words := splitWords(name)
	if len(words) == 0 {
		add(name)
	} else {
		add(name)
		add(strings.Join(words, "_"))
		add(toCamelCase(words))
		add(toPascalCase(words))
	}
	for _, a := range extra {
		add(a)
	}
	return out
}

func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

func toCamelCase(words []string) string {
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func toPascalCase(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
