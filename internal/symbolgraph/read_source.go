package symbolgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cortexast/cortexast/internal/cerrors"
	"github.com/cortexast/cortexast/internal/driver"
	"github.com/cortexast/cortexast/internal/scanner"
	"github.com/cortexast/cortexast/internal/skeleton"
)

// ReadSourceRequest asks for the exact byte range of one or more named
// symbols in a single file.
type ReadSourceRequest struct {
	Path        string
	SymbolNames []string // order preserved in the result
	MaxChars    int

	// SkeletonOnly returns each symbol's skeleton instead of its raw
	// source text.
	SkeletonOnly bool
}

// SymbolSource is one requested symbol's resolved source, or its
// not-found status.
type SymbolSource struct {
	Name      string
	Found     bool
	Kind      driver.Kind
	LineRange [2]int
	Source    string
}

// ReadSourceResult batches SymbolSource entries in request order plus the
// rendered text form a tool caller displays directly.
type ReadSourceResult struct {
	Path      string
	Symbols   []SymbolSource
	Text      string
	Truncated bool
}

// ReadSource resolves each requested symbol name to its exact source text.
// Unknown names are reported individually rather than failing the whole
// batch, except when the file itself can't be parsed at all.
func (e *Engine) ReadSource(ctx context.Context, req ReadSourceRequest) (ReadSourceResult, error) {
	if !pathExists(e.RepoRoot, req.Path) {
		return ReadSourceResult{}, notFoundWithDidYouMean(e.RepoRoot, req.Path)
	}

	f, err := e.fileRecord(ctx, req.Path)
	if err != nil {
		return ReadSourceResult{}, err
	}
	tree, data, err := e.readAndParse(ctx, f)
	if err != nil {
		return ReadSourceResult{}, err
	}
	if tree == nil {
		return ReadSourceResult{}, cerrors.InvalidAction(fmt.Sprintf("no language driver available to read symbols from %s", req.Path), nil)
	}

	defs := driver.ExtractDefinitions(tree, req.Path)
	byName := make(map[string][]driver.Symbol, len(defs))
	for _, d := range defs {
		byName[d.Name] = append(byName[d.Name], d)
	}

	names := req.SymbolNames
	if len(names) == 0 {
		for _, d := range defs {
			names = append(names, d.Name)
		}
	}

	sk := skeleton.New(e.CharsPerToken)

	var out []SymbolSource
	var b strings.Builder
	for _, name := range names {
		matches, ok := byName[name]
		if !ok || len(matches) == 0 {
			out = append(out, SymbolSource{Name: name, Found: false})
			fmt.Fprintf(&b, "--- %s: NOT FOUND (%s) ---\n", name, availableSymbolsHint(defs))
			continue
		}
		for _, sym := range matches {
			src := string(data[sym.ByteRange[0]:sym.ByteRange[1]])
			if req.SkeletonOnly {
				if res, skErr := sk.Skeletonize(ctx, f, data[sym.ByteRange[0]:sym.ByteRange[1]]); skErr == nil {
					src = res.SkeletonText
				}
			}
			out = append(out, SymbolSource{
				Name:      sym.Name,
				Found:     true,
				Kind:      sym.Kind,
				LineRange: sym.LineRange,
				Source:    src,
			})
			fmt.Fprintf(&b, "--- %s %s (lines %d-%d) ---\n%s\n\n", sym.Kind, sym.Name, sym.LineRange[0], sym.LineRange[1], src)
		}
	}

	text, truncated := Truncate(b.String(), req.MaxChars)
	return ReadSourceResult{Path: req.Path, Symbols: out, Text: text, Truncated: truncated}, nil
}

func availableSymbolsHint(defs []driver.Symbol) string {
	names := make([]string, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	if len(names) > 30 {
		names = names[:30]
	}
	return "available: " + strings.Join(names, ", ")
}

// fileRecord builds a scanner.File for a single known-existing path by
// scoping the walk to that path directly.
func (e *Engine) fileRecord(ctx context.Context, relPath string) (scanner.File, error) {
	files, err := e.enumerate(ctx, relPath, true)
	if err != nil {
		return scanner.File{}, err
	}
	if len(files) == 0 {
		return scanner.File{}, cerrors.NotFound(fmt.Sprintf("file not found: %s", relPath), nil)
	}
	return files[0], nil
}
