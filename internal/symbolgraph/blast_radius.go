package symbolgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cortexast/cortexast/internal/driver"
)

// BlastRadiusRequest asks for everything a symbol touches and is touched
// by: its own definition, what it calls, and what calls it.
type BlastRadiusRequest struct {
	SymbolName string
	DefPath    string // file the definition lives in, narrows the search
	TargetDir  string // scope for the incoming-usage scan
	MaxChars   int
}

// IncomingCall is one call site into SymbolName, with the enclosing
// symbol it was found inside (empty if the call is at file scope).
type IncomingCall struct {
	Path      string
	Line      int
	Enclosing string
}

// BlastRadiusResult has the three sections the tool surface renders.
type BlastRadiusResult struct {
	Text      string
	Def       *driver.Symbol
	Outgoing  []driver.Call
	Incoming  []IncomingCall
	Truncated bool
}

// BlastRadius reports a symbol's definition, its outgoing calls, and
// every incoming call site across TargetDir, each incoming entry
// attributed to its enclosing function or method.
func (e *Engine) BlastRadius(ctx context.Context, req BlastRadiusRequest) (BlastRadiusResult, error) {
	if req.TargetDir != "" && !pathExists(e.RepoRoot, req.TargetDir) {
		return BlastRadiusResult{}, notFoundWithDidYouMean(e.RepoRoot, req.TargetDir)
	}

	files, err := e.enumerate(ctx, req.TargetDir, false)
	if err != nil {
		return BlastRadiusResult{}, err
	}

	var def *driver.Symbol
	var outgoing []driver.Call
	var incoming []IncomingCall

	for _, pf := range e.parseAll(ctx, files) {
		f, tree := pf.File, pf.Tree
		if tree == nil {
			continue
		}

		if def == nil && (req.DefPath == "" || f.Path == req.DefPath) {
			for _, sym := range driver.ExtractDefinitions(tree, f.Path) {
				if sym.Name == req.SymbolName {
					s := sym
					def = &s
					outgoing = driver.ExtractOutgoingCalls(tree, s)
					break
				}
			}
		}

		defs := driver.ExtractDefinitions(tree, f.Path)
		for _, u := range driver.ExtractUsages(tree, f.Path, req.SymbolName) {
			if u.Category != driver.CategoryCall {
				continue
			}
			incoming = append(incoming, IncomingCall{
				Path:      f.Path,
				Line:      u.Line,
				Enclosing: enclosingSymbol(defs, u.ByteOffset),
			})
		}
	}

	sort.Slice(incoming, func(i, j int) bool {
		if incoming[i].Path != incoming[j].Path {
			return incoming[i].Path < incoming[j].Path
		}
		return incoming[i].Line < incoming[j].Line
	})

	var b strings.Builder
	fmt.Fprintf(&b, "blast radius for %s:\n\n", req.SymbolName)

	b.WriteString("## Definition\n")
	if def != nil {
		fmt.Fprintf(&b, "  %s %s %s:%d-%d\n\n", def.Kind, def.Name, def.Path, def.LineRange[0], def.LineRange[1])
	} else {
		b.WriteString("  (not found)\n\n")
	}

	fmt.Fprintf(&b, "## Outgoing calls (%d)\n", len(outgoing))
	for _, c := range outgoing {
		fmt.Fprintf(&b, "  %s (line %d)\n", c.CalleeName, c.Line)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Incoming calls (%d)\n", len(incoming))
	for _, ic := range incoming {
		if ic.Enclosing != "" {
			fmt.Fprintf(&b, "  %s:%d (inside %s)\n", ic.Path, ic.Line, ic.Enclosing)
		} else {
			fmt.Fprintf(&b, "  %s:%d (file scope)\n", ic.Path, ic.Line)
		}
	}

	text, truncated := Truncate(b.String(), req.MaxChars)
	return BlastRadiusResult{Text: text, Def: def, Outgoing: outgoing, Incoming: incoming, Truncated: truncated}, nil
}

// enclosingSymbol finds the innermost symbol whose byte range contains
// offset, preferring the most deeply nested match.
func enclosingSymbol(defs []driver.Symbol, offset uint32) string {
	var best *driver.Symbol
	for i := range defs {
		d := &defs[i]
		if offset < d.ByteRange[0] || offset > d.ByteRange[1] {
			continue
		}
		if best == nil || (d.ByteRange[1]-d.ByteRange[0]) < (best.ByteRange[1]-best.ByteRange[0]) {
			best = d
		}
	}
	if best == nil {
		return ""
	}
	return best.Name
}
