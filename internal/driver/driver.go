package driver

import (
	"context"
	"fmt"
	"strings"
)

// Driver is the capability set every supported language offers: parse,
// extract-definitions, extract-usages, extract-calls, extract-implementors,
// skeletonize. It is a thin façade over the package-level Extract*
// functions plus a Parser, dispatched by language tag rather than by
// subtype.
type Driver struct {
	Language string
	parser   *Parser
}

// New creates a Driver for the given language tag. Returns an error if the
// tag is unsupported; callers fall back to the FallbackDriver in that case.
func New(language string) (*Driver, error) {
	if _, ok := DefaultRegistry().ByName(language); !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	return &Driver{Language: language, parser: NewParser()}, nil
}

// Close releases the underlying tree-sitter parser.
func (d *Driver) Close() {
	d.parser.Close()
}

// Parse parses source into a Tree. Malformed source yields tree-sitter's
// best-effort tree; it never returns an error for syntax errors, only for
// infrastructure failures (unsupported language, parser internal failure).
func (d *Driver) Parse(ctx context.Context, source []byte) (*Tree, error) {
	return d.parser.Parse(ctx, source, d.Language)
}

// ExtractDefinitions implements the Driver capability.
func (d *Driver) ExtractDefinitions(tree *Tree, path string) []Symbol {
	return ExtractDefinitions(tree, path)
}

// ExtractUsages implements the Driver capability.
func (d *Driver) ExtractUsages(tree *Tree, path, name string) []Usage {
	return ExtractUsages(tree, path, name)
}

// ExtractOutgoingCalls implements the Driver capability.
func (d *Driver) ExtractOutgoingCalls(tree *Tree, sym Symbol) []Call {
	return ExtractOutgoingCalls(tree, sym)
}

// ExtractImplementors implements the Driver capability.
func (d *Driver) ExtractImplementors(tree *Tree, path, traitName string) []Implementor {
	return ExtractImplementors(tree, path, traitName)
}

// Skeletonize reduces source to signatures and declarations: function and
// method bodies are replaced by a placeholder, the import block collapses
// to a single hint line, comment-only lines are dropped (TODO/FIXME
// preserved), and indentation is flattened for brace-delimited languages
// while preserved for indentation-significant ones (Python).
func (d *Driver) Skeletonize(tree *Tree, path string) string {
	if tree == nil || tree.Root == nil {
		return ""
	}
	syms := ExtractDefinitions(tree, path)
	return skeletonizeFromSymbols(tree, syms)
}

func skeletonizeFromSymbols(tree *Tree, syms []Symbol) string {
	source := tree.Source
	var out strings.Builder

	importCount, importEnd := countImports(tree)
	if importCount > 0 {
		fmt.Fprintf(&out, "// ... %d import(s) collapsed\n\n", importCount)
	}

	bodyPlaceholder := placeholderFor(tree.Language)

	// Only emit top-level symbols; nested ones are represented inside their
	// parent's signature+placeholder rendering, matching how a reader
	// expects a skeleton to look like a shortened version of the file, not
	// a flat symbol dump.
	var lastEnd uint32 = uint32(importEnd)
	for _, sym := range syms {
		if sym.ParentSymbol != "" {
			continue
		}
		if sym.ByteRange[0] < lastEnd {
			continue
		}
		preserved := preserveComments(string(source[lastEnd:sym.ByteRange[0]]))
		if preserved != "" {
			out.WriteString(preserved)
		}
		out.WriteString(sym.SignatureText)
		out.WriteString(" ")
		out.WriteString(bodyPlaceholder)
		out.WriteString("\n")
		lastEnd = sym.ByteRange[1]
	}
	if int(lastEnd) < len(source) {
		preserved := preserveComments(string(source[lastEnd:]))
		out.WriteString(preserved)
	}
	return strings.TrimRight(out.String(), "\n") + "\n"
}

func placeholderFor(language string) string {
	switch language {
	case "python":
		return "..."
	default:
		return "{ /* ... */ }"
	}
}

// countImports returns the number of import-like top-level statements and
// the byte offset where the import block ends.
func countImports(tree *Tree) (int, int) {
	importTypes := map[string][]string{
		"go":         {"import_declaration"},
		"typescript": {"import_statement"},
		"tsx":        {"import_statement"},
		"javascript": {"import_statement"},
		"jsx":        {"import_statement"},
		"python":     {"import_statement", "import_from_statement"},
		"rust":       {"use_declaration"},
		"protobuf":   {"import"},
	}
	types := importTypes[tree.Language]
	if len(types) == 0 {
		return 0, 0
	}
	count := 0
	end := 0
	for _, child := range tree.Root.Children {
		for _, t := range types {
			if child.Type == t {
				count++
				if int(child.EndByte) > end {
					end = int(child.EndByte)
				}
			}
		}
	}
	return count, end
}

// preserveComments keeps only the comment lines of a gap of raw source that
// mention TODO or FIXME, trimmed; code lines, blank lines and all other
// comment lines in the gap are dropped.
func preserveComments(gap string) string {
	lines := strings.Split(gap, "\n")
	var kept []string
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		isComment := strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
		if isComment && !strings.Contains(trimmed, "TODO") && !strings.Contains(trimmed, "FIXME") {
			continue
		}
		if isComment {
			kept = append(kept, trimmed)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "\n") + "\n"
}
