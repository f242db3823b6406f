package chronos

import (
	"strings"

	"github.com/cortexast/cortexast/internal/contenthash"
	"github.com/cortexast/cortexast/internal/driver"
)

// astShape walks every node under the given byte range and emits a flat
// token sequence: leaf identifier/literal nodes contribute their source
// text, every other node contributes its grammar type. Whitespace and
// byte/line position never enter the token stream, so two parses of the
// same logical code produce identical shapes regardless of reformatting.
func astShape(tree *driver.Tree, start, end uint32) string {
	var tokens []string
	var walk func(n *driver.Node)
	walk = func(n *driver.Node) {
		if n == nil || n.EndByte <= start || n.StartByte >= end {
			return
		}
		inside := start <= n.StartByte && n.EndByte <= end
		if len(n.Children) == 0 {
			if !inside {
				return
			}
			if text := n.GetContent(tree.Source); text != "" {
				tokens = append(tokens, text)
			} else {
				tokens = append(tokens, n.Type)
			}
			return
		}
		if inside {
			tokens = append(tokens, n.Type)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)
	return strings.Join(tokens, " ")
}

// structuralHash hashes a shape string produced by astShape.
func structuralHash(shape string) string {
	return contenthash.HashString(shape)
}

// normalizeLine collapses a line's internal whitespace for structural
// line-by-line comparison; two lines differing only in indentation or
// spacing normalize identically.
func normalizeLine(line string) string {
	return strings.Join(strings.Fields(line), " ")
}
