// Package driver implements the Language Driver Registry: one driver per
// supported language tag, each offering the same capability surface
// (extract definitions, extract usages, extract outgoing calls, extract
// implementors, skeletonize) dispatched by a tagged language variant rather
// than by subtype inheritance, per the engine's polymorphic-driver design
// note. Grounded on the teacher's internal/chunk package.
package driver

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Point is a zero-indexed row/column source position.
type Point struct {
	Row    uint32
	Column uint32
}

// Node is a language-agnostic AST node, converted once from a tree-sitter
// node so the rest of the package never touches cgo-backed types directly.
type Node struct {
	Type       string
	StartByte  uint32
	EndByte    uint32
	StartPoint Point
	EndPoint   Point
	HasError   bool
	Children   []*Node
}

// Tree is a parsed file.
type Tree struct {
	Root     *Node
	Source   []byte
	Language string
}

// GetContent returns the source slice a node spans.
func (n *Node) GetContent(source []byte) string {
	if n == nil || n.StartByte >= n.EndByte || int(n.EndByte) > len(source) {
		return ""
	}
	return string(source[n.StartByte:n.EndByte])
}

// FindChildByType returns the first direct child of the given type.
func (n *Node) FindChildByType(nodeType string) *Node {
	for _, c := range n.Children {
		if c.Type == nodeType {
			return c
		}
	}
	return nil
}

// FindChildrenByType returns every direct child of the given type.
func (n *Node) FindChildrenByType(nodeType string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == nodeType {
			out = append(out, c)
		}
	}
	return out
}

// FindAllByType recursively collects every node of the given type.
func (n *Node) FindAllByType(nodeType string) []*Node {
	var out []*Node
	if n.Type == nodeType {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAllByType(nodeType)...)
	}
	return out
}

// Walk performs a depth-first traversal, calling fn for every node. Walking
// stops descending into a subtree when fn returns false for its root.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Contains reports whether the byte range [start, end) is fully inside n.
func (n *Node) Contains(start, end uint32) bool {
	return n.StartByte <= start && end <= n.EndByte
}

// Parser wraps a tree-sitter parser. Parser instances are never shared
// across goroutines; each worker owns one.
type Parser struct {
	ts       *sitter.Parser
	registry *Registry
}

// NewParser creates a Parser bound to the default Registry.
func NewParser() *Parser {
	return &Parser{ts: sitter.NewParser(), registry: DefaultRegistry()}
}

// Parse parses source as the given language tag and returns the converted
// tree. Parse errors never abort the caller: tree-sitter always returns a
// best-effort tree, possibly with HasError nodes.
func (p *Parser) Parse(ctx context.Context, source []byte, language string) (*Tree, error) {
	lang, ok := p.registry.TreeSitterLanguage(language)
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", language)
	}
	p.ts.SetLanguage(lang)

	tsTree, err := p.ts.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	if tsTree == nil {
		return nil, fmt.Errorf("parse source: nil tree")
	}

	return &Tree{Root: convertNode(tsTree.RootNode()), Source: source, Language: language}, nil
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
	}
}

func convertNode(tsNode *sitter.Node) *Node {
	if tsNode == nil {
		return nil
	}
	n := &Node{
		Type:       tsNode.Type(),
		StartByte:  tsNode.StartByte(),
		EndByte:    tsNode.EndByte(),
		StartPoint: Point{Row: tsNode.StartPoint().Row, Column: tsNode.StartPoint().Column},
		EndPoint:   Point{Row: tsNode.EndPoint().Row, Column: tsNode.EndPoint().Column},
		HasError:   tsNode.HasError(),
		Children:   make([]*Node, 0, int(tsNode.ChildCount())),
	}
	for i := uint32(0); i < tsNode.ChildCount(); i++ {
		if child := tsNode.Child(int(i)); child != nil {
			n.Children = append(n.Children, convertNode(child))
		}
	}
	return n
}
