package driver

import "strings"

// ExtractImplementors returns (type_name, path, line) for every construct
// implementing traitName: Rust "impl Trait for Type", TypeScript/JS "class X
// implements Y", and the analogous extends/heritage clauses other languages
// expose.
func ExtractImplementors(tree *Tree, path, traitName string) []Implementor {
	if tree == nil || tree.Root == nil || traitName == "" {
		return []Implementor{}
	}
	cfg, ok := DefaultRegistry().ByName(tree.Language)
	if !ok {
		return []Implementor{}
	}

	var out []Implementor
	tree.Root.Walk(func(n *Node) bool {
		switch {
		case contains(cfg.ImplTypes, n.Type):
			out = append(out, extractRustImpl(n, tree.Source, path, traitName)...)
		case contains(cfg.ClassTypes, n.Type):
			out = append(out, extractHeritageImpl(n, tree.Source, path, traitName)...)
		}
		return true
	})
	return out
}

func extractRustImpl(n *Node, source []byte, path, traitName string) []Implementor {
	ids := n.FindChildrenByType("type_identifier")
	if len(ids) < 2 {
		return nil
	}
	trait := ids[0].GetContent(source)
	typ := ids[len(ids)-1].GetContent(source)
	if trait != traitName {
		return nil
	}
	return []Implementor{{TypeName: typ, Path: path, Line: int(n.StartPoint.Row) + 1}}
}

func extractHeritageImpl(n *Node, source []byte, path, traitName string) []Implementor {
	text := n.GetContent(source)
	if !strings.Contains(text, traitName) {
		return nil
	}
	if !strings.Contains(text, "implements") && !strings.Contains(text, "extends") {
		return nil
	}
	name := extractJSFamilyName(n, source)
	if name == "" {
		return nil
	}
	return []Implementor{{TypeName: name, Path: path, Line: int(n.StartPoint.Row) + 1}}
}
