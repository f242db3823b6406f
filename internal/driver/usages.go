package driver

// identifierNodeTypes are the node types ExtractUsages treats as matchable
// identifier occurrences, never comments or string literals.
var identifierNodeTypes = []string{
	"identifier", "type_identifier", "field_identifier", "property_identifier",
}

// ExtractUsages returns every identifier-kind node whose text equals name,
// categorized by its syntactic position. An identifier may legitimately
// produce more than one category from different ancestor checks, but
// duplicates at the same byte offset are suppressed.
func ExtractUsages(tree *Tree, path, name string) []Usage {
	if tree == nil || tree.Root == nil || name == "" {
		return []Usage{}
	}
	cfg, ok := DefaultRegistry().ByName(tree.Language)
	if !ok {
		return []Usage{}
	}

	var usages []Usage
	seen := make(map[uint32]map[UsageCategory]bool)

	var ancestors []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		if isIdentifierType(n.Type) && n.GetContent(tree.Source) == name && !insideCommentOrString(ancestors, cfg) {
			cat := categorize(n, ancestors, cfg)
			if cat != "" {
				if seen[n.StartByte] == nil {
					seen[n.StartByte] = make(map[UsageCategory]bool)
				}
				if !seen[n.StartByte][cat] {
					seen[n.StartByte][cat] = true
					usages = append(usages, Usage{
						Path:       path,
						Line:       int(n.StartPoint.Row) + 1,
						ByteOffset: n.StartByte,
						Category:   cat,
					})
				}
			}
		}
		ancestors = append(ancestors, n)
		for _, c := range n.Children {
			walk(c)
		}
		ancestors = ancestors[:len(ancestors)-1]
	}
	walk(tree.Root)
	return usages
}

func isIdentifierType(t string) bool {
	for _, it := range identifierNodeTypes {
		if t == it {
			return true
		}
	}
	return false
}

func insideCommentOrString(ancestors []*Node, cfg *LanguageConfig) bool {
	for _, a := range ancestors {
		if contains(cfg.CommentTypes, a.Type) || contains(cfg.StringTypes, a.Type) {
			return true
		}
	}
	return false
}

// categorize inspects the immediate parent (and, for impl detection, any
// enclosing impl_item node) to determine the Usage category.
func categorize(n *Node, ancestors []*Node, cfg *LanguageConfig) UsageCategory {
	if len(ancestors) == 0 {
		return ""
	}
	parent := ancestors[len(ancestors)-1]

	if isCallPosition(parent, n) {
		return CategoryCall
	}

	switch parent.Type {
	case "type_annotation", "generic_type", "type_arguments", "type_parameters",
		"class_heritage", "extends_clause", "implements_clause":
		return CategoryTypeRef
	case "keyed_element", "field_initializer", "pair", "shorthand_property_identifier":
		return CategoryFieldInit
	case "member_expression", "selector_expression", "field_expression", "attribute":
		return CategoryFieldAccess
	case "impl_item":
		return CategoryImpl
	}

	for _, a := range ancestors {
		if a.Type == "impl_item" {
			return CategoryImpl
		}
	}

	return CategoryTypeRef
}

func isCallPosition(parent, n *Node) bool {
	if parent.Type != "call_expression" && parent.Type != "call" {
		return false
	}
	if len(parent.Children) == 0 {
		return false
	}
	fn := parent.Children[0]
	if fn == n {
		return true
	}
	// n may be the rightmost identifier of a member/selector expression used
	// as the call target (obj.method(...)).
	if fn.EndByte == n.EndByte && fn.StartByte <= n.StartByte {
		return true
	}
	return false
}
