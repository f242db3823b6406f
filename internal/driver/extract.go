package driver

import "strings"

// ExtractDefinitions walks tree and returns every top-level and nested named
// definition the language's LanguageConfig recognizes. A symbol's ByteRange
// always covers the complete declaration, including its body.
func ExtractDefinitions(tree *Tree, path string) []Symbol {
	if tree == nil || tree.Root == nil {
		return []Symbol{}
	}
	cfg, ok := DefaultRegistry().ByName(tree.Language)
	if !ok {
		return []Symbol{}
	}

	var symbols []Symbol
	var parents []string

	var walk func(n *Node)
	walk = func(n *Node) {
		kind, matched := matchKind(n.Type, cfg)
		pushedParent := false
		if matched {
			name := extractName(n, tree.Source, tree.Language, kind)
			if name != "" {
				parent := ""
				if len(parents) > 0 {
					parent = parents[len(parents)-1]
				}
				symbols = append(symbols, Symbol{
					Name:          name,
					Kind:          kind,
					Path:          path,
					ByteRange:     [2]uint32{n.StartByte, n.EndByte},
					LineRange:     [2]int{int(n.StartPoint.Row) + 1, int(n.EndPoint.Row) + 1},
					Visibility:    inferVisibility(name, tree.Language),
					SignatureText: extractSignature(n, tree.Source, kind, tree.Language),
					ParentSymbol:  parent,
				})
				if kind == KindClass || kind == KindStruct || kind == KindInterface || kind == KindTrait {
					parents = append(parents, name)
					pushedParent = true
				}
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
		if pushedParent {
			parents = parents[:len(parents)-1]
		}
	}
	walk(tree.Root)
	return symbols
}

func matchKind(nodeType string, cfg *LanguageConfig) (Kind, bool) {
	switch {
	case contains(cfg.FunctionTypes, nodeType):
		return KindFunction, true
	case contains(cfg.MethodTypes, nodeType):
		return KindMethod, true
	case contains(cfg.ClassTypes, nodeType):
		if cfg.Name == "rust" {
			return KindStruct, true
		}
		return KindClass, true
	case contains(cfg.InterfaceTypes, nodeType):
		return KindInterface, true
	case contains(cfg.TraitTypes, nodeType):
		return KindTrait, true
	case contains(cfg.EnumTypes, nodeType):
		return KindEnum, true
	case contains(cfg.TypeDefTypes, nodeType):
		return KindTypeAlias, true
	case contains(cfg.ConstantTypes, nodeType):
		if nodeType == "static_item" {
			return KindStatic, true
		}
		return KindConst, true
	case contains(cfg.VariableTypes, nodeType):
		return KindConst, true
	case contains(cfg.MessageTypes, nodeType):
		return KindMessage, true
	default:
		return "", false
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func inferVisibility(name, language string) Visibility {
	if name == "" {
		return VisibilityPrivate
	}
	switch language {
	case "go":
		if name[0] >= 'A' && name[0] <= 'Z' {
			return VisibilityPublic
		}
		return VisibilityPrivate
	case "python":
		if strings.HasPrefix(name, "_") {
			return VisibilityPrivate
		}
		return VisibilityPublic
	default:
		return VisibilityPublic
	}
}

// extractName resolves the identifier naming a definition node, following
// the teacher's per-language special-casing (Go method receivers use
// field_identifier, not identifier; TypeScript/JS const/var names sit inside
// a variable_declarator; Python uses a direct identifier child).
func extractName(n *Node, source []byte, language string, kind Kind) string {
	switch language {
	case "go":
		return extractGoName(n, source)
	case "typescript", "tsx", "javascript", "jsx":
		return extractJSFamilyName(n, source)
	case "python":
		return extractPythonName(n, source)
	case "rust":
		return extractRustName(n, source)
	case "protobuf":
		return extractProtobufName(n, source)
	default:
		if c := n.FindChildByType("identifier"); c != nil {
			return c.GetContent(source)
		}
		return ""
	}
}

func extractGoName(n *Node, source []byte) string {
	switch n.Type {
	case "function_declaration":
		if c := n.FindChildByType("identifier"); c != nil {
			return c.GetContent(source)
		}
	case "method_declaration":
		if c := n.FindChildByType("field_identifier"); c != nil {
			return c.GetContent(source)
		}
	case "type_declaration":
		if spec := n.FindChildByType("type_spec"); spec != nil {
			if id := spec.FindChildByType("type_identifier"); id != nil {
				return id.GetContent(source)
			}
		}
	case "const_declaration":
		if spec := n.FindChildByType("const_spec"); spec != nil {
			if id := spec.FindChildByType("identifier"); id != nil {
				return id.GetContent(source)
			}
		}
	case "var_declaration":
		if spec := n.FindChildByType("var_spec"); spec != nil {
			if id := spec.FindChildByType("identifier"); id != nil {
				return id.GetContent(source)
			}
		}
	}
	return ""
}

func extractJSFamilyName(n *Node, source []byte) string {
	switch n.Type {
	case "lexical_declaration", "variable_declaration":
		if decl := n.FindChildByType("variable_declarator"); decl != nil {
			if id := decl.FindChildByType("identifier"); id != nil {
				return id.GetContent(source)
			}
		}
		return ""
	default:
		if id := n.FindChildByType("identifier"); id != nil {
			return id.GetContent(source)
		}
		if id := n.FindChildByType("type_identifier"); id != nil {
			return id.GetContent(source)
		}
		if id := n.FindChildByType("property_identifier"); id != nil {
			return id.GetContent(source)
		}
		return ""
	}
}

func extractPythonName(n *Node, source []byte) string {
	if n.Type == "assignment" {
		if id := n.FindChildByType("identifier"); id != nil {
			return id.GetContent(source)
		}
		return ""
	}
	if id := n.FindChildByType("identifier"); id != nil {
		return id.GetContent(source)
	}
	return ""
}

func extractRustName(n *Node, source []byte) string {
	switch n.Type {
	case "impl_item":
		// impl Trait for Type: the second type_identifier is the type, the
		// first (when present with a "for" sibling) is the trait.
		ids := n.FindChildrenByType("type_identifier")
		if len(ids) > 0 {
			return ids[len(ids)-1].GetContent(source)
		}
		return ""
	default:
		if id := n.FindChildByType("identifier"); id != nil {
			return id.GetContent(source)
		}
		if id := n.FindChildByType("type_identifier"); id != nil {
			return id.GetContent(source)
		}
		return ""
	}
}

func extractProtobufName(n *Node, source []byte) string {
	if id := n.FindChildByType("message_name"); id != nil {
		return id.GetContent(source)
	}
	if id := n.FindChildByType("service_name"); id != nil {
		return id.GetContent(source)
	}
	if id := n.FindChildByType("enum_name"); id != nil {
		return id.GetContent(source)
	}
	if id := n.FindChildByType("identifier"); id != nil {
		return id.GetContent(source)
	}
	return ""
}

// extractSignature returns the first line of the declaration up to its
// opening brace or colon, the teacher's first-line-to-brace heuristic.
func extractSignature(n *Node, source []byte, kind Kind, language string) string {
	full := n.GetContent(source)
	if full == "" {
		return ""
	}
	terminators := "{:"
	if language == "python" {
		terminators = ":"
	}
	idx := strings.IndexAny(full, terminators)
	var line string
	if idx == -1 {
		line = full
	} else {
		line = full[:idx]
	}
	line = strings.TrimSpace(strings.ReplaceAll(line, "\n", " "))
	return collapseSpaces(line)
}

func collapseSpaces(s string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if lastSpace {
				continue
			}
			lastSpace = true
			b.WriteRune(' ')
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
