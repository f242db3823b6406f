package driver

// ExtractOutgoingCalls returns every call expression inside sym's byte
// range. Method-like receivers (obj.method(...)) yield only the final
// segment. Trivial intrinsics (string builders, len/append/...) are
// filtered as noise.
func ExtractOutgoingCalls(tree *Tree, sym Symbol) []Call {
	if tree == nil || tree.Root == nil {
		return []Call{}
	}
	cfg, ok := DefaultRegistry().ByName(tree.Language)
	if !ok {
		return []Call{}
	}

	var calls []Call
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.EndByte <= sym.ByteRange[0] || n.StartByte >= sym.ByteRange[1] {
			return
		}
		inside := sym.ByteRange[0] <= n.StartByte && n.EndByte <= sym.ByteRange[1]
		if inside && contains(cfg.CallTypes, n.Type) && len(n.Children) > 0 {
			callee := calleeName(n.Children[0], tree.Source)
			if callee != "" && !trivialIntrinsics[callee] {
				calls = append(calls, Call{CalleeName: callee, Line: int(n.StartPoint.Row) + 1})
			}
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree.Root)
	return calls
}

// calleeName resolves the callee text to its final identifier segment:
// "pkg.Fn" -> "Fn", "obj.method" -> "method", a bare identifier unchanged.
func calleeName(fn *Node, source []byte) string {
	if fn.Type == "identifier" || fn.Type == "type_identifier" {
		return fn.GetContent(source)
	}
	// selector/member/field expressions: last identifier-like child.
	var last string
	fn.Walk(func(n *Node) bool {
		if isIdentifierType(n.Type) {
			last = n.GetContent(source)
		}
		return true
	})
	return last
}
