package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUsages_Call(t *testing.T) {
	src := `package main

func helper() {}

func main() {
	helper()
}
`
	tree := mustParse(t, "go", src)
	usages := ExtractUsages(tree, "main.go", "helper")
	require := false
	for _, u := range usages {
		if u.Category == CategoryCall {
			require = true
		}
	}
	assert.True(t, require, "expected a call usage")
}

func TestExtractUsages_TypeRef(t *testing.T) {
	src := `package main

type Widget struct{}

func New() *Widget {
	return &Widget{}
}
`
	tree := mustParse(t, "go", src)
	usages := ExtractUsages(tree, "main.go", "Widget")
	found := false
	for _, u := range usages {
		if u.Category == CategoryTypeRef {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtractUsages_NeverMatchesInsideComment(t *testing.T) {
	src := "package main\n\n// helper does something\nfunc helper() {}\n"
	tree := mustParse(t, "go", src)
	usages := ExtractUsages(tree, "main.go", "helper")
	// the only real occurrence is the declaration's own identifier on line 4,
	// which categorize reports under its type_ref fallback; the comment
	// occurrence on line 3 must never appear.
	for _, u := range usages {
		assert.NotEqual(t, 3, u.Line, "comment line must never be matched")
	}
}

func TestExtractUsages_NeverMatchesInsideStringLiteral(t *testing.T) {
	src := "package main\n\nfunc main() {\n\ts := \"helper\"\n\t_ = s\n}\n"
	tree := mustParse(t, "go", src)
	usages := ExtractUsages(tree, "main.go", "helper")
	assert.Empty(t, usages)
}

func TestExtractUsages_FieldAccess(t *testing.T) {
	src := `package main

type Widget struct {
	Name string
}

func main() {
	w := Widget{}
	_ = w.Name
}
`
	tree := mustParse(t, "go", src)
	usages := ExtractUsages(tree, "main.go", "Name")
	found := false
	for _, u := range usages {
		if u.Category == CategoryFieldAccess {
			found = true
		}
	}
	assert.True(t, found)
}

func TestExtractUsages_EmptyNameReturnsEmpty(t *testing.T) {
	tree := mustParse(t, "go", "package main\n")
	assert.Empty(t, ExtractUsages(tree, "main.go", ""))
}
