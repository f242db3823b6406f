package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractImplementors_Rust(t *testing.T) {
	src := `trait Shape {
    fn area(&self) -> f64;
}

struct Circle {
    radius: f64,
}

struct Square {
    side: f64,
}

impl Shape for Circle {
    fn area(&self) -> f64 { 0.0 }
}

impl Shape for Square {
    fn area(&self) -> f64 { 0.0 }
}
`
	tree := mustParse(t, "rust", src)
	impls := ExtractImplementors(tree, "shape.rs", "Shape")
	var names []string
	for _, i := range impls {
		names = append(names, i.TypeName)
	}
	assert.ElementsMatch(t, []string{"Circle", "Square"}, names)
}

func TestExtractImplementors_RustNoMatchForOtherTrait(t *testing.T) {
	src := `trait Shape {}
struct Circle {}
impl Shape for Circle {}
`
	tree := mustParse(t, "rust", src)
	impls := ExtractImplementors(tree, "shape.rs", "Drawable")
	assert.Empty(t, impls)
}

func TestExtractImplementors_TypeScriptImplements(t *testing.T) {
	src := `interface Shape {
	area(): number;
}

class Circle implements Shape {
	area(): number { return 0; }
}
`
	tree := mustParse(t, "typescript", src)
	impls := ExtractImplementors(tree, "shape.ts", "Shape")
	var names []string
	for _, i := range impls {
		names = append(names, i.TypeName)
	}
	assert.Contains(t, names, "Circle")
}

func TestExtractImplementors_EmptyTraitNameReturnsEmpty(t *testing.T) {
	tree := mustParse(t, "rust", "struct X{}")
	assert.Empty(t, ExtractImplementors(tree, "x.rs", ""))
}
