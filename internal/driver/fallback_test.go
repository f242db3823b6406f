package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackDriver_ExtractDefinitionsIsEmpty(t *testing.T) {
	f := NewFallbackDriver()
	assert.Empty(t, f.ExtractDefinitions([]byte("anything"), "x.zig"))
}

func TestFallbackDriver_ExtractUsagesIsEmpty(t *testing.T) {
	f := NewFallbackDriver()
	assert.Empty(t, f.ExtractUsages([]byte("anything"), "x.zig", "anything"))
}

func TestFallbackDriver_SkeletonizeKeepsDefinitionShapedLines(t *testing.T) {
	f := NewFallbackDriver()
	src := `fn add(a: i32, b: i32) -> i32 {
    let sum = a + b;
    return sum;
}

struct Point {
    x: f64,
    y: f64,
}
`
	out := f.Skeletonize([]byte(src), "geometry.zig")
	assert.Contains(t, out, "fn add(a: i32, b: i32) -> i32 {")
	assert.Contains(t, out, "struct Point {")
	assert.NotContains(t, out, "let sum")
}

func TestFallbackDriver_SkeletonizeCollapsesNoise(t *testing.T) {
	f := NewFallbackDriver()
	src := "x\ny\nz\nfunc foo() {\n"
	out := f.Skeletonize([]byte(src), "x.unknown")
	assert.Contains(t, out, "// ...")
}
