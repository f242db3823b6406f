package skeleton

import (
	"context"
	"testing"

	"github.com/cortexast/cortexast/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkeletonize_Go(t *testing.T) {
	s := New(4)
	src := []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n")
	file := scanner.File{Path: "main.go", LanguageTag: "go"}

	res, err := s.Skeletonize(context.Background(), file, src)
	require.NoError(t, err)
	assert.False(t, res.UsedFallback)
	assert.Contains(t, res.SkeletonText, "func main()")
	assert.NotContains(t, res.SkeletonText, "fmt.Println")
	assert.Greater(t, res.EstimatedTokens, 0)
	assert.Equal(t, 1, res.DefinitionCount)
}

func TestSkeletonize_UnsupportedExtensionUsesFallback(t *testing.T) {
	s := New(4)
	src := []byte("fn add(a, b) {\n    return a + b;\n}\n")
	file := scanner.File{Path: "script.zig", LanguageTag: ""}

	res, err := s.Skeletonize(context.Background(), file, src)
	require.NoError(t, err)
	assert.True(t, res.UsedFallback)
	assert.Contains(t, res.SkeletonText, "fn add(a, b) {")
}

func TestSkeletonize_Idempotent(t *testing.T) {
	s := New(4)
	src := []byte("package main\n\nfunc main() {\n\tprintln(\"x\")\n}\n")
	file := scanner.File{Path: "main.go", LanguageTag: "go"}

	first, err := s.Skeletonize(context.Background(), file, src)
	require.NoError(t, err)

	second, err := s.Skeletonize(context.Background(), file, []byte(first.SkeletonText))
	require.NoError(t, err)

	assert.Equal(t, first.SkeletonText, second.SkeletonText)
}

func TestEstimateTokens_CeilsCharCount(t *testing.T) {
	assert.Equal(t, 3, EstimateTokens("abcdefghij", 4))
	assert.Equal(t, 0, EstimateTokens("", 4))
}

func TestNew_NonPositiveCharsPerTokenDefaultsToFour(t *testing.T) {
	s := New(0)
	assert.Equal(t, 4, s.CharsPerToken)
}
