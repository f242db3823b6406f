package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByExtension_KnownLanguages(t *testing.T) {
	r := NewRegistry()
	cases := map[string]string{
		".go":    "go",
		".ts":    "typescript",
		".tsx":   "tsx",
		".js":    "javascript",
		".jsx":   "jsx",
		".py":    "python",
		".rs":    "rust",
		".proto": "protobuf",
	}
	for ext, want := range cases {
		cfg, ok := r.ByExtension(ext)
		require.True(t, ok, "extension %s should resolve", ext)
		assert.Equal(t, want, cfg.Name)
	}
}

func TestByExtension_UnknownReturnsFalse(t *testing.T) {
	r := NewRegistry()
	_, ok := r.ByExtension(".rb")
	assert.False(t, ok)
}

func TestByExtension_NormalizesMissingDot(t *testing.T) {
	r := NewRegistry()
	cfg, ok := r.ByExtension("go")
	require.True(t, ok)
	assert.Equal(t, "go", cfg.Name)
}

func TestLanguageForPath_ResolvesByExtension(t *testing.T) {
	assert.Equal(t, "go", LanguageForPath("internal/driver/registry.go"))
	assert.Equal(t, "rust", LanguageForPath("src/main.rs"))
	assert.Equal(t, "", LanguageForPath("README.md"))
}

func TestTreeSitterLanguage_ReturnsGrammarForRegisteredName(t *testing.T) {
	r := NewRegistry()
	lang, ok := r.TreeSitterLanguage("python")
	require.True(t, ok)
	assert.NotNil(t, lang)
}
