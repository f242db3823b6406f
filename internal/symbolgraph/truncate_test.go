package symbolgraph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruncate_NoOpWhenUnderLimit(t *testing.T) {
	text, truncated := Truncate("hello", 100)
	require.False(t, truncated)
	require.Equal(t, "hello", text)
}

func TestTruncate_NoOpWhenMaxCharsNonPositive(t *testing.T) {
	text, truncated := Truncate("hello", 0)
	require.False(t, truncated)
	require.Equal(t, "hello", text)
}

func TestTruncate_ClipsAndAppendsMarker(t *testing.T) {
	text, truncated := Truncate(strings.Repeat("a", 100), 10)
	require.True(t, truncated)
	require.True(t, strings.HasPrefix(text, strings.Repeat("a", 10)))
	require.True(t, strings.HasSuffix(text, TruncationMarker))
}

func TestTruncate_BacksOffToRuneBoundary(t *testing.T) {
	text, truncated := Truncate("a日本語", 2)
	require.True(t, truncated)
	require.True(t, strings.HasPrefix(text, "a"))
}
