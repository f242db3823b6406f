package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_RootGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\nbuild/\n"), 0o644))

	m, err := New(dir)
	require.NoError(t, err)

	assert.True(t, m.Match("debug.log"))
	assert.True(t, m.Match(filepath.Join("build", "out.bin")))
	assert.False(t, m.Match("main.go"))
}

func TestMatch_NestedGitignore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", ".gitignore"), []byte("local.txt\n"), 0o644))

	m, err := New(dir)
	require.NoError(t, err)

	assert.True(t, m.Match(filepath.Join("sub", "local.txt")))
	assert.False(t, m.Match(filepath.Join("sub", "other.txt")))
}

func TestMatch_NoGitignoreNeverMatches(t *testing.T) {
	dir := t.TempDir()
	m, err := New(dir)
	require.NoError(t, err)
	assert.False(t, m.Match("anything.go"))
}

func TestInvalidate_ForcesRereadOfChangedGitignore(t *testing.T) {
	dir := t.TempDir()
	gitignorePath := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(gitignorePath, []byte("*.tmp\n"), 0o644))

	m, err := New(dir)
	require.NoError(t, err)
	assert.True(t, m.Match("a.tmp"))
	assert.False(t, m.Match("a.log"))

	require.NoError(t, os.WriteFile(gitignorePath, []byte("*.log\n"), 0o644))
	m.Invalidate()

	assert.True(t, m.Match("a.log"))
}
