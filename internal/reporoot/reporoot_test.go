package reporoot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PerCallRepoPathWins(t *testing.T) {
	dir := t.TempDir()
	root, err := Resolve(Request{PerCallRepoPath: dir, CLIFlag: "/tmp", EnvVar: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, dir), root)
}

func TestResolve_InitializeRootURIBeatsCLIFlag(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	root, err := Resolve(Request{
		Initialize: &InitializeParams{RootURI: "file://" + dir},
		CLIFlag:    other,
	})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, dir), root)
}

func TestResolve_WorkspaceFoldersFallback(t *testing.T) {
	dir := t.TempDir()
	root, err := Resolve(Request{
		Initialize: &InitializeParams{WorkspaceFolders: []string{"file://" + dir}},
	})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, dir), root)
}

func TestResolve_CLIFlagBeatsEnvVar(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	root, err := Resolve(Request{CLIFlag: dir, EnvVar: other})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, dir), root)
}

func TestResolve_FindUpLocatesGitMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	resolved, err := Resolve(Request{FindUpFrom: nested})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, root), resolved)
}

func TestResolve_FindUpLocatesCargoToml(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "Cargo.toml"), []byte("[package]\n"), 0o644))
	nested := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	resolved, err := Resolve(Request{FindUpFrom: nested})
	require.NoError(t, err)
	assert.Equal(t, mustAbs(t, root), resolved)
}

func TestResolve_RejectsNonexistentPerCallPath(t *testing.T) {
	_, err := Resolve(Request{PerCallRepoPath: "/definitely/does/not/exist/xyz"})
	assert.Error(t, err)
}

func TestResolve_RejectsHomeDirectoryAsCwdFallback(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	orig, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(orig)
	require.NoError(t, os.Chdir(home))

	_, err = Resolve(Request{})
	assert.Error(t, err)
}

func mustAbs(t *testing.T, p string) string {
	t.Helper()
	abs, err := filepath.Abs(p)
	require.NoError(t, err)
	return abs
}
