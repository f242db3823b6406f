package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	full := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestWalk_ReturnsSortedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", "package main\n")
	writeFile(t, root, "a.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.go", files[0].Path)
	assert.Equal(t, "b.go", files[1].Path)
}

func TestWalk_ComputesContentHashForParseableFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, files[0].Parseable())
	assert.NotEmpty(t, files[0].ContentHash)
	assert.Equal(t, "go", files[0].LanguageTag)
}

func TestWalk_SkipsTooLargeFiles(t *testing.T) {
	root := t.TempDir()
	big := strings.Repeat("a", 100)
	writeFile(t, root, "big.go", big)

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, MaxFileBytes: 10})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, SkipTooLarge, files[0].SkipReason)
	assert.False(t, files[0].Parseable())
}

func TestWalk_SkipsBinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "blob.bin", "not used for name detection")
	full := filepath.Join(root, "blob.bin")
	require.NoError(t, os.WriteFile(full, []byte{0x00, 0x01, 0x02, 'x', 'y'}, 0o644))

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, SkipBinary, files[0].SkipReason)
}

func TestWalk_SkipsMinifiedFiles(t *testing.T) {
	root := t.TempDir()
	longLine := "x" + strings.Repeat("y", MaxLineChars+1)
	writeFile(t, root, "bundle.js", longLine)

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, SkipMinified, files[0].SkipReason)
}

func TestWalk_SkipsUnsupportedExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.md", "# hello\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, SkipUnsupportedExt, files[0].SkipReason)
}

func TestWalk_PrunesDefaultExcludedDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "node_modules/pkg/index.js", "module.exports = {};\n")
	writeFile(t, root, "src/main.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/main.go", files[0].Path)
}

func TestWalk_HonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored.go\n")
	writeFile(t, root, "ignored.go", "package main\n")
	writeFile(t, root, "kept.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	require.Len(t, files, 2) // .gitignore itself (unsupported ext) + kept.go
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "kept.go")
	assert.NotContains(t, paths, "ignored.go")
}

func TestWalk_IgnoreGitignoreOptionDisablesMatching(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored.go\n")
	writeFile(t, root, "ignored.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, IgnoreGitignore: true})
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "ignored.go")
}

func TestWalk_TargetPathScopesWalk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pkg/a.go", "package pkg\n")
	writeFile(t, root, "other/b.go", "package other\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, TargetPath: "pkg"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "pkg/a.go", files[0].Path)
}

func TestDetect_MatchesDefaultExcludedDirName(t *testing.T) {
	assert.True(t, Detect("vendor/github.com/pkg/errors/errors.go", nil))
	assert.False(t, Detect("internal/driver/registry.go", nil))
}

func TestWalk_ExcludeDirNamesPrunesExtraDirs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "custom_exclude/a.go", "package a\n")
	writeFile(t, root, "src/main.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, ExcludeDirNames: []string{"custom_exclude"}})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "src/main.go", files[0].Path)
}

func TestWalk_PrunesSubmodulesByDefault(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"vendor/lib\"]\n\tpath = vendor/lib\n\turl = https://example.com/lib.git\n")
	writeFile(t, root, "vendor/lib/a.go", "package a\n")
	writeFile(t, root, "src/main.go", "package main\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root})
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "src/main.go")
	assert.NotContains(t, paths, "vendor/lib/a.go")
}

func TestWalk_IncludeSubmodulesOptionWalksSubmodulePaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitmodules", "[submodule \"vendor/lib\"]\n\tpath = vendor/lib\n")
	writeFile(t, root, "vendor/lib/a.go", "package a\n")

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, IncludeSubmodules: true})
	require.NoError(t, err)
	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Contains(t, paths, "vendor/lib/a.go")
}

func TestWalk_WorkersOptionBoundsConcurrencyWithoutChangingResults(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, root, fileNameN(i), "package main\n")
	}

	s := New()
	files, err := s.Walk(context.Background(), Options{RootDir: root, Workers: 1})
	require.NoError(t, err)
	require.Len(t, files, 10)
	for i, f := range files {
		assert.Equal(t, fileNameN(i), f.Path)
	}
}

func fileNameN(i int) string {
	return filepath.Join("pkg", string(rune('a'+i))+".go")
}

func TestWalk_RespectsContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.go", "package main\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	_, err := s.Walk(ctx, Options{RootDir: root})
	assert.Error(t, err)
}
