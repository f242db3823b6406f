package symbolgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSource_ReturnsExactByteRange(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.ReadSource(context.Background(), ReadSourceRequest{Path: "sample.go", SymbolNames: []string{"Helper"}})
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	require.True(t, res.Symbols[0].Found)
	require.Contains(t, res.Symbols[0].Source, "return 1")
}

func TestReadSource_UnknownSymbolReportedNotFound(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.ReadSource(context.Background(), ReadSourceRequest{Path: "sample.go", SymbolNames: []string{"Nope"}})
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	require.False(t, res.Symbols[0].Found)
	require.Contains(t, res.Text, "NOT FOUND")
	require.Contains(t, res.Text, "available:")
}

func TestReadSource_EmptySymbolNamesReturnsAllDefinitions(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.ReadSource(context.Background(), ReadSourceRequest{Path: "sample.go"})
	require.NoError(t, err)
	require.Greater(t, len(res.Symbols), 1)
}

func TestReadSource_SkeletonOnlyStripsBody(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.ReadSource(context.Background(), ReadSourceRequest{Path: "sample.go", SymbolNames: []string{"Helper"}, SkeletonOnly: true})
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	require.True(t, res.Symbols[0].Found)
	require.NotContains(t, res.Symbols[0].Source, "return 1")
}

func TestReadSource_NonexistentPathReturnsNotFound(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	_, err := e.ReadSource(context.Background(), ReadSourceRequest{Path: "missing.go", SymbolNames: []string{"X"}})
	require.Error(t, err)
}
