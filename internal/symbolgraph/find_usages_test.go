package symbolgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindUsages_GroupsByPathAndCategory(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.FindUsages(context.Background(), FindUsagesRequest{SymbolName: "Helper"})
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	require.Equal(t, "sample.go", res.Groups[0].Path)
	require.Contains(t, res.Text, "call:")
}

func TestFindUsages_NoMatchesReportsEmpty(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.FindUsages(context.Background(), FindUsagesRequest{SymbolName: "Nonexistent"})
	require.NoError(t, err)
	require.Empty(t, res.Groups)
	require.Contains(t, res.Text, "no usages found")
}
