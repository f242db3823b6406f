package symbolgraph

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapOverview_ListsSymbolsUnderThreshold(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.MapOverview(context.Background(), MapOverviewRequest{})
	require.NoError(t, err)
	require.Contains(t, res.Text, "sample.go")
	require.Contains(t, res.Text, "Helper")
	require.Contains(t, res.Text, "Greeter")
	require.False(t, res.Truncated)
}

func TestMapOverview_SearchFilterDropsNonMatching(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "a.go", "package a\n\nfunc Alpha() {}\n")
	writeRepoFile(t, root, "b.go", "package a\n\nfunc Beta() {}\n")

	e := NewEngine(root, 4)
	res, err := e.MapOverview(context.Background(), MapOverviewRequest{SearchFilter: "alpha"})
	require.NoError(t, err)
	require.Contains(t, res.Text, "a.go")
	require.NotContains(t, res.Text, "b.go")
	require.Contains(t, res.Text, "dropped by search_filter")
}

func TestMapOverview_NonexistentTargetDirReturnsNotFound(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "a.go", "package a\n")

	e := NewEngine(root, 4)
	_, err := e.MapOverview(context.Background(), MapOverviewRequest{TargetDir: "missing"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "did you mean")
}

func TestMapOverview_StrictSummaryCollapsesAboveThreshold(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < StrictSummaryThreshold+2; i++ {
		writeRepoFile(t, root, fileName(i), "package a\n\nfunc F() {}\n")
	}

	e := NewEngine(root, 4)
	res, err := e.MapOverview(context.Background(), MapOverviewRequest{})
	require.NoError(t, err)
	require.Contains(t, res.Text, "strict summary")
	require.NotContains(t, res.Text, "## ")
}

func TestMapOverview_MaxCharsTruncates(t *testing.T) {
	root := t.TempDir()
	writeRepoFile(t, root, "sample.go", goSample)

	e := NewEngine(root, 4)
	res, err := e.MapOverview(context.Background(), MapOverviewRequest{MaxChars: 10})
	require.NoError(t, err)
	require.True(t, res.Truncated)
	require.True(t, strings.HasSuffix(res.Text, TruncationMarker))
}

func fileName(i int) string {
	return "pkg" + strconv.Itoa(i) + "/f.go"
}
