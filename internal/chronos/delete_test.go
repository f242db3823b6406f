package chronos

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDelete_NamespacePurgeRemovesAllAndListOmitsThem(t *testing.T) {
	root := t.TempDir()
	writeChronosFile(t, root, "sample.go", chronosGoSample)
	out := filepath.Join(root, ".cortexast")
	s := New(root, out)

	for _, tag := range []string{"a", "b", "c"} {
		_, err := s.Save(context.Background(), SaveRequest{Path: "sample.go", SymbolName: "Helper", SemanticTag: tag, Namespace: "qa-1"})
		require.NoError(t, err)
	}

	res, err := s.Delete(DeleteRequest{Namespace: "qa-1"})
	require.NoError(t, err)
	require.Equal(t, 3, res.DeletedCount)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDelete_NonexistentNamespaceReturnsSelfTeachingError(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, ".cortexast")
	s := New(root, out)

	_, err := s.Delete(DeleteRequest{Namespace: "ghost"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "namespace")
	require.Contains(t, err.Error(), "semantic_tag")
}

func TestDelete_FilteredDeleteFallsBackToLegacyDir(t *testing.T) {
	root := t.TempDir()
	out := filepath.Join(root, ".cortexast")
	s := New(root, out)

	require.NoError(t, os.MkdirAll(filepath.Join(out, "checkpoints", DefaultNamespace), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(out, "checkpoints"), 0o755))

	legacy := Checkpoint{Namespace: DefaultNamespace, SymbolName: "Legacy", SemanticTag: "old", Path: "x.go"}
	legacyData, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(out, "checkpoints", "Legacy_old.json"), legacyData, 0o644))

	res, err := s.Delete(DeleteRequest{SymbolName: "Legacy"})
	require.NoError(t, err)
	require.Equal(t, 1, res.DeletedCount)
	require.True(t, res.UsedLegacy)
}

func TestDelete_FilteredDeleteByTagWithinNamespace(t *testing.T) {
	root := t.TempDir()
	writeChronosFile(t, root, "sample.go", chronosGoSample)
	out := filepath.Join(root, ".cortexast")
	s := New(root, out)

	_, err := s.Save(context.Background(), SaveRequest{Path: "sample.go", SymbolName: "Helper", SemanticTag: "keep"})
	require.NoError(t, err)
	_, err = s.Save(context.Background(), SaveRequest{Path: "sample.go", SymbolName: "Helper", SemanticTag: "drop"})
	require.NoError(t, err)

	res, err := s.Delete(DeleteRequest{SemanticTag: "drop"})
	require.NoError(t, err)
	require.Equal(t, 1, res.DeletedCount)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "keep", list[0].SemanticTag)
}
