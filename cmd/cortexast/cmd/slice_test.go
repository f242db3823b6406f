package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sliceSampleGo = `package sample

func Helper() int {
	return 1
}
`

func TestRunSlice_WritesXMLAndMetaSidecar(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sample.go"), []byte(sliceSampleGo), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module sample\n\ngo 1.25\n"), 0o644))

	oldRoot := rootFlag
	rootFlag = dir
	defer func() { rootFlag = oldRoot }()

	err := runSlice(context.Background(), ".", "", 32000, 0, false)
	require.NoError(t, err)

	xmlPath := filepath.Join(dir, ".cortexast", "active_context.xml")
	xmlData, err := os.ReadFile(xmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(xmlData), "<slice>")

	metaPath := filepath.Join(dir, ".cortexast", "active_context.meta.json")
	metaData, err := os.ReadFile(metaPath)
	require.NoError(t, err)

	var meta sliceMeta
	require.NoError(t, json.Unmarshal(metaData, &meta))
	assert.Equal(t, ".", meta.Target)
	assert.NotEmpty(t, meta.GeneratedAt)
}
