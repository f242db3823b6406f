package cortexlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_CreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig(dir)

	logger, cleanup, err := Setup(cfg)
	require.NoError(t, err)
	defer cleanup()

	logger.Info("hello", "k", "v")

	_, err = filepath.Glob(filepath.Join(dir, "logs", "server.log"))
	require.NoError(t, err)
}

func TestDebugConfig_SetsDebugLevel(t *testing.T) {
	cfg := DebugConfig(t.TempDir())
	assert.Equal(t, "debug", cfg.Level)
}

func TestParseLevel_UnknownDefaultsToInfo(t *testing.T) {
	assert.Equal(t, parseLevel("info"), parseLevel("bogus"))
}

func TestRotatingWriter_RotatesAtMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.log")

	w, err := NewRotatingWriter(path, 0, 2)
	require.NoError(t, err)
	w.maxSize = 16 // force rotation on tiny writes for the test

	_, err = w.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)
	_, err = w.Write([]byte("0123456789abcdef"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	matches, err := filepath.Glob(filepath.Join(dir, "server.log*"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(matches), 2)
}
