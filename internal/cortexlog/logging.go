// Package cortexlog sets up structured logging for the engine. Every log
// line is JSON via log/slog, written to a rotating file under
// <output_dir>/logs/server.log. Stdout is never used: the MCP server
// reserves stdout exclusively for JSON-RPC frames, so this package writes
// only to the log file and, optionally, stderr.
package cortexlog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// FilePath is the path to the log file.
	FilePath string
	// MaxSizeMB is the maximum size in MB before rotation.
	MaxSizeMB int
	// MaxFiles is the maximum number of rotated files to keep.
	MaxFiles int
	// WriteToStderr also mirrors log lines to stderr. Never set this true
	// for a stdio MCP session sharing the process's file descriptors with a
	// client that treats stderr as diagnostic noise only.
	WriteToStderr bool
}

// DefaultConfig returns defaults rooted at outputDir/logs/server.log.
func DefaultConfig(outputDir string) Config {
	return Config{
		Level:         "info",
		FilePath:      filepath.Join(outputDir, "logs", "server.log"),
		MaxSizeMB:     10,
		MaxFiles:      5,
		WriteToStderr: false,
	}
}

// DebugConfig returns DefaultConfig with debug-level logging enabled.
func DebugConfig(outputDir string) Config {
	cfg := DefaultConfig(outputDir)
	cfg.Level = "debug"
	return cfg
}

// Setup initializes file-based structured logging and returns a cleanup
// function that flushes and closes the log file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, err
	}

	writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
	if err != nil {
		return nil, nil, err
	}

	var output io.Writer = writer
	if cfg.WriteToStderr {
		output = io.MultiWriter(writer, os.Stderr)
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	logger := slog.New(handler)

	cleanup := func() {
		_ = writer.Sync()
		_ = writer.Close()
	}

	return logger, cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
