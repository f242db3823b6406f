package vectorstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// writerLock is the advisory single-writer guard over db/index.json,
// preventing two concurrent CortexAST processes from racing a
// refresh-and-rewrite of the same repo's index.
type writerLock struct {
	path string
	fl   *flock.Flock
}

func newWriterLock(outputDir string) *writerLock {
	path := filepath.Join(outputDir, ".index.lock")
	return &writerLock{path: path, fl: flock.New(path)}
}

func (l *writerLock) Lock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("acquire index lock: %w", err)
	}
	return nil
}

func (l *writerLock) Unlock() error {
	return l.fl.Unlock()
}
