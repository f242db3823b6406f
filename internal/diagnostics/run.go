package diagnostics

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/cortexast/cortexast/internal/cerrors"
)

// Run auto-detects the project's toolchain and shells out to it, returning
// every diagnostic the toolchain reports with source context attached.
func Run(ctx context.Context, repoRoot string) (Result, error) {
	switch DetectProjectType(repoRoot) {
	case ProjectRust:
		return runCargoCheck(ctx, repoRoot)
	case ProjectTypeScript:
		return runTsc(ctx, repoRoot)
	default:
		return Result{}, cerrors.InvalidAction("no supported project type detected (looked for Cargo.toml, or package.json with tsconfig.json)", nil)
	}
}

// sourceContextLine returns the single line of source at path:line, or an
// empty string if the file or line can't be read. path may be absolute or
// relative to repoRoot, matching how each toolchain reports it.
func sourceContextLine(repoRoot, path string, line int) string {
	if line <= 0 {
		return ""
	}
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(repoRoot, path)
	}
	f, err := os.Open(abs)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		if n == line {
			return scanner.Text()
		}
	}
	return ""
}
