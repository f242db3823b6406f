package scanner

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/cortexast/cortexast/internal/contenthash"
	"github.com/cortexast/cortexast/internal/driver"
	"github.com/cortexast/cortexast/internal/ignore"
)

// defaultExcludeDirNames are pruned unconditionally, the high-noise
// directories that accumulate in any repo regardless of .gitignore.
var defaultExcludeDirNames = []string{
	"node_modules", ".git", "vendor", "__pycache__", "dist", "build",
	".venv", "venv", "target", ".cortexast",
}

// Scanner discovers File Records under a repo root.
type Scanner struct {
	ignoreCache map[string]*ignore.Matcher
}

// New creates a Scanner.
func New() *Scanner {
	return &Scanner{ignoreCache: make(map[string]*ignore.Matcher)}
}

// candidate is a file the directory walk accepted; everything past this
// point (read, classify, hash) runs off the worker pool.
type candidate struct {
	relPath string
	absPath string
	info    fs.FileInfo
}

// Walk performs a recursive walk from opts.RootDir/opts.TargetPath,
// returning File Records deterministically sorted by repo-relative path.
// Unreadable files are recorded with a skip reason and never abort the
// walk. Directory traversal (name-based exclusion, .gitignore pruning,
// submodule pruning) is sequential; the per-file read/classify/hash step
// fans out across a bounded worker pool, one goroutine per candidate, the
// way the teacher's driver pool never shares a parser across goroutines.
func (s *Scanner) Walk(ctx context.Context, opts Options) ([]File, error) {
	absRoot, err := filepath.Abs(opts.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = MaxFileBytes
	}

	excludeDirs := defaultExcludeDirNames
	if len(opts.ExcludeDirNames) > 0 {
		excludeDirs = append(append([]string(nil), defaultExcludeDirNames...), opts.ExcludeDirNames...)
	}

	var matcher *ignore.Matcher
	if !opts.IgnoreGitignore {
		matcher, err = ignore.New(absRoot)
		if err != nil {
			return nil, fmt.Errorf("build ignore matcher: %w", err)
		}
	}

	var submodules map[string]bool
	if !opts.IncludeSubmodules {
		submodules = submodulePaths(absRoot)
	}

	walkRoot := absRoot
	if opts.TargetPath != "" {
		walkRoot = filepath.Join(absRoot, opts.TargetPath)
	}

	var candidates []candidate
	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if walkErr != nil {
			return nil
		}

		relPath, relErr := filepath.Rel(absRoot, path)
		if relErr != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)
		if relPath == "." {
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			for _, ex := range excludeDirs {
				if name == ex {
					return filepath.SkipDir
				}
			}
			if submodules != nil && submodules[relPath] {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.Match(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if matcher != nil && matcher.Match(relPath) {
			return nil
		}

		fileInfo, statErr := d.Info()
		if statErr != nil {
			fileInfo = nil
		}
		candidates = append(candidates, candidate{relPath: relPath, absPath: path, info: fileInfo})
		return nil
	})
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}

	files := make([]File, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			select {
			case <-gctx.Done():
				files[i] = File{Path: c.relPath, AbsPath: c.absPath, SkipReason: SkipBinary}
				return nil
			default:
			}
			files[i] = classify(c, maxBytes)
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// classify reads and inspects one candidate file, producing its File
// Record. It never returns an error; an unreadable or oversized file is
// recorded with a skip reason instead.
func classify(c candidate, maxBytes int64) File {
	if c.info == nil {
		return File{Path: c.relPath, AbsPath: c.absPath, SkipReason: SkipBinary}
	}

	rec := File{
		Path:         c.relPath,
		AbsPath:      c.absPath,
		Size:         c.info.Size(),
		ModifiedTime: c.info.ModTime(),
		LanguageTag:  driver.LanguageForPath(c.relPath),
	}

	if rec.Size > maxBytes {
		rec.SkipReason = SkipTooLarge
		return rec
	}

	data, readErr := os.ReadFile(c.absPath)
	if readErr != nil {
		rec.SkipReason = SkipBinary
		return rec
	}

	if isBinary(data) {
		rec.SkipReason = SkipBinary
		return rec
	}
	if hasOverlongLine(data) {
		rec.SkipReason = SkipMinified
		return rec
	}
	if rec.LanguageTag == "" {
		rec.SkipReason = SkipUnsupportedExt
		return rec
	}

	rec.ContentHash = contenthash.Hash(data)
	return rec
}

// isBinary reports a file binary if its first 8 KiB contain a NUL byte or
// fail UTF-8 validation beyond a lossy-replacement threshold.
func isBinary(data []byte) bool {
	sample := data
	if len(sample) > 8192 {
		sample = sample[:8192]
	}
	if bytes.IndexByte(sample, 0) >= 0 {
		return true
	}
	if utf8.Valid(sample) {
		return false
	}
	// Count replacement-worthy invalid sequences; tolerate a small fraction
	// to allow the occasional legacy-encoded comment without misclassifying
	// real source files.
	invalid := 0
	for i := 0; i < len(sample); {
		r, size := utf8.DecodeRune(sample[i:])
		if r == utf8.RuneError && size == 1 {
			invalid++
		}
		i += size
	}
	return float64(invalid)/float64(len(sample)+1) > 0.01
}

// hasOverlongLine reports whether any line exceeds MaxLineChars, the
// minified-file guard.
func hasOverlongLine(data []byte) bool {
	lineLen := 0
	for _, b := range data {
		if b == '\n' {
			lineLen = 0
			continue
		}
		lineLen++
		if lineLen > MaxLineChars {
			return true
		}
	}
	return false
}

// submodulePaths parses <rootDir>/.gitmodules for the repo-relative paths
// of every declared submodule, the same section-scan the teacher's
// ParseGitmodules does, narrowed to just the path key since the walk only
// needs to know what to prune.
func submodulePaths(rootDir string) map[string]bool {
	data, err := os.ReadFile(filepath.Join(rootDir, ".gitmodules"))
	if err != nil {
		return nil
	}
	paths := make(map[string]bool)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "path") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key != "path" {
			continue
		}
		p := filepath.ToSlash(strings.TrimSpace(line[idx+1:]))
		if p != "" {
			paths[p] = true
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return paths
}

// Detect reports whether relPath is excluded purely by name-based rules,
// without touching disk; used by components that need a quick filter
// without a full walk.
func Detect(relPath string, excludeDirNames []string) bool {
	parts := strings.Split(filepath.ToSlash(relPath), "/")
	all := append(append([]string(nil), defaultExcludeDirNames...), excludeDirNames...)
	for _, p := range parts {
		for _, ex := range all {
			if p == ex {
				return true
			}
		}
	}
	return false
}
