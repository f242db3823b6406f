// Package symbolgraph implements the seven engine operations the tool
// surface serves: map overview, deep slice, read source, find usages,
// find implementations, blast radius, and propagation checklist. Each
// operation is a pure function over the Scanner, Language Driver
// Registry, and Vector Store as collaborators — no hidden mutable state
// beyond the on-disk index directory spec.md §5 already accounts for.
package symbolgraph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/cortexast/cortexast/internal/cerrors"
	"github.com/cortexast/cortexast/internal/driver"
	"github.com/cortexast/cortexast/internal/scanner"
)

// Engine bundles the collaborators every operation needs. One Engine is
// constructed per tool call.
type Engine struct {
	RepoRoot          string
	Scanner           *scanner.Scanner
	CharsPerToken     int
	ExcludeDirNames   []string
	IncludeSubmodules bool
	MaxFileBytes      int64
}

// EngineConfig carries the scan-affecting config.Config fields NewEngine
// can't express as bare parameters without breaking every existing call
// site.
type EngineConfig struct {
	CharsPerToken     int
	ExcludeDirNames   []string
	IncludeSubmodules bool
	MaxFileBytes      int64
}

// NewEngine constructs an Engine rooted at repoRoot with scanner defaults;
// callers that have a loaded config.Config should use NewEngineWithConfig
// instead so exclude_dir_names/include_submodules/max_file_bytes reach the
// scanner.
func NewEngine(repoRoot string, charsPerToken int) *Engine {
	return NewEngineWithConfig(repoRoot, EngineConfig{CharsPerToken: charsPerToken})
}

// NewEngineWithConfig constructs an Engine carrying the full scan config.
func NewEngineWithConfig(repoRoot string, cfg EngineConfig) *Engine {
	if cfg.CharsPerToken <= 0 {
		cfg.CharsPerToken = 4
	}
	return &Engine{
		RepoRoot:          repoRoot,
		Scanner:           scanner.New(),
		CharsPerToken:     cfg.CharsPerToken,
		ExcludeDirNames:   cfg.ExcludeDirNames,
		IncludeSubmodules: cfg.IncludeSubmodules,
		MaxFileBytes:      cfg.MaxFileBytes,
	}
}

// enumerate walks targetDir (relative to RepoRoot, "" meaning the root
// itself) and returns parseable File Records, deterministically sorted.
func (e *Engine) enumerate(ctx context.Context, targetDir string, ignoreGitignore bool) ([]scanner.File, error) {
	files, err := e.Scanner.Walk(ctx, scanner.Options{
		RootDir:           e.RepoRoot,
		TargetPath:        targetDir,
		IgnoreGitignore:   ignoreGitignore,
		ExcludeDirNames:   e.ExcludeDirNames,
		IncludeSubmodules: e.IncludeSubmodules,
		MaxFileBytes:      e.MaxFileBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate files: %w", err)
	}
	return files, nil
}

// parsedFile is one file's parse result, computed off the worker pool.
type parsedFile struct {
	File scanner.File
	Tree *driver.Tree
	Data []byte
}

// parseAll parses every file in files concurrently, bounded by the host's
// CPU count, each worker goroutine driving its own driver.Driver instance
// through readAndParse (parsers are never shared across goroutines).
// Results preserve the input order regardless of completion order, so
// callers can render output deterministically.
func (e *Engine) parseAll(ctx context.Context, files []scanner.File) []parsedFile {
	results := make([]parsedFile, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, f := range files {
		i, f := i, f
		if !f.Parseable() {
			results[i] = parsedFile{File: f}
			continue
		}
		g.Go(func() error {
			tree, data, err := e.readAndParse(gctx, f)
			if err != nil {
				results[i] = parsedFile{File: f}
				return nil
			}
			results[i] = parsedFile{File: f, Tree: tree, Data: data}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// readAndParse reads a file's bytes and parses it with its registered
// driver. Returns a nil tree (not an error) when the language has no
// driver or the file is unparseable; callers treat that as "skip."
func (e *Engine) readAndParse(ctx context.Context, f scanner.File) (*driver.Tree, []byte, error) {
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", f.Path, err)
	}
	if f.LanguageTag == "" {
		return nil, data, nil
	}
	d, err := driver.New(f.LanguageTag)
	if err != nil {
		return nil, data, nil
	}
	defer d.Close()
	tree, err := d.Parse(ctx, data)
	if err != nil {
		return nil, data, nil
	}
	return tree, data, nil
}

// topLevelEntries lists up to n immediate children of dir, for
// did-you-mean diagnostics when a target path doesn't exist.
func topLevelEntries(dir string, n int) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// pathExists reports whether repo-relative or absolute target exists
// under repoRoot.
func pathExists(repoRoot, target string) bool {
	abs := target
	if !filepath.IsAbs(target) {
		abs = filepath.Join(repoRoot, target)
	}
	_, err := os.Stat(abs)
	return err == nil
}

// notFoundWithDidYouMean builds the structured not-found error spec.md
// §7 requires: a recovery hint plus up to 30 top-level repo-root entries.
func notFoundWithDidYouMean(repoRoot, target string) error {
	entries := topLevelEntries(repoRoot, 30)
	return cerrors.NotFound(
		fmt.Sprintf("target path not found: %s (did you mean one of: %s?)", target, strings.Join(entries, ", ")),
		nil,
	).WithSuggestion("call map_overview on the repo root to see available paths")
}

// domainGroup classifies a language tag into the ordering propagation
// checklist uses: Proto, Rust, TypeScript, Python, Other.
func domainGroup(languageTag string) string {
	switch languageTag {
	case "protobuf":
		return "Proto"
	case "rust":
		return "Rust"
	case "typescript", "tsx":
		return "TypeScript"
	case "python":
		return "Python"
	default:
		return "Other"
	}
}

var domainOrder = map[string]int{"Proto": 0, "Rust": 1, "TypeScript": 2, "Python": 3, "Other": 4}

func sortByDomainThenPath(paths []string, pathToLang map[string]string) {
	sort.Slice(paths, func(i, j int) bool {
		gi, gj := domainGroup(pathToLang[paths[i]]), domainGroup(pathToLang[paths[j]])
		if gi != gj {
			return domainOrder[gi] < domainOrder[gj]
		}
		return paths[i] < paths[j]
	})
}
