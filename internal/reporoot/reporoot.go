// Package reporoot resolves the Repo Root: the absolute directory all
// other operations normalize paths against. Resolution follows a fixed
// priority chain; the first non-empty candidate wins.
package reporoot

import (
	"os"
	"path/filepath"

	"github.com/cortexast/cortexast/internal/cerrors"
)

// markerFiles are checked, in order, by the find-up heuristic.
var markerFiles = []string{".git", "Cargo.toml", "package.json", "pyproject.toml"}

// InitializeParams mirrors the subset of an MCP initialize request this
// package reads to resolve a workspace root.
type InitializeParams struct {
	RootURI          string
	RootPath         string
	WorkspaceFolders []string // first entry's URI/path, if any
}

// Request carries every candidate source for the priority chain. Fields
// left empty are simply skipped.
type Request struct {
	PerCallRepoPath string
	Initialize      *InitializeParams
	CLIFlag         string
	EnvVar          string // value of CORTEXAST_ROOT, pre-read by the caller
	FindUpFrom      string // the tool's path/target_dir/target argument
}

// Resolve walks a five-step priority chain (per-call path, initialize
// params, CLI flag then CORTEXAST_ROOT, find-up from FindUpFrom, cwd) and
// returns an absolute directory. IDE environment variables (VS Code,
// IntelliJ, PWD/INIT_CWD) are not consulted. Step 5 (cwd) is rejected with a ConfigError when
// it equals $HOME or the OS root, since operating CortexAST there would
// silently scan the user's entire home directory or filesystem.
func Resolve(req Request) (string, error) {
	if req.PerCallRepoPath != "" {
		return absDir(req.PerCallRepoPath)
	}

	if req.Initialize != nil {
		if p := initializeRoot(req.Initialize); p != "" {
			return absDir(p)
		}
	}

	if req.CLIFlag != "" {
		return absDir(req.CLIFlag)
	}
	if req.EnvVar != "" {
		return absDir(req.EnvVar)
	}

	if req.FindUpFrom != "" {
		if root := findUp(req.FindUpFrom); root != "" {
			return absDir(root)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", cerrors.ConfigError("resolve current working directory", err)
	}
	if rejected(cwd) {
		return "", cerrors.ConfigError("refusing to use $HOME or filesystem root as repo root; pass --root or repoPath explicitly", nil)
	}
	return absDir(cwd)
}

func initializeRoot(p *InitializeParams) string {
	if p.RootURI != "" {
		return stripFileScheme(p.RootURI)
	}
	if p.RootPath != "" {
		return p.RootPath
	}
	if len(p.WorkspaceFolders) > 0 {
		return stripFileScheme(p.WorkspaceFolders[0])
	}
	return ""
}

func stripFileScheme(uri string) string {
	const scheme = "file://"
	if len(uri) > len(scheme) && uri[:len(scheme)] == scheme {
		return uri[len(scheme):]
	}
	return uri
}

// findUp walks ancestors of start, returning the first directory
// containing a recognized project marker file.
func findUp(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	current := abs
	for {
		for _, marker := range markerFiles {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

func rejected(dir string) bool {
	home, err := os.UserHomeDir()
	if err == nil && samePath(dir, home) {
		return true
	}
	return samePath(dir, filepath.Dir(dir)) // dir is its own parent: filesystem root
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return filepath.Clean(absA) == filepath.Clean(absB)
}

func absDir(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", cerrors.ConfigError("resolve repo root path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", cerrors.ConfigError("repo root does not exist: "+abs, err)
	}
	if !info.IsDir() {
		return "", cerrors.ConfigError("repo root is not a directory: "+abs, nil)
	}
	return abs, nil
}
