package diagnostics

import (
	"os"
	"path/filepath"
)

// DetectProjectType inspects repoRoot's manifest files to decide which
// type-checker to invoke. Rust wins over TypeScript when both are present,
// since a Cargo.toml is the stronger signal of the project's primary
// language in a polyglot repo.
func DetectProjectType(repoRoot string) ProjectType {
	if fileExists(filepath.Join(repoRoot, "Cargo.toml")) {
		return ProjectRust
	}
	if fileExists(filepath.Join(repoRoot, "package.json")) && fileExists(filepath.Join(repoRoot, "tsconfig.json")) {
		return ProjectTypeScript
	}
	return ProjectUnknown
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
