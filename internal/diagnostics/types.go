// Package diagnostics shells out to the repo's own type-checker (cargo
// check for Rust, tsc for TypeScript) and parses its structured output
// into file:line-pinned diagnostics, each carrying one line of source
// context pulled straight off disk.
package diagnostics

import (
	"context"
	"os/exec"
)

// ProjectType is the auto-detected toolchain a repo uses.
type ProjectType string

const (
	ProjectRust       ProjectType = "rust"
	ProjectTypeScript ProjectType = "typescript"
	ProjectUnknown    ProjectType = ""
)

// Severity mirrors the compiler's own error/warning distinction.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one compiler-reported problem, pinned to a location with
// a line of surrounding source for context.
type Diagnostic struct {
	Path          string
	Line          int
	Column        int
	Severity      Severity
	Message       string
	SourceContext string
}

// Result is the outcome of one diagnostics run.
type Result struct {
	ProjectType ProjectType
	Diagnostics []Diagnostic
	RawOutput   string
}

// execCommand and lookPath are package-level seams a test can override to avoid
// invoking a real toolchain, the same pattern the teacher's OllamaManager
// uses for its own external-process checks.
// commandFunc matches exec.CommandContext's signature so tests can swap it
// for a fake without touching a real toolchain.
type commandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

var (
	execCommand commandFunc = exec.CommandContext
	lookPath                = exec.LookPath
)
