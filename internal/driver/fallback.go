package driver

import (
	"regexp"
	"strings"
)

// definitionLikePattern matches lines that look like a top-level
// declaration in most C-family, scripting, or config languages: a
// contiguous keyword/identifier run followed eventually by "(" or "{" or
// ":" before end of line, with no leading whitespace deeper than one
// indent level. This is deliberately coarse; it has no grammar behind it.
var definitionLikePattern = regexp.MustCompile(
	`^\s{0,4}(func|function|def|class|struct|interface|trait|impl|enum|type|const|var|let|fn|public|private|protected|export|message|service)\b.*[({:]\s*$`,
)

// FallbackDriver handles extensions the registry does not recognize but
// whose content is plausibly source code (the scanner itself records such
// files with the unsupported_extension skip reason). It never parses:
// ExtractDefinitions and ExtractUsages are empty, and Skeletonize falls
// back to a line-pattern heuristic instead of an AST.
type FallbackDriver struct{}

// NewFallbackDriver constructs the heuristic driver.
func NewFallbackDriver() *FallbackDriver {
	return &FallbackDriver{}
}

// ExtractDefinitions always returns empty: without a grammar there is no
// reliable byte range for a symbol.
func (f *FallbackDriver) ExtractDefinitions(source []byte, path string) []Symbol {
	return []Symbol{}
}

// ExtractUsages always returns empty for the same reason.
func (f *FallbackDriver) ExtractUsages(source []byte, path, name string) []Usage {
	return []Usage{}
}

// Skeletonize keeps every line that looks definition-shaped and collapses
// everything else into run-length placeholders, so a caller still gets a
// compact silhouette of the file instead of either the full text or
// nothing at all.
func (f *FallbackDriver) Skeletonize(source []byte, path string) string {
	lines := strings.Split(string(source), "\n")
	var out strings.Builder
	skipped := 0
	flushSkipped := func() {
		if skipped > 0 {
			out.WriteString("// ...\n")
			skipped = 0
		}
	}
	for _, line := range lines {
		if definitionLikePattern.MatchString(line) {
			flushSkipped()
			out.WriteString(strings.TrimRight(line, " \t"))
			out.WriteString("\n")
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		skipped++
	}
	flushSkipped()
	return out.String()
}
