package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tscSample = `Version 5.4.5
src/foo.ts(12,5): error TS2322: Type 'string' is not assignable to type 'number'.
src/bar.ts(3,1): warning TS6133: 'x' is declared but its value is never read.
not a diagnostic line
Found 2 errors.
`

func TestParseTscOutput_ExtractsErrorsAndWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "foo.ts", "let a = 1\nlet b = 2\nlet c = 3\n")

	diags := parseTscOutput(tscSample, dir)
	require.Len(t, diags, 2)

	assert.Equal(t, "src/foo.ts", diags[0].Path)
	assert.Equal(t, 12, diags[0].Line)
	assert.Equal(t, 5, diags[0].Column)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Contains(t, diags[0].Message, "TS2322")
	assert.Contains(t, diags[0].Message, "not assignable")

	assert.Equal(t, SeverityWarning, diags[1].Severity)
	assert.Equal(t, 3, diags[1].Line)
}

func TestParseTscOutput_IgnoresNonDiagnosticLines(t *testing.T) {
	diags := parseTscOutput("Version 5.4.5\nFound 2 errors.\n", t.TempDir())
	assert.Empty(t, diags)
}
