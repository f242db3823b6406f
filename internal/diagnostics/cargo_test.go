package diagnostics

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cargoSample = `{"reason":"compiler-artifact"}
{"reason":"compiler-message","message":{"level":"error","message":"mismatched types","spans":[{"file_name":"src/lib.rs","line_start":12,"column_start":5,"is_primary":true}]}}
{"reason":"compiler-message","message":{"level":"warning","message":"unused variable","spans":[{"file_name":"src/lib.rs","line_start":3,"column_start":9,"is_primary":true}]}}
{"reason":"compiler-message","message":{"level":"note","message":"ignored note","spans":[{"file_name":"src/lib.rs","line_start":1,"column_start":1,"is_primary":true}]}}
not json at all
`

func TestParseCargoOutput_ExtractsErrorsAndWarnings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", "fn main() {}\n")

	diags := parseCargoOutput(cargoSample, dir)
	require.Len(t, diags, 2)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "src/lib.rs", diags[0].Path)
	assert.Equal(t, 12, diags[0].Line)
	assert.Equal(t, 5, diags[0].Column)
	assert.Equal(t, "mismatched types", diags[0].Message)

	assert.Equal(t, SeverityWarning, diags[1].Severity)
}

func TestParseCargoOutput_SkipsMessagesWithoutPrimarySpan(t *testing.T) {
	const noSpan = `{"reason":"compiler-message","message":{"level":"error","message":"broken","spans":[]}}`
	diags := parseCargoOutput(noSpan, t.TempDir())
	assert.Empty(t, diags)
}

func TestParseCargoOutput_AttachesSourceContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.rs", "line one\nline two\nline three\n")
	sample := `{"reason":"compiler-message","message":{"level":"error","message":"x","spans":[{"file_name":"lib.rs","line_start":2,"column_start":1,"is_primary":true}]}}`

	diags := parseCargoOutput(sample, dir)
	require.Len(t, diags, 1)
	assert.Equal(t, "line two", diags[0].SourceContext)
	assert.Equal(t, filepath.Join(dir, "lib.rs"), filepath.Join(dir, diags[0].Path))
}
