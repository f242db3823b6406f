package diagnostics

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"strconv"
	"strings"
)

// tscLinePattern matches tsc --noEmit's line-oriented output:
//
//	src/foo.ts(12,5): error TS2322: Type 'string' is not assignable to type 'number'.
var tscLinePattern = regexp.MustCompile(`^(.+?)\((\d+),(\d+)\): (error|warning) (TS\d+): (.+)$`)

func runTsc(ctx context.Context, repoRoot string) (Result, error) {
	cmd := execCommand(ctx, "tsc", "--noEmit")
	cmd.Dir = repoRoot
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &bytes.Buffer{}
	// tsc exits non-zero when it reports errors, same as cargo check.
	_ = cmd.Run()

	diags := parseTscOutput(stdout.String(), repoRoot)
	return Result{ProjectType: ProjectTypeScript, Diagnostics: diags, RawOutput: stdout.String()}, nil
}

func parseTscOutput(output, repoRoot string) []Diagnostic {
	var diags []Diagnostic
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		m := tscLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path, lineNo, col, level, code, message := m[1], m[2], m[3], m[4], m[5], m[6]
		lineNum, err := strconv.Atoi(lineNo)
		if err != nil {
			continue
		}
		colNum, err := strconv.Atoi(col)
		if err != nil {
			continue
		}
		sev := SeverityWarning
		if level == "error" {
			sev = SeverityError
		}
		diags = append(diags, Diagnostic{
			Path:          path,
			Line:          lineNum,
			Column:        colNum,
			Severity:      sev,
			Message:       code + ": " + message,
			SourceContext: sourceContextLine(repoRoot, path, lineNum),
		})
	}
	return diags
}
