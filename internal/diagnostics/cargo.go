package diagnostics

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
)

// cargoMessage is the subset of `cargo check --message-format=json`'s
// compiler-message shape this package needs.
type cargoMessage struct {
	Reason  string `json:"reason"`
	Message struct {
		Level   string `json:"level"`
		Message string `json:"message"`
		Spans   []struct {
			FileName    string `json:"file_name"`
			LineStart   int    `json:"line_start"`
			ColumnStart int    `json:"column_start"`
			IsPrimary   bool   `json:"is_primary"`
		} `json:"spans"`
	} `json:"message"`
}

func runCargoCheck(ctx context.Context, repoRoot string) (Result, error) {
	cmd := execCommand(ctx, "cargo", "check", "--message-format=json")
	cmd.Dir = repoRoot
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &bytes.Buffer{}
	// cargo check exits non-zero when it reports errors; the JSON stream on
	// stdout is still complete and valid, so a run error here isn't fatal.
	_ = cmd.Run()

	diags := parseCargoOutput(stdout.String(), repoRoot)
	return Result{ProjectType: ProjectRust, Diagnostics: diags, RawOutput: stdout.String()}, nil
}

func parseCargoOutput(output, repoRoot string) []Diagnostic {
	var diags []Diagnostic
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var msg cargoMessage
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			continue
		}
		if msg.Reason != "compiler-message" {
			continue
		}
		if msg.Message.Level != "error" && msg.Message.Level != "warning" {
			continue
		}
		var span *struct {
			FileName    string `json:"file_name"`
			LineStart   int    `json:"line_start"`
			ColumnStart int    `json:"column_start"`
			IsPrimary   bool   `json:"is_primary"`
		}
		for i := range msg.Message.Spans {
			if msg.Message.Spans[i].IsPrimary {
				span = &msg.Message.Spans[i]
				break
			}
		}
		if span == nil {
			continue
		}
		sev := SeverityWarning
		if msg.Message.Level == "error" {
			sev = SeverityError
		}
		diags = append(diags, Diagnostic{
			Path:          span.FileName,
			Line:          span.LineStart,
			Column:        span.ColumnStart,
			Severity:      sev,
			Message:       msg.Message.Message,
			SourceContext: sourceContextLine(repoRoot, span.FileName, span.LineStart),
		})
	}
	return diags
}
