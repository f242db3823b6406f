package chronos

import (
	"context"
	"fmt"
	"strings"

	"github.com/cortexast/cortexast/internal/cerrors"
)

// DiffKind classifies one line of a structural diff.
type DiffKind string

const (
	DiffSame    DiffKind = "same"
	DiffAdded   DiffKind = "added"   // present only in tag B
	DiffRemoved DiffKind = "removed" // present only in tag A
)

// DiffLine is one aligned line of a structural comparison.
type DiffLine struct {
	Kind DiffKind
	A    string
	B    string
}

// CompareResult is a side-by-side structural diff between two tags.
type CompareResult struct {
	SymbolName string
	TagA       string
	TagB       string
	Lines      []DiffLine
	NoChange   bool
}

// CompareRequest is the input to Compare.
type CompareRequest struct {
	SymbolName string
	TagA       string
	TagB       string
	Namespace  string
	Path       string // required when TagB == LiveTag
}

// Compare loads the checkpoint for (symbolName, tagA) and either a saved
// checkpoint for tagB or, when tagB is LiveTag, a fresh extraction from
// Path, and diffs them structurally: equality is judged on whitespace-
// normalized lines, so reformatting alone never registers as a change.
func (s *Store) Compare(ctx context.Context, req CompareRequest) (CompareResult, error) {
	namespace := req.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	a, err := s.loadCheckpoint(namespace, req.SymbolName, req.TagA)
	if err != nil {
		return CompareResult{}, err
	}

	var b Checkpoint
	if req.TagB == LiveTag {
		if req.Path == "" {
			return CompareResult{}, cerrors.InvalidAction("path is required when tag_b is __live__", nil)
		}
		b, err = s.extract(ctx, req.Path, req.SymbolName, namespace, LiveTag, "")
		if err != nil {
			return CompareResult{}, err
		}
	} else {
		b, err = s.loadCheckpoint(namespace, req.SymbolName, req.TagB)
		if err != nil {
			return CompareResult{}, err
		}
	}

	lines := diffLines(splitNonEmptyLines(a.SkeletonText), splitNonEmptyLines(b.SkeletonText))
	noChange := a.StructuralHash == b.StructuralHash
	return CompareResult{SymbolName: req.SymbolName, TagA: req.TagA, TagB: req.TagB, Lines: lines, NoChange: noChange}, nil
}

// Render renders a CompareResult as the side-by-side text block the tool
// surface returns.
func (r CompareResult) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "structural compare of %s: %s vs %s\n\n", r.SymbolName, r.TagA, r.TagB)
	if r.NoChange {
		b.WriteString("no structural change\n")
		return b.String()
	}
	for _, l := range r.Lines {
		switch l.Kind {
		case DiffSame:
			fmt.Fprintf(&b, "  %-40s | %-40s\n", l.A, l.B)
		case DiffRemoved:
			fmt.Fprintf(&b, "- %-40s | %-40s\n", l.A, "")
		case DiffAdded:
			fmt.Fprintf(&b, "+ %-40s | %-40s\n", "", l.B)
		}
	}
	return b.String()
}

func splitNonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		n := normalizeLine(line)
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

// diffLines is a classic O(n*m) longest-common-subsequence diff over
// already-normalized lines, small enough for checkpoint-sized inputs.
func diffLines(a, b []string) []DiffLine {
	n, m := len(a), len(b)
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var out []DiffLine
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			out = append(out, DiffLine{Kind: DiffSame, A: a[i], B: b[j]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, DiffLine{Kind: DiffRemoved, A: a[i]})
			i++
		default:
			out = append(out, DiffLine{Kind: DiffAdded, B: b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		out = append(out, DiffLine{Kind: DiffRemoved, A: a[i]})
	}
	for ; j < m; j++ {
		out = append(out, DiffLine{Kind: DiffAdded, B: b[j]})
	}
	return out
}
