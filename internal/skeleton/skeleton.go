// Package skeleton is the cross-language adapter that turns a File Record
// plus a parsed tree into (skeleton_text, estimated_tokens), the shared
// unit every slicing and overview operation in internal/symbolgraph
// consumes. It owns none of the per-language parsing logic itself; that
// lives in internal/driver. This package owns the token-estimation proxy
// and the idempotency/fallback contract around it.
package skeleton

import (
	"context"
	"math"

	"github.com/cortexast/cortexast/internal/driver"
	"github.com/cortexast/cortexast/internal/scanner"
)

// Result is the output of skeletonizing one file.
type Result struct {
	Path            string
	SkeletonText    string
	EstimatedTokens int
	UsedFallback    bool
	DefinitionCount int
}

// Skeletonizer holds the configured chars-per-token ratio used for the
// coarse token estimate. It is not an LLM tokenizer; spec.md is explicit
// that this proxy trades precision for zero runtime dependency on a
// tokenizer model.
type Skeletonizer struct {
	CharsPerToken int
}

// New creates a Skeletonizer. charsPerToken must be positive; callers
// validate this via internal/config before construction.
func New(charsPerToken int) *Skeletonizer {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	return &Skeletonizer{CharsPerToken: charsPerToken}
}

// Skeletonize reduces source to its skeleton text and estimates its token
// cost. When file.LanguageTag names a registered driver, the AST-based
// path runs; otherwise (no language tag, or a driver that fails to load or
// to parse) the regex-heuristic FallbackDriver runs.
// Skeletonization is idempotent: feeding the resulting skeleton text back
// through Skeletonize as source produces the same text again, since a
// skeleton contains no import blocks, no stray comments, and no bodies
// left to strip further.
func (s *Skeletonizer) Skeletonize(ctx context.Context, file scanner.File, source []byte) (Result, error) {
	if file.LanguageTag == "" {
		text := driver.NewFallbackDriver().Skeletonize(source, file.Path)
		return Result{
			Path:            file.Path,
			SkeletonText:    text,
			EstimatedTokens: s.estimate(text),
			UsedFallback:    true,
		}, nil
	}

	d, err := driver.New(file.LanguageTag)
	if err != nil {
		text := driver.NewFallbackDriver().Skeletonize(source, file.Path)
		return Result{
			Path:            file.Path,
			SkeletonText:    text,
			EstimatedTokens: s.estimate(text),
			UsedFallback:    true,
		}, nil
	}
	defer d.Close()

	tree, err := d.Parse(ctx, source)
	if err != nil {
		text := driver.NewFallbackDriver().Skeletonize(source, file.Path)
		return Result{
			Path:            file.Path,
			SkeletonText:    text,
			EstimatedTokens: s.estimate(text),
			UsedFallback:    true,
		}, nil
	}

	text := d.Skeletonize(tree, file.Path)
	defs := d.ExtractDefinitions(tree, file.Path)
	return Result{
		Path:            file.Path,
		SkeletonText:    text,
		EstimatedTokens: s.estimate(text),
		DefinitionCount: len(defs),
	}, nil
}

func (s *Skeletonizer) estimate(text string) int {
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / float64(s.CharsPerToken)))
}

// EstimateTokens is the package-level coarse estimator used anywhere a
// token count is needed for text that didn't go through Skeletonize (e.g.
// README/manifest inclusion in deep_slice).
func EstimateTokens(text string, charsPerToken int) int {
	if charsPerToken <= 0 {
		charsPerToken = 4
	}
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len(text)) / float64(charsPerToken)))
}
