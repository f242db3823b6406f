package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cortexast/cortexast/internal/config"
	"github.com/cortexast/cortexast/internal/reporoot"
	"github.com/cortexast/cortexast/internal/symbolgraph"
	"github.com/cortexast/cortexast/internal/vectorstore"
)

// sliceMeta is the .meta.json sibling written next to active_context.xml.
type sliceMeta struct {
	Target          string `json:"target"`
	Query           string `json:"query,omitempty"`
	IncludedFiles   int    `json:"included_files"`
	EstimatedTokens int    `json:"estimated_tokens"`
	BudgetTruncated bool   `json:"budget_truncated"`
	GeneratedAt     string `json:"generated_at"`
}

func newSliceCmd() *cobra.Command {
	var query string
	var budgetTokens int
	var queryLimit int
	var skeletonOnly bool

	cmd := &cobra.Command{
		Use:   "slice [target]",
		Short: "Write a one-shot AST slice of the repo to disk",
		Long:  `Resolve the repo root, render a deep_slice XML document for target, and write it to <output_dir>/active_context.xml with a .meta.json sibling describing what was included.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			return runSlice(cmd.Context(), target, query, budgetTokens, queryLimit, skeletonOnly)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "natural-language query ranking file inclusion order")
	cmd.Flags().IntVar(&budgetTokens, "budget-tokens", symbolgraph.DefaultBudgetTokens, "token budget for the slice")
	cmd.Flags().IntVar(&queryLimit, "query-limit", 0, "max vector store results considered when query is set")
	cmd.Flags().BoolVar(&skeletonOnly, "skeleton-only", false, "force skeletonization of every included file regardless of config")

	return cmd
}

func runSlice(ctx context.Context, target string, query string, budgetTokens, queryLimit int, skeletonOnly bool) error {
	root, err := reporoot.Resolve(reporoot.Request{
		CLIFlag:    rootFlag,
		EnvVar:     os.Getenv("CORTEXAST_ROOT"),
		FindUpFrom: target,
	})
	if err != nil {
		return fmt.Errorf("resolve repo root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine := symbolgraph.NewEngineWithConfig(root, symbolgraph.EngineConfig{
		CharsPerToken:     cfg.TokenEstim.CharsPerToken,
		ExcludeDirNames:   cfg.Scan.ExcludeDirNames,
		IncludeSubmodules: cfg.Scan.IncludeSubmodules,
		MaxFileBytes:      cfg.TokenEstim.MaxFileBytes,
	})

	var store *vectorstore.Store
	if query != "" {
		store = vectorstore.New(vectorstore.Config{
			OutputDir:         filepath.Join(root, cfg.OutputDir),
			ChunkLines:        cfg.VectorSearch.ChunkLines,
			DefaultQueryLimit: cfg.VectorSearch.DefaultQueryLimit,
			CharsPerToken:     cfg.TokenEstim.CharsPerToken,
			Embedder:          vectorstore.NewStaticEmbedder(),
		})
	}

	res, err := engine.DeepSlice(ctx, store, symbolgraph.DeepSliceRequest{
		Target:       target,
		Query:        query,
		BudgetTokens: budgetTokens,
		QueryLimit:   queryLimit,
		SkeletonOnly: skeletonOnly,
		SkeletonMode: cfg.SkeletonMode,
	})
	if err != nil {
		return fmt.Errorf("build slice: %w", err)
	}

	outputDir := filepath.Join(root, cfg.OutputDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	xmlPath := filepath.Join(outputDir, "active_context.xml")
	if err := os.WriteFile(xmlPath, []byte(res.XML), 0o644); err != nil {
		return fmt.Errorf("write active_context.xml: %w", err)
	}

	meta := sliceMeta{
		Target:          target,
		Query:           query,
		IncludedFiles:   res.IncludedFiles,
		EstimatedTokens: res.EstimatedTokens,
		BudgetTruncated: res.Truncated,
		GeneratedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal slice metadata: %w", err)
	}
	metaPath := filepath.Join(outputDir, "active_context.meta.json")
	if err := os.WriteFile(metaPath, metaJSON, 0o644); err != nil {
		return fmt.Errorf("write active_context.meta.json: %w", err)
	}

	fmt.Printf("wrote %s (%d files, ~%d tokens)\n", xmlPath, res.IncludedFiles, res.EstimatedTokens)
	return nil
}
