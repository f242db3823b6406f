package chronos

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cortexast/cortexast/internal/cerrors"
	"github.com/cortexast/cortexast/internal/driver"
)

// Store persists checkpoints under <outputDir>/checkpoints/<namespace>/.
type Store struct {
	repoRoot  string
	outputDir string
}

// New constructs a Store rooted at repoRoot, persisting under outputDir
// (typically "<repoRoot>/.cortexast").
func New(repoRoot, outputDir string) *Store {
	return &Store{repoRoot: repoRoot, outputDir: outputDir}
}

func (s *Store) namespaceDir(namespace string) string {
	return filepath.Join(s.outputDir, "checkpoints", namespace)
}

func (s *Store) checkpointPath(namespace, symbol, tag string) string {
	return filepath.Join(s.namespaceDir(namespace), fmt.Sprintf("%s_%s.json", symbol, tag))
}

// legacyPath is the flat, pre-namespace layout kept for backward
// compatibility with checkpoints written before namespaces existed.
func (s *Store) legacyPath(symbol, tag string) string {
	return filepath.Join(s.outputDir, "checkpoints", fmt.Sprintf("%s_%s.json", symbol, tag))
}

// SaveRequest is the input to Save.
type SaveRequest struct {
	Path        string
	SymbolName  string
	SemanticTag string
	Namespace   string
	SavedAt     string // caller-supplied RFC3339 timestamp; chronos never reads the clock
}

// Save extracts SymbolName from Path via its language driver, computes a
// structural hash of its AST shape, and atomically writes the checkpoint.
// Re-saving the same (namespace, symbol, tag) overwrites.
func (s *Store) Save(ctx context.Context, req SaveRequest) (Checkpoint, error) {
	namespace := req.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}

	cp, err := s.extract(ctx, req.Path, req.SymbolName, namespace, req.SemanticTag, req.SavedAt)
	if err != nil {
		return Checkpoint{}, err
	}

	dir := s.namespaceDir(namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Checkpoint{}, fmt.Errorf("create checkpoint dir: %w", err)
	}
	data, err := json.MarshalIndent(cp, "", "  ")
	if err != nil {
		return Checkpoint{}, fmt.Errorf("marshal checkpoint: %w", err)
	}
	final := s.checkpointPath(namespace, req.SymbolName, req.SemanticTag)
	tmp := final + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Checkpoint{}, fmt.Errorf("write checkpoint: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return Checkpoint{}, fmt.Errorf("commit checkpoint: %w", err)
	}
	return cp, nil
}

// extract builds a Checkpoint (without persisting it) by locating
// symbolName in path and computing its skeleton text and AST shape.
func (s *Store) extract(ctx context.Context, path, symbolName, namespace, tag, savedAt string) (Checkpoint, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.repoRoot, path)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Checkpoint{}, cerrors.NotFound(fmt.Sprintf("cannot read %s", path), err)
	}
	langTag := driver.LanguageForPath(path)
	if langTag == "" {
		return Checkpoint{}, cerrors.InvalidAction(fmt.Sprintf("no language driver for %s", path), nil)
	}
	d, err := driver.New(langTag)
	if err != nil {
		return Checkpoint{}, cerrors.InvalidAction(fmt.Sprintf("no language driver for %s", path), err)
	}
	defer d.Close()
	tree, err := d.Parse(ctx, data)
	if err != nil {
		return Checkpoint{}, cerrors.ParseFailure(fmt.Sprintf("parse failure in %s", path), err)
	}

	var target *driver.Symbol
	for _, sym := range driver.ExtractDefinitions(tree, path) {
		if sym.Name == symbolName {
			s := sym
			target = &s
			break
		}
	}
	if target == nil {
		return Checkpoint{}, cerrors.NotFound(fmt.Sprintf("symbol %s not found in %s", symbolName, path), nil)
	}

	shape := astShape(tree, target.ByteRange[0], target.ByteRange[1])
	// The symbol's exact source slice is stored as skeleton_text directly;
	// skeletonizing further would collapse the body a checkpoint exists to
	// preserve.
	skeletonText := string(data[target.ByteRange[0]:target.ByteRange[1]])

	return Checkpoint{
		Namespace:      namespace,
		SymbolName:     symbolName,
		SemanticTag:    tag,
		Path:           path,
		SavedAt:        savedAt,
		StructuralHash: structuralHash(shape),
		SkeletonText:   skeletonText,
		ASTShape:       shape,
	}, nil
}

// ListedCheckpoint is one entry of List's result.
type ListedCheckpoint struct {
	Namespace      string
	SymbolName     string
	SemanticTag    string
	SavedAt        string
	StructuralHash string // full hash; callers display a prefix
}

// List enumerates every checkpoint across all namespaces, grouped by tag.
func (s *Store) List(ctx context.Context) ([]ListedCheckpoint, error) {
	root := filepath.Join(s.outputDir, "checkpoints")
	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	var out []ListedCheckpoint
	for _, nsEntry := range entries {
		if !nsEntry.IsDir() {
			continue
		}
		nsDir := filepath.Join(root, nsEntry.Name())
		files, err := os.ReadDir(nsDir)
		if err != nil {
			continue
		}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
				continue
			}
			cp, err := loadCheckpointFile(filepath.Join(nsDir, f.Name()))
			if err != nil {
				continue
			}
			out = append(out, ListedCheckpoint{
				Namespace:      cp.Namespace,
				SymbolName:     cp.SymbolName,
				SemanticTag:    cp.SemanticTag,
				SavedAt:        cp.SavedAt,
				StructuralHash: cp.StructuralHash,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SemanticTag != out[j].SemanticTag {
			return out[i].SemanticTag < out[j].SemanticTag
		}
		if out[i].Namespace != out[j].Namespace {
			return out[i].Namespace < out[j].Namespace
		}
		return out[i].SymbolName < out[j].SymbolName
	})
	return out, nil
}

func loadCheckpointFile(path string) (Checkpoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Checkpoint{}, err
	}
	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return Checkpoint{}, err
	}
	return cp, nil
}

// loadCheckpoint loads one checkpoint by (namespace, symbol, tag), falling
// back to the legacy flat layout if the namespaced file doesn't exist.
func (s *Store) loadCheckpoint(namespace, symbol, tag string) (Checkpoint, error) {
	path := s.checkpointPath(namespace, symbol, tag)
	cp, err := loadCheckpointFile(path)
	if err == nil {
		return cp, nil
	}
	cp, legacyErr := loadCheckpointFile(s.legacyPath(symbol, tag))
	if legacyErr == nil {
		return cp, nil
	}
	return Checkpoint{}, cerrors.NotFound(fmt.Sprintf("checkpoint not found: %s/%s@%s", namespace, symbol, tag), err)
}
