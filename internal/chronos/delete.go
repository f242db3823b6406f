package chronos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cortexast/cortexast/internal/cerrors"
)

// DeleteRequest filters which checkpoints to remove. Omitting every
// filter except Namespace purges that namespace entirely.
type DeleteRequest struct {
	Namespace   string
	SymbolName  string
	SemanticTag string
	Path        string
}

// DeleteResult reports what was removed.
type DeleteResult struct {
	DeletedCount int
	UsedLegacy   bool
}

// Delete removes checkpoints matching the given filters. Omitting
// SymbolName, SemanticTag, and Path purges the whole namespace. If the
// namespace doesn't exist at all, Delete returns a self-teaching error
// distinguishing "namespace" from "tag" rather than silently succeeding.
// A filtered delete that matches nothing in the namespace directory falls
// back to the legacy flat checkpoints directory.
func (s *Store) Delete(req DeleteRequest) (DeleteResult, error) {
	namespace := req.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	nsDir := s.namespaceDir(namespace)

	if _, err := os.Stat(nsDir); os.IsNotExist(err) {
		return DeleteResult{}, cerrors.NotFound(
			fmt.Sprintf(
				"namespace %q does not exist. namespace and semantic_tag are different filters: "+
					"namespace groups checkpoints (e.g. per test run), semantic_tag labels a single checkpoint "+
					"within a namespace (e.g. \"pre\"/\"post\"). Did you mean to filter by semantic_tag instead?",
				namespace,
			), nil)
	}

	purgeAll := req.SymbolName == "" && req.SemanticTag == "" && req.Path == ""
	if purgeAll {
		entries, err := os.ReadDir(nsDir)
		if err != nil {
			return DeleteResult{}, fmt.Errorf("read namespace dir: %w", err)
		}
		n := 0
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			if err := os.Remove(filepath.Join(nsDir, e.Name())); err == nil {
				n++
			}
		}
		return DeleteResult{DeletedCount: n}, nil
	}

	n, err := s.deleteMatching(nsDir, req)
	if err != nil {
		return DeleteResult{}, err
	}
	if n > 0 {
		return DeleteResult{DeletedCount: n}, nil
	}

	legacyDir := filepath.Join(s.outputDir, "checkpoints")
	n, err = s.deleteMatchingFlat(legacyDir, req)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: n, UsedLegacy: n > 0}, nil
}

func (s *Store) deleteMatching(dir string, req DeleteRequest) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		cp, err := loadCheckpointFile(full)
		if err != nil {
			continue
		}
		if matchesFilter(cp, req) {
			if err := os.Remove(full); err == nil {
				n++
			}
		}
	}
	return n, nil
}

// deleteMatchingFlat scans the legacy directory's files directly, one
// level up from namespace subdirectories.
func (s *Store) deleteMatchingFlat(dir string, req DeleteRequest) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		full := filepath.Join(dir, e.Name())
		cp, err := loadCheckpointFile(full)
		if err != nil {
			continue
		}
		if matchesFilter(cp, req) {
			if err := os.Remove(full); err == nil {
				n++
			}
		}
	}
	return n, nil
}

func matchesFilter(cp Checkpoint, req DeleteRequest) bool {
	if req.SymbolName != "" && cp.SymbolName != req.SymbolName {
		return false
	}
	if req.SemanticTag != "" && cp.SemanticTag != req.SemanticTag {
		return false
	}
	if req.Path != "" && cp.Path != req.Path {
		return false
	}
	return true
}
