package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/coder/hnsw"

	"github.com/cortexast/cortexast/internal/contenthash"
	"github.com/cortexast/cortexast/internal/scanner"
	"github.com/cortexast/cortexast/internal/skeleton"
)

// Config configures a Store.
type Config struct {
	OutputDir         string
	ChunkLines        int
	Embedder          Embedder
	DefaultQueryLimit int
	CharsPerToken     int
	Logger            *slog.Logger
}

// Store is the Vector Store: a flat JSON index plus an in-memory HNSW
// graph rebuilt from it on every refresh. The JSON file under
// <output_dir>/db/index.json is the only persisted state; the graph is
// query-scoped and discarded when the Store is garbage collected.
type Store struct {
	cfg  Config
	path string
	log  *slog.Logger
}

// New creates a Store rooted at cfg.OutputDir/db/index.json.
func New(cfg Config) *Store {
	if cfg.ChunkLines <= 0 {
		cfg.ChunkLines = 40
	}
	if cfg.CharsPerToken <= 0 {
		cfg.CharsPerToken = 4
	}
	if cfg.DefaultQueryLimit <= 0 {
		cfg.DefaultQueryLimit = 20
	}
	if cfg.Embedder == nil {
		cfg.Embedder = NewStaticEmbedder()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		cfg:  cfg,
		path: filepath.Join(cfg.OutputDir, "db", "index.json"),
		log:  log,
	}
}

// load reads the index file, quarantining and discarding it on
// corruption (self-healing per spec.md §4.4).
func (s *Store) load() (*IndexMeta, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &IndexMeta{EmbeddingModelID: s.cfg.Embedder.ModelID(), ChunkLines: s.cfg.ChunkLines, SchemaVersion: CurrentSchemaVersion}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	var meta IndexMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		s.quarantine()
		s.log.Warn("vector index corrupted, quarantined and rebuilding", slog.String("path", s.path))
		return &IndexMeta{EmbeddingModelID: s.cfg.Embedder.ModelID(), ChunkLines: s.cfg.ChunkLines, SchemaVersion: CurrentSchemaVersion}, nil
	}
	return &meta, nil
}

func (s *Store) quarantine() {
	bak := s.path + ".bak"
	_ = os.Rename(s.path, bak)
}

// save writes meta atomically: write to a temp file, then rename.
func (s *Store) save(meta *IndexMeta) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp index: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename index: %w", err)
	}
	return nil
}

// Refresh runs the five-step refresh-on-query protocol: discard-on-
// model-or-chunk-size-change, enumerate, hash-and-diff chunks, drop
// orphans, atomic write.
func (s *Store) Refresh(ctx context.Context, sc *scanner.Scanner, opts scanner.Options) error {
	lock := newWriterLock(s.cfg.OutputDir)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	meta, err := s.load()
	if err != nil {
		return err
	}

	if meta.EmbeddingModelID != s.cfg.Embedder.ModelID() || meta.ChunkLines != s.cfg.ChunkLines {
		s.log.Info("vector index config changed, discarding", slog.String("old_model", meta.EmbeddingModelID), slog.String("new_model", s.cfg.Embedder.ModelID()))
		meta = &IndexMeta{EmbeddingModelID: s.cfg.Embedder.ModelID(), ChunkLines: s.cfg.ChunkLines, SchemaVersion: CurrentSchemaVersion}
	}

	files, err := sc.Walk(ctx, opts)
	if err != nil {
		return fmt.Errorf("scan for refresh: %w", err)
	}

	existingByPath := make(map[string][]VectorChunk)
	for _, c := range meta.Entries {
		existingByPath[c.Path] = append(existingByPath[c.Path], c)
	}

	var newEntries []VectorChunk
	liveFiles := make(map[string]bool)

	sk := skeleton.New(s.cfg.CharsPerToken)
	for _, f := range files {
		if !f.Parseable() {
			continue
		}
		liveFiles[f.Path] = true

		data, readErr := os.ReadFile(f.AbsPath)
		if readErr != nil {
			continue
		}
		res, skErr := sk.Skeletonize(ctx, f, data)
		text := data
		if skErr == nil && res.SkeletonText != "" {
			text = []byte(res.SkeletonText)
		}

		chunks := chunkLines(string(text), s.cfg.ChunkLines)
		existing := make(map[string]VectorChunk)
		for _, c := range existingByPath[f.Path] {
			existing[chunkKey(c.StartLine, c.EndLine)] = c
		}

		for _, ch := range chunks {
			hash := contenthash.ChunkHash(ch.lines)
			key := chunkKey(ch.start, ch.end)
			if prior, ok := existing[key]; ok && prior.ContentHashOfChunk == hash {
				newEntries = append(newEntries, prior)
				continue
			}
			vec, embErr := s.cfg.Embedder.Embed(ctx, joinLines(ch.lines))
			if embErr != nil {
				continue
			}
			newEntries = append(newEntries, VectorChunk{
				Path:               f.Path,
				StartLine:          ch.start,
				EndLine:            ch.end,
				ContentHashOfChunk: hash,
				Vector:             vec,
			})
		}
	}

	meta.Entries = newEntries
	return s.save(meta)
}

type lineChunk struct {
	start, end int
	lines      []string
}

func chunkLines(text string, chunkLines int) []lineChunk {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}
	var chunks []lineChunk
	for i := 0; i < len(lines); i += chunkLines {
		end := i + chunkLines
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, lineChunk{start: i + 1, end: end, lines: lines[i:end]})
	}
	return chunks
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return bytesSplit(text)
}

func bytesSplit(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func joinLines(lines []string) string {
	var buf bytes.Buffer
	for i, l := range lines {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(l)
	}
	return buf.String()
}

func chunkKey(start, end int) string {
	return fmt.Sprintf("%d:%d", start, end)
}

// Query embeds queryText once, searches the in-memory HNSW graph rebuilt
// from the on-disk index, and returns distinct paths ranked by best chunk
// score. limit <= 0 triggers AutoTune with budgetTokens.
func (s *Store) Query(ctx context.Context, queryText string, limit int, budgetTokens int) ([]QueryResult, error) {
	meta, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(meta.Entries) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.AutoTune(budgetTokens)
	}

	queryVec, err := s.cfg.Embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	keyToChunk := make(map[uint64]VectorChunk, len(meta.Entries))
	for i, c := range meta.Entries {
		key := uint64(i)
		graph.Add(hnsw.MakeNode(key, c.Vector))
		keyToChunk[key] = c
	}

	k := limit * 4
	if k < limit {
		k = limit
	}
	nodes := graph.Search(queryVec, k)

	best := make(map[string]QueryResult)
	for _, n := range nodes {
		chunk, ok := keyToChunk[n.Key]
		if !ok {
			continue
		}
		dist := graph.Distance(queryVec, n.Value)
		score := float32(1.0 - float64(dist)/2.0)
		if cur, exists := best[chunk.Path]; !exists || score > cur.BestScore {
			best[chunk.Path] = QueryResult{Path: chunk.Path, BestScore: score, ChunkStart: chunk.StartLine, ChunkEnd: chunk.EndLine}
		}
	}

	results := make([]QueryResult, 0, len(best))
	for _, r := range best {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].BestScore != results[j].BestScore {
			return results[i].BestScore > results[j].BestScore
		}
		return results[i].Path < results[j].Path
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// AutoTune picks a query limit proportional to budgetTokens when the
// caller does not specify one, clamped to a sane default range.
func (s *Store) AutoTune(budgetTokens int) int {
	if budgetTokens <= 0 {
		return s.cfg.DefaultQueryLimit
	}
	avgChunkCost := s.cfg.ChunkLines * 6 // rough chars-per-line guess for code
	estimate := int(math.Round(float64(budgetTokens) / float64(s.cfg.CharsPerToken) / float64(avgChunkCost)))
	if estimate < 5 {
		estimate = 5
	}
	if estimate > 100 {
		estimate = 100
	}
	return estimate
}
