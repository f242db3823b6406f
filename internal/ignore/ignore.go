// Package ignore resolves .gitignore semantics for the Scanner, caching
// compiled matchers per directory with an LRU so one Matcher compiles each
// directory's .gitignore file at most once while it stays cached.
package ignore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	gitignore "github.com/sabhiram/go-gitignore"
)

// cacheSize bounds memory growth across long-running processes serving many
// repos in one session.
const cacheSize = 1000

// Matcher answers whether a repo-relative path is ignored, composing every
// .gitignore file found between the repo root and the path's directory.
type Matcher struct {
	root  string
	cache *lru.Cache[string, *gitignore.GitIgnore]
	mu    sync.RWMutex
}

// New creates a Matcher rooted at repoRoot.
func New(repoRoot string) (*Matcher, error) {
	cache, err := lru.New[string, *gitignore.GitIgnore](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Matcher{root: repoRoot, cache: cache}, nil
}

// Match reports whether relPath (repo-relative, forward-slash or OS
// separator) is ignored by any .gitignore file between the repo root and
// the path's containing directory.
func (m *Matcher) Match(relPath string) bool {
	dir := filepath.Dir(relPath)
	if dir == "." {
		if gi := m.matcherFor(""); gi != nil && gi.MatchesPath(relPath) {
			return true
		}
		return false
	}

	parts := strings.Split(filepath.ToSlash(dir), "/")
	cur := ""
	for _, part := range parts {
		if part == "." || part == "" {
			continue
		}
		if cur == "" {
			cur = part
		} else {
			cur = cur + "/" + part
		}
		if gi := m.matcherFor(cur); gi != nil {
			rel, err := filepath.Rel(cur, filepath.ToSlash(relPath))
			if err != nil {
				rel = relPath
			}
			if gi.MatchesPath(rel) {
				return true
			}
		}
	}

	if gi := m.matcherFor(""); gi != nil && gi.MatchesPath(relPath) {
		return true
	}
	return false
}

// matcherFor returns the compiled .gitignore for repo-relative directory
// dir ("" for the repo root), or nil if that directory has no .gitignore.
func (m *Matcher) matcherFor(dir string) *gitignore.GitIgnore {
	m.mu.RLock()
	if gi, ok := m.cache.Get(dir); ok {
		m.mu.RUnlock()
		return gi
	}
	m.mu.RUnlock()

	path := filepath.Join(m.root, filepath.FromSlash(dir), ".gitignore")
	var gi *gitignore.GitIgnore
	if _, err := os.Stat(path); err == nil {
		gi, _ = gitignore.CompileIgnoreFile(path)
	}

	m.mu.Lock()
	m.cache.Add(dir, gi)
	m.mu.Unlock()
	return gi
}

// Invalidate drops every cached matcher, forcing a re-read on next Match.
// The scanner builds a new Matcher for every walk and never calls it.
func (m *Matcher) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Purge()
}
