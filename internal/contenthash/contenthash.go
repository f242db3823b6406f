// Package contenthash provides the xxh3-64 content hashing used to key File
// Records and Vector Chunks so the engine can detect unchanged content
// without re-reading or re-embedding it.
package contenthash

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// Hash returns the xxh3-64 hash of data as a lowercase hex string, the form
// stored in on-disk File Records and Vector Chunks.
func Hash(data []byte) string {
	return strconv.FormatUint(xxh3.Hash(data), 16)
}

// HashString is Hash for string input, avoiding an extra copy for callers
// that already hold a string.
func HashString(s string) string {
	return strconv.FormatUint(xxh3.HashString(s), 16)
}

// ChunkHash hashes a line-window's concatenated text, the "chunk hash" in a
// Vector Chunk record.
func ChunkHash(lines []string) string {
	h := xxh3.New()
	for _, l := range lines {
		_, _ = h.WriteString(l)
		_, _ = h.WriteString("\n")
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
