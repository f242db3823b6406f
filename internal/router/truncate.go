package router

import "github.com/cortexast/cortexast/internal/symbolgraph"

// truncate enforces max_chars on a rendered response. Byte-safe UTF-8
// boundary clipping and the marker line are symbolgraph.Truncate's job
// already — the router doesn't need a second copy of the same logic.
func truncate(text string, maxChars int) (string, bool) {
	return symbolgraph.Truncate(text, maxChars)
}
