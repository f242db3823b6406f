package symbolgraph

import "unicode/utf8"

// TruncationMarker is appended whenever output is clipped at max_chars.
const TruncationMarker = "\n... [TRUNCATED: output exceeded max_chars]"

// Truncate clips text to at most maxChars bytes at a UTF-8 rune boundary
// and appends TruncationMarker, reporting whether it clipped anything.
// maxChars <= 0 disables truncation.
func Truncate(text string, maxChars int) (string, bool) {
	if maxChars <= 0 || len(text) <= maxChars {
		return text, false
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + TruncationMarker, true
}
