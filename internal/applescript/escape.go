package applescript

import "strings"

// Escape makes arbitrary text safe for embedding inside a double-quoted
// AppleScript string literal. Backslashes are escaped before quotes; doing it
// the other way around double-escapes the backslash that the quote escape
// introduces and corrupts the output.
//
// Escape is total: it never fails, and the empty string maps to itself.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}

// Quote returns s as a complete AppleScript string literal, escaped.
// This is the only sanctioned path for caller-supplied text into a script.
func Quote(s string) string {
	return `"` + Escape(s) + `"`
}
