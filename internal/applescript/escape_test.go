package applescript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unescapeLiteral reverses Escape the way the AppleScript parser would when
// reading a double-quoted literal: \\ -> \ and \" -> ".
func unescapeLiteral(t *testing.T, s string) string {
	t.Helper()
	var out strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			require.Less(t, i+1, len(s), "dangling backslash in escaped output")
			i++
			switch s[i] {
			case '\\', '"':
				out.WriteByte(s[i])
			default:
				t.Fatalf("unexpected escape sequence \\%c", s[i])
			}
			continue
		}
		require.NotEqual(t, byte('"'), s[i], "unescaped quote in output")
		out.WriteByte(s[i])
	}
	return out.String()
}

func TestEscapeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "plain text", input: "Quarterly budget review"},
		{name: "embedded quote", input: `he said "sure"`},
		{name: "embedded backslash", input: `C:\path\to\file`},
		{name: "backslash then quote", input: `a\"b`},
		{name: "quote then backslash", input: `a"\b`},
		{name: "consecutive specials", input: `\\""\\`},
		{name: "unicode", input: "Réunion — 会議 ✓"},
		{name: "newlines pass through", input: "line one\nline two"},
		{name: "injection attempt", input: `" & (do shell script "true") & "`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			escaped := Escape(tt.input)
			assert.Equal(t, tt.input, unescapeLiteral(t, escaped))
		})
	}
}

func TestEscapeOrdering(t *testing.T) {
	// Backslash must be escaped before the quote. Escaping quotes first
	// would turn `a\"b` into `a\\\\"b` via the second pass.
	assert.Equal(t, `a\\\"b`, Escape(`a\"b`))
	assert.Equal(t, `\\`, Escape(`\`))
	assert.Equal(t, `\"`, Escape(`"`))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"hello"`, Quote("hello"))
	assert.Equal(t, `""`, Quote(""))
	assert.Equal(t, `"say \"hi\""`, Quote(`say "hi"`))
}
