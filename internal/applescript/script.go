package applescript

import (
	"fmt"
	"strings"
)

// Script accumulates AppleScript statements line by line. Generators use it
// to compose a script from fragments; string parameters must already be
// passed through Quote before they reach Linef.
type Script struct {
	sb     strings.Builder
	indent int
}

// NewScript returns an empty script builder.
func NewScript() *Script {
	return &Script{}
}

// Line appends a single statement at the current indentation level.
func (s *Script) Line(text string) *Script {
	if text != "" {
		s.sb.WriteString(strings.Repeat("\t", s.indent))
		s.sb.WriteString(text)
	}
	s.sb.WriteByte('\n')
	return s
}

// Linef appends a formatted statement. String arguments carrying user input
// must be quoted with Quote by the caller.
func (s *Script) Linef(format string, args ...any) *Script {
	return s.Line(fmt.Sprintf(format, args...))
}

// Block appends an opening line, runs body at one deeper indentation level,
// and appends the closing line. It keeps begin/end pairs (tell/end tell,
// try/end try, repeat/end repeat) structurally matched.
func (s *Script) Block(open, close string, body func(*Script)) *Script {
	s.Line(open)
	s.indent++
	body(s)
	s.indent--
	return s.Line(close)
}

// Tell wraps body in a `tell application` block.
func (s *Script) Tell(app string, body func(*Script)) *Script {
	return s.Block(fmt.Sprintf("tell application %s", Quote(app)), "end tell", body)
}

// Try wraps body in a try block whose error handler converts any failure
// into a single-line "Error: <message>" result. This is the trap every
// generator installs around its Mail interaction; partial progress made
// before the failure is not rolled back.
func (s *Script) Try(body func(*Script)) *Script {
	s.Line("try")
	s.indent++
	body(s)
	s.indent--
	s.Line("on error errMsg")
	s.indent++
	s.Line(`return "Error: " & errMsg`)
	s.indent--
	return s.Line("end try")
}

// Mid appends a clause line (else, on error) at the enclosing block's
// indentation level. Only meaningful inside a Block body.
func (s *Script) Mid(text string) *Script {
	s.indent--
	s.Line(text)
	s.indent++
	return s
}

// String renders the accumulated script.
func (s *Script) String() string {
	return s.sb.String()
}
