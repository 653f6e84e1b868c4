package applescript

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptBuilder(t *testing.T) {
	s := NewScript()
	s.Tell("Mail", func(s *Script) {
		s.Linef("set targetAccount to account %s", Quote("Work"))
		s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *Script) {
			s.Line("set messageSubject to subject of aMessage")
		})
	})

	got := s.String()
	want := "tell application \"Mail\"\n" +
		"\tset targetAccount to account \"Work\"\n" +
		"\trepeat with aMessage in inboxMessages\n" +
		"\t\tset messageSubject to subject of aMessage\n" +
		"\tend repeat\n" +
		"end tell\n"
	assert.Equal(t, want, got)
}

func TestScriptTryTrap(t *testing.T) {
	s := NewScript()
	s.Try(func(s *Script) {
		s.Line("set x to 1")
	})

	got := s.String()
	assert.Contains(t, got, "try\n")
	assert.Contains(t, got, "on error errMsg\n")
	assert.Contains(t, got, `return "Error: " & errMsg`)
	assert.Contains(t, got, "end try\n")
}

func TestScriptQuotedUserInput(t *testing.T) {
	// User text only enters a script through Quote; a hostile subject must
	// stay inside the literal.
	s := NewScript()
	s.Linef("if messageSubject contains %s then", Quote(`" & delete everyMessage & "`))

	assert.Contains(t, s.String(), `contains "\" & delete everyMessage & \"" then`)
}

func TestScriptMidClause(t *testing.T) {
	s := NewScript()
	s.Block("try", "end try", func(s *Script) {
		s.Line(`set inboxMailbox to mailbox "INBOX" of targetAccount`)
		s.Mid("on error")
		s.Line(`set inboxMailbox to mailbox "Inbox" of targetAccount`)
	})

	want := "try\n" +
		"\tset inboxMailbox to mailbox \"INBOX\" of targetAccount\n" +
		"on error\n" +
		"\tset inboxMailbox to mailbox \"Inbox\" of targetAccount\n" +
		"end try\n"
	assert.Equal(t, want, s.String())
}
