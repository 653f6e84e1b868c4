package mail

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
	"github.com/mailbridge/mailbridge/internal/logging"
)

// Client generates and runs Mail.app scripts.
type Client struct {
	runner applescript.Runner
	opts   Options
	logger *slog.Logger
}

// NewClient returns a Client executing scripts through runner.
func NewClient(runner applescript.Runner, opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		runner: runner,
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// ContentLimit returns the effective body truncation limit.
func (c *Client) ContentLimit() int {
	return c.opts.ContentLimit
}

// run executes a script and logs its shape. Script-level "Error: ..." output
// is returned as-is; the caller decides how to surface it.
func (c *Client) run(ctx context.Context, op, script string) (string, error) {
	c.logger.Debug("running mail script",
		logging.Operation(op),
		slog.Int("script_bytes", len(script)),
	)
	out, err := c.runner.Run(ctx, script)
	if err != nil {
		c.logger.Warn("mail script failed", logging.Operation(op), logging.Err(err))
		return "", err
	}
	if IsErrorOutput(out) {
		c.logger.Debug("mail script reported error", logging.Operation(op))
	}
	return out, nil
}

// selectAccount emits resolution of the named account into targetAccount,
// erroring with a stable message when it does not exist.
func selectAccount(s *applescript.Script, account string) {
	s.Block("try", "end try", func(s *applescript.Script) {
		s.Linef("set targetAccount to account %s", applescript.Quote(account))
		s.Mid("on error")
		s.Linef(`error "Account not found: %s"`, applescript.Escape(account))
	})
}

// selectInbox emits inbox resolution for targetAccount with the
// INBOX -> Inbox spelling fallback, assigning inboxMailbox.
func selectInbox(s *applescript.Script) {
	s.Block("try", "end try", func(s *applescript.Script) {
		s.Line(`set inboxMailbox to mailbox "INBOX" of targetAccount`)
		s.Mid("on error")
		s.Line(`set inboxMailbox to mailbox "Inbox" of targetAccount`)
	})
}

// selectMailbox emits resolution of a named mailbox of targetAccount into
// varName. The INBOX spelling fallback applies only to the literal name
// INBOX; any other missing name errors immediately.
func selectMailbox(s *applescript.Script, name, varName string) {
	if name == "INBOX" {
		s.Block("try", "end try", func(s *applescript.Script) {
			s.Linef(`set %s to mailbox "INBOX" of targetAccount`, varName)
			s.Mid("on error")
			s.Linef(`set %s to mailbox "Inbox" of targetAccount`, varName)
		})
		return
	}
	s.Block("try", "end try", func(s *applescript.Script) {
		s.Linef("set %s to mailbox %s of targetAccount", varName, applescript.Quote(name))
		s.Mid("on error")
		s.Linef(`error "Mailbox not found: %s"`, applescript.Escape(name))
	})
}

// mailboxChain renders a possibly nested "Parent/Child" path as a mailbox
// reference on targetAccount, innermost segment first.
func mailboxChain(path string) string {
	segments := strings.Split(path, "/")
	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteString("mailbox ")
		sb.WriteString(applescript.Quote(segments[i]))
		sb.WriteString(" of ")
	}
	sb.WriteString("targetAccount")
	return sb.String()
}

// skipListLiteral renders the system-folder skip list as an AppleScript
// list literal.
func (c *Client) skipListLiteral() string {
	quoted := make([]string, len(c.opts.SkipMailboxes))
	for i, name := range c.opts.SkipMailboxes {
		quoted[i] = applescript.Quote(name)
	}
	return "{" + strings.Join(quoted, ", ") + "}"
}

// previewFragment emits body extraction into previewText: newlines and
// carriage returns collapsed to spaces, truncated to limit characters with
// a trailing ellipsis. limit <= 0 disables truncation. srcVar names the
// message variable.
func previewFragment(s *applescript.Script, srcVar string, limit int) {
	s.Block("try", "end try", func(s *applescript.Script) {
		s.Linef("set msgContent to content of %s", srcVar)
		s.Line("set AppleScript's text item delimiters to {return, linefeed}")
		s.Line("set contentParts to text items of msgContent")
		s.Line(`set AppleScript's text item delimiters to " "`)
		s.Line("set msgContent to contentParts as string")
		s.Line(`set AppleScript's text item delimiters to ""`)
		if limit > 0 {
			s.Block(fmt.Sprintf("if length of msgContent > %d then", limit), "end if", func(s *applescript.Script) {
				s.Linef(`set previewText to (text 1 thru %d of msgContent) & "..."`, limit)
				s.Mid("else")
				s.Line("set previewText to msgContent")
			})
		} else {
			s.Line("set previewText to msgContent")
		}
		s.Mid("on error")
		s.Line(`set previewText to "[Content unavailable]"`)
	})
}

// dateCutoffFragment emits a cutoffDate strictly daysBack days before now.
func dateCutoffFragment(s *applescript.Script, daysBack int) {
	s.Linef("set cutoffDate to (current date) - (%d * days)", daysBack)
}
