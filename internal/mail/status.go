package mail

import (
	"context"
	"fmt"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// statusActions maps each action to its mutation statement and report label.
var statusActions = map[StatusAction]struct {
	stmt  string
	label string
}{
	StatusMarkRead:   {"set read status of aMessage to true", "Marked as read"},
	StatusMarkUnread: {"set read status of aMessage to false", "Marked as unread"},
	StatusFlag:       {"set flagged status of aMessage to true", "Flagged"},
	StatusUnflag:     {"set flagged status of aMessage to false", "Unflagged"},
}

// UpdateStatus applies a read or flag mutation to messages in a mailbox.
// keyword and sender filters AND together; with neither set every message
// in the mailbox is a candidate, bounded by maxUpdates.
func (c *Client) UpdateStatus(ctx context.Context, account string, action StatusAction, keyword, sender, mailbox string, maxUpdates int) (string, error) {
	act, ok := statusActions[action]
	if !ok {
		return "", fmt.Errorf("invalid status action %q", action)
	}
	maxUpdates = clampLimit(maxUpdates, MaxBulkUpdates, MaxBulkUpdates)

	cond := conditionExpr(SearchCriteria{SubjectContains: keyword, SenderContains: sender})

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "UPDATING EMAIL STATUS: %s" & return & return`, act.label)
		s.Line("set updateCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "targetMailbox")
			s.Line("set mailboxMessages to every message of targetMailbox")
			s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
				s.Linef("if updateCount >= %d then exit repeat", maxUpdates)
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Line("set messageSender to sender of aMessage")
					s.Line("set messageDate to date received of aMessage")
					s.Block("if "+cond+" then", "end if", func(s *applescript.Script) {
						s.Line(act.stmt)
						s.Linef(`set outputText to outputText & "%s %s: " & messageSubject & return`, readGlyph, act.label)
						s.Line(`set outputText to outputText & "   From: " & messageSender & return`)
						s.Line(`set outputText to outputText & "   Date: " & (messageDate as string) & return & return`)
						s.Line("set updateCount to updateCount + 1")
					})
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "TOTAL UPDATED: " & updateCount & " email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "update_email_status", s.String())
}
