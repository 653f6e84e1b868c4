package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// findFirstFragment emits the first-match scan over srcVar messages,
// assigning foundMessage or leaving it missing value. See FindPolicy.
func findFirstFragment(s *applescript.Script, srcVar, keyword string) {
	s.Line("set sourceMessages to every message of " + srcVar)
	s.Line("set foundMessage to missing value")
	s.Block("repeat with aMessage in sourceMessages", "end repeat", func(s *applescript.Script) {
		s.Block("try", "end try", func(s *applescript.Script) {
			s.Line("set messageSubject to subject of aMessage")
			s.Block("if messageSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
				s.Line("set foundMessage to aMessage")
				s.Line("exit repeat")
			})
		})
	})
}

// Move relocates up to maxMoves messages whose subject contains keyword
// from one mailbox of the account to another. The destination accepts
// nested "Parent/Child" paths; the source takes only the INBOX spelling
// fallback. Each move is reported as it happens, so a mid-run failure
// still shows what already moved.
func (c *Client) Move(ctx context.Context, account, keyword, fromMailbox, toMailbox string, maxMoves int) (string, error) {
	maxMoves = clampLimit(maxMoves, 1, MaxBulkMoves)

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "MOVING EMAILS" & return & return`)
		s.Line("set movedCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, fromMailbox, "sourceMailbox")
			s.Line("set destMailbox to " + mailboxChain(toMailbox))
			s.Line("set sourceMessages to every message of sourceMailbox")
			s.Block("repeat with aMessage in sourceMessages", "end repeat", func(s *applescript.Script) {
				s.Linef("if movedCount >= %d then exit repeat", maxMoves)
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Block("if messageSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
						s.Line("set messageSender to sender of aMessage")
						s.Line("set messageDate to date received of aMessage")
						s.Line("move aMessage to destMailbox")
						s.Linef(`set outputText to outputText & "%s Moved: " & messageSubject & return`, readGlyph)
						s.Line(`set outputText to outputText & "  From: " & messageSender & return`)
						s.Line(`set outputText to outputText & "  Date: " & (messageDate as string) & return`)
						s.Linef(`set outputText to outputText & "  %s -> %s" & return & return`, applescript.Escape(fromMailbox), applescript.Escape(toMailbox))
						s.Line("set movedCount to movedCount + 1")
					})
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "TOTAL MOVED: " & movedCount & " email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "move_email", s.String())
}

// Reply sends a reply to the first inbox message whose subject contains
// keyword. replyAll addresses every original recipient instead of just the
// sender. The reply is sent from the matched account.
func (c *Client) Reply(ctx context.Context, account, keyword, body string, replyAll bool) (string, error) {
	replyCmd := "set replyMessage to reply foundMessage with opening window"
	if replyAll {
		replyCmd += " reply to all"
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "SENDING REPLY" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectInbox(s)
			findFirstFragment(s, "inboxMailbox", keyword)
			s.Block("if foundMessage is not missing value then", "end if", func(s *applescript.Script) {
				s.Line("set messageSubject to subject of foundMessage")
				s.Line("set messageSender to sender of foundMessage")
				s.Line("set messageDate to date received of foundMessage")
				s.Line(replyCmd)
				s.Line("set sender of replyMessage to targetAccount")
				s.Linef("set content of replyMessage to %s", applescript.Quote(body))
				s.Line("send replyMessage")
				s.Linef(`set outputText to outputText & "%s Reply sent successfully!" & return & return`, readGlyph)
				s.Line(`set outputText to outputText & "Original email:" & return`)
				s.Line(`set outputText to outputText & "  Subject: " & messageSubject & return`)
				s.Line(`set outputText to outputText & "  From: " & messageSender & return`)
				s.Line(`set outputText to outputText & "  Date: " & (messageDate as string) & return & return`)
				s.Line(`set outputText to outputText & "Reply body:" & return`)
				s.Linef(`set outputText to outputText & "  " & %s & return`, applescript.Quote(body))
				s.Mid("else")
				s.Linef(`set outputText to outputText & "%s No email found matching: %s" & return`, warnGlyph, applescript.Escape(keyword))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "reply_to_email", s.String())
}

// Forward sends the first matching message of a mailbox to new recipients,
// optionally prefixed with an introduction. Matching follows FindPolicy.
func (c *Client) Forward(ctx context.Context, account, keyword, to, introduction, mailbox string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "FORWARDING EMAIL" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "targetMailbox")
			findFirstFragment(s, "targetMailbox", keyword)
			s.Block("if foundMessage is not missing value then", "end if", func(s *applescript.Script) {
				s.Line("set messageSubject to subject of foundMessage")
				s.Line("set messageSender to sender of foundMessage")
				s.Line("set messageDate to date received of foundMessage")
				s.Line("set forwardMessage to forward foundMessage with opening window")
				s.Line("set sender of forwardMessage to targetAccount")
				s.Linef("make new to recipient at end of to recipients of forwardMessage with properties {address:%s}", applescript.Quote(to))
				if introduction != "" {
					s.Linef("set content of forwardMessage to %s & return & return & content of forwardMessage", applescript.Quote(introduction))
				}
				s.Line("send forwardMessage")
				s.Linef(`set outputText to outputText & "%s Email forwarded successfully!" & return & return`, readGlyph)
				s.Line(`set outputText to outputText & "Original email:" & return`)
				s.Line(`set outputText to outputText & "  Subject: " & messageSubject & return`)
				s.Line(`set outputText to outputText & "  From: " & messageSender & return`)
				s.Line(`set outputText to outputText & "  Date: " & (messageDate as string) & return & return`)
				s.Linef(`set outputText to outputText & "Forwarded to: %s" & return`, applescript.Escape(to))
				s.Mid("else")
				s.Linef(`set outputText to outputText & "%s No email found matching: %s" & return`, warnGlyph, applescript.Escape(keyword))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "forward_email", s.String())
}
