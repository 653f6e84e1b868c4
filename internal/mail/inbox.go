package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// glyphFragment emits the standard message block from the preloaded
// messageSubject, messageSender, messageDate and messageRead variables.
func glyphFragment(s *applescript.Script) {
	s.Block("if messageRead then", "end if", func(s *applescript.Script) {
		s.Linef("set readIndicator to %s", applescript.Quote(readGlyph))
		s.Mid("else")
		s.Linef("set readIndicator to %s", applescript.Quote(unreadGlyph))
	})
	s.Line(`set outputText to outputText & readIndicator & " " & messageSubject & return`)
	s.Line(`set outputText to outputText & "   From: " & messageSender & return`)
	s.Line(`set outputText to outputText & "   Date: " & (messageDate as string) & return`)
}

// loadMessageFields emits extraction of the standard fields of aMessage.
func loadMessageFields(s *applescript.Script) {
	s.Line("set messageSubject to subject of aMessage")
	s.Line("set messageSender to sender of aMessage")
	s.Line("set messageDate to date received of aMessage")
	s.Line("set messageRead to read status of aMessage")
}

// ListInbox reports inbox messages across all accounts, or a single account
// when account is non-empty. maxPerAccount 0 means all messages; read
// messages are skipped when includeRead is false. Accounts whose inbox
// cannot be opened are reported inline rather than failing the whole run.
func (c *Client) ListInbox(ctx context.Context, account string, maxPerAccount int, includeRead bool) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		if account == "" {
			s.Line(`set outputText to "INBOX EMAILS - ALL ACCOUNTS" & return & return`)
		} else {
			s.Linef(`set outputText to "INBOX EMAILS - %s" & return & return`, applescript.Escape(account))
		}
		s.Line("set totalCount to 0")
		s.Block("repeat with anAccount in every account", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			body := func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Block("try", "end try", func(s *applescript.Script) {
						s.Line(`set inboxMailbox to mailbox "INBOX" of anAccount`)
						s.Mid("on error")
						s.Line(`set inboxMailbox to mailbox "Inbox" of anAccount`)
					})
					s.Line("set inboxMessages to every message of inboxMailbox")
					s.Line("set messageCount to count of inboxMessages")
					s.Block("if messageCount > 0 then", "end if", func(s *applescript.Script) {
						s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
						s.Line(`set outputText to outputText & "ACCOUNT: " & accountName & " (" & messageCount & " messages)" & return & return`)
						s.Line("set currentIndex to 0")
						s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *applescript.Script) {
							s.Line("set currentIndex to currentIndex + 1")
							if maxPerAccount > 0 {
								s.Linef("if currentIndex > %d then exit repeat", maxPerAccount)
							}
							s.Block("try", "end try", func(s *applescript.Script) {
								loadMessageFields(s)
								emit := func(s *applescript.Script) {
									glyphFragment(s)
									s.Line("set outputText to outputText & return")
									s.Line("set totalCount to totalCount + 1")
								}
								if includeRead {
									emit(s)
								} else {
									s.Block("if not messageRead then", "end if", emit)
								}
							})
						})
					})
					s.Mid("on error errMsg")
					s.Line(`set outputText to outputText & "` + warnGlyph + ` Error accessing inbox for account " & accountName & return`)
					s.Line(`set outputText to outputText & "   " & errMsg & return & return`)
				})
			}
			if account == "" {
				body(s)
			} else {
				s.Block("if accountName is "+applescript.Quote(account)+" then", "end if", body)
			}
		})
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		s.Line(`set outputText to outputText & "TOTAL EMAILS: " & totalCount & return`)
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		s.Line("return outputText")
	})

	return c.run(ctx, "list_inbox", s.String())
}

// RecentMessages reports the most recent inbox messages of one account,
// optionally with a content preview.
func (c *Client) RecentMessages(ctx context.Context, account string, count int, includePreview bool) (string, error) {
	count = clampLimit(count, DefaultListLimit, MaxSearchResults)
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "RECENT EMAILS - %s" & return & return`, applescript.Escape(account))
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectInbox(s)
			s.Line("set inboxMessages to every message of inboxMailbox")
			s.Line("set currentIndex to 0")
			s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *applescript.Script) {
				s.Line("set currentIndex to currentIndex + 1")
				s.Linef("if currentIndex > %d then exit repeat", count)
				s.Block("try", "end try", func(s *applescript.Script) {
					loadMessageFields(s)
					glyphFragment(s)
					if includePreview {
						previewFragment(s, "aMessage", c.opts.ContentLimit)
						s.Line(`set outputText to outputText & "   Preview: " & previewText & return`)
					}
					s.Line("set outputText to outputText & return")
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "Showing " & (currentIndex - 1) & " email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_recent_emails", s.String())
}
