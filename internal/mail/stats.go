package mail

import (
	"context"
	"fmt"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// Statistics builds an analytics report for one account. Scope selects the
// aggregation: account_overview walks every mailbox counting volumes, top
// senders and distribution; sender_stats counts mail from one sender;
// mailbox_breakdown summarizes a single mailbox. daysBack keeps only
// messages received strictly within the window, 0 meaning all time; the
// mailbox_breakdown scope reads Mail's own counters and ignores it.
func (c *Client) Statistics(ctx context.Context, account string, scope StatScope, sender, mailbox string, daysBack int) (string, error) {
	switch scope {
	case ScopeAccountOverview:
		return c.accountOverviewStats(ctx, account, daysBack)
	case ScopeSenderStats:
		if sender == "" {
			return "", fmt.Errorf("sender required for %s scope", ScopeSenderStats)
		}
		return c.senderStats(ctx, account, sender, daysBack)
	case ScopeMailboxBreakdown:
		if mailbox == "" {
			mailbox = "INBOX"
		}
		return c.mailboxBreakdown(ctx, account, mailbox)
	}
	return "", fmt.Errorf("invalid statistics scope %q", scope)
}

// dateCheck renders the cutoff condition, or "true" when disabled.
func dateCheck(daysBack int) string {
	if daysBack > 0 {
		return "messageDate > cutoffDate"
	}
	return "true"
}

func (c *Client) accountOverviewStats(ctx context.Context, account string, daysBack int) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "EMAIL STATISTICS - %s" & return & return`, applescript.Escape(account))
		if daysBack > 0 {
			dateCutoffFragment(s, daysBack)
		}
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Line("set allMailboxes to every mailbox of targetAccount")
			s.Line("set totalEmails to 0")
			s.Line("set totalUnread to 0")
			s.Line("set totalRead to 0")
			s.Line("set totalFlagged to 0")
			s.Line("set totalWithAttachments to 0")
			s.Line("set senderCounts to {}")
			s.Line("set mailboxCounts to {}")
			s.Block("repeat with aMailbox in allMailboxes", "end repeat", func(s *applescript.Script) {
				s.Line("set mailboxName to name of aMailbox")
				s.Line("set mailboxMessages to every message of aMailbox")
				s.Line("set mailboxTotal to 0")
				s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
					s.Block("try", "end try", func(s *applescript.Script) {
						s.Line("set messageDate to date received of aMessage")
						s.Block("if "+dateCheck(daysBack)+" then", "end if", func(s *applescript.Script) {
							s.Line("set totalEmails to totalEmails + 1")
							s.Line("set mailboxTotal to mailboxTotal + 1")
							s.Block("if read status of aMessage then", "end if", func(s *applescript.Script) {
								s.Line("set totalRead to totalRead + 1")
								s.Mid("else")
								s.Line("set totalUnread to totalUnread + 1")
							})
							s.Block("try", "end try", func(s *applescript.Script) {
								s.Block("if flagged status of aMessage then", "end if", func(s *applescript.Script) {
									s.Line("set totalFlagged to totalFlagged + 1")
								})
							})
							s.Block("if (count of mail attachments of aMessage) > 0 then", "end if", func(s *applescript.Script) {
								s.Line("set totalWithAttachments to totalWithAttachments + 1")
							})
							s.Line("set messageSender to sender of aMessage")
							s.Line("set senderFound to false")
							s.Block("repeat with senderPair in senderCounts", "end repeat", func(s *applescript.Script) {
								s.Block("if item 1 of senderPair is messageSender then", "end if", func(s *applescript.Script) {
									s.Line("set item 2 of senderPair to (item 2 of senderPair) + 1")
									s.Line("set senderFound to true")
									s.Line("exit repeat")
								})
							})
							s.Block("if not senderFound then", "end if", func(s *applescript.Script) {
								s.Line("set end of senderCounts to {messageSender, 1}")
							})
						})
					})
				})
				s.Block("if mailboxTotal > 0 then", "end if", func(s *applescript.Script) {
					s.Line("set end of mailboxCounts to {mailboxName, mailboxTotal}")
				})
			})
			s.Line(`set outputText to outputText & "VOLUME METRICS" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
			s.Line(`set outputText to outputText & "Total Emails: " & totalEmails & return`)
			s.Block("if totalEmails > 0 then", "end if", func(s *applescript.Script) {
				s.Line(`set outputText to outputText & "Unread: " & totalUnread & " (" & (round ((totalUnread / totalEmails) * 100)) & "%)" & return`)
				s.Line(`set outputText to outputText & "Read: " & totalRead & " (" & (round ((totalRead / totalEmails) * 100)) & "%)" & return`)
				s.Line(`set outputText to outputText & "Flagged: " & totalFlagged & return`)
				s.Line(`set outputText to outputText & "With Attachments: " & totalWithAttachments & " (" & (round ((totalWithAttachments / totalEmails) * 100)) & "%)" & return`)
			})
			s.Line("set outputText to outputText & return")
			s.Line(`set outputText to outputText & "TOP SENDERS" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
			s.Line("set topCount to 0")
			s.Block("repeat with senderPair in senderCounts", "end repeat", func(s *applescript.Script) {
				s.Line("set topCount to topCount + 1")
				s.Line("if topCount > 5 then exit repeat")
				s.Line(`set outputText to outputText & item 1 of senderPair & ": " & item 2 of senderPair & " emails" & return`)
			})
			s.Line("set outputText to outputText & return")
			s.Line(`set outputText to outputText & "MAILBOX DISTRIBUTION" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
			s.Line("set topCount to 0")
			s.Block("repeat with mailboxPair in mailboxCounts", "end repeat", func(s *applescript.Script) {
				s.Line("set topCount to topCount + 1")
				s.Line("if topCount > 5 then exit repeat")
				s.Line("set mailboxPercent to round ((item 2 of mailboxPair / totalEmails) * 100)")
				s.Line(`set outputText to outputText & item 1 of mailboxPair & ": " & item 2 of mailboxPair & " (" & mailboxPercent & "%)" & return`)
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_statistics", s.String())
}

func (c *Client) senderStats(ctx context.Context, account, sender string, daysBack int) (string, error) {
	cond := "messageSender contains " + applescript.Quote(sender)
	if daysBack > 0 {
		cond += " and messageDate > cutoffDate"
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "SENDER STATISTICS" & return & return`)
		s.Linef(`set outputText to outputText & "Sender: %s" & return`, applescript.Escape(sender))
		s.Linef(`set outputText to outputText & "Account: %s" & return & return`, applescript.Escape(account))
		if daysBack > 0 {
			dateCutoffFragment(s, daysBack)
		}
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Line("set allMailboxes to every mailbox of targetAccount")
			s.Line("set totalFromSender to 0")
			s.Line("set unreadFromSender to 0")
			s.Line("set withAttachments to 0")
			s.Block("repeat with aMailbox in allMailboxes", "end repeat", func(s *applescript.Script) {
				s.Line("set mailboxMessages to every message of aMailbox")
				s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
					s.Block("try", "end try", func(s *applescript.Script) {
						s.Line("set messageSender to sender of aMessage")
						s.Line("set messageDate to date received of aMessage")
						s.Block("if "+cond+" then", "end if", func(s *applescript.Script) {
							s.Line("set totalFromSender to totalFromSender + 1")
							s.Block("if not (read status of aMessage) then", "end if", func(s *applescript.Script) {
								s.Line("set unreadFromSender to unreadFromSender + 1")
							})
							s.Block("if (count of mail attachments of aMessage) > 0 then", "end if", func(s *applescript.Script) {
								s.Line("set withAttachments to withAttachments + 1")
							})
						})
					})
				})
			})
			s.Line(`set outputText to outputText & "Total emails: " & totalFromSender & return`)
			s.Line(`set outputText to outputText & "Unread: " & unreadFromSender & return`)
			s.Line(`set outputText to outputText & "With attachments: " & withAttachments & return`)
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_statistics", s.String())
}

func (c *Client) mailboxBreakdown(ctx context.Context, account, mailbox string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "MAILBOX STATISTICS" & return & return`)
		s.Linef(`set outputText to outputText & "Mailbox: %s" & return`, applescript.Escape(mailbox))
		s.Linef(`set outputText to outputText & "Account: %s" & return & return`, applescript.Escape(account))
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "targetMailbox")
			s.Line("set mailboxMessages to every message of targetMailbox")
			s.Line("set totalMessages to count of mailboxMessages")
			s.Line("set unreadMessages to unread count of targetMailbox")
			s.Line(`set outputText to outputText & "Total messages: " & totalMessages & return`)
			s.Line(`set outputText to outputText & "Unread: " & unreadMessages & return`)
			s.Line(`set outputText to outputText & "Read: " & (totalMessages - unreadMessages) & return`)
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_statistics", s.String())
}
