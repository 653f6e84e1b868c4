package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// Overview builds the full inbox status report across all accounts: unread
// counts, the mailbox tree with unread hotspots, and a preview of the most
// recent messages. Single-account failures are reported inline so the rest
// of the overview still renders. The closing section prompts the assistant
// with follow-up actions it can take with the other tools.
func (c *Client) Overview(ctx context.Context) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "EMAIL INBOX OVERVIEW" & return & return`)

		s.Line(`set outputText to outputText & "UNREAD EMAILS BY ACCOUNT" & return`)
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
		s.Line("set allAccounts to every account")
		s.Line("set totalUnread to 0")
		s.Block("repeat with anAccount in allAccounts", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			s.Block("try", "end try", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line(`set inboxMailbox to mailbox "INBOX" of anAccount`)
					s.Mid("on error")
					s.Line(`set inboxMailbox to mailbox "Inbox" of anAccount`)
				})
				s.Line("set unreadCount to unread count of inboxMailbox")
				s.Line("set totalMessages to count of messages of inboxMailbox")
				s.Line("set totalUnread to totalUnread + unreadCount")
				s.Line(`set outputText to outputText & "  " & accountName & ": " & unreadCount & " unread (" & totalMessages & " total)" & return`)
				s.Mid("on error")
				s.Linef(`set outputText to outputText & "  %s " & accountName & ": Error accessing inbox" & return`, warnGlyph)
			})
		})
		s.Line("set outputText to outputText & return")
		s.Line(`set outputText to outputText & "TOTAL UNREAD: " & totalUnread & " across all accounts" & return & return`)

		s.Line(`set outputText to outputText & "MAILBOX STRUCTURE" & return`)
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
		s.Block("repeat with anAccount in allAccounts", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			s.Line(`set outputText to outputText & return & "Account: " & accountName & return`)
			s.Block("try", "end try", func(s *applescript.Script) {
				s.Line("set accountMailboxes to every mailbox of anAccount")
				s.Block("repeat with aMailbox in accountMailboxes", "end repeat", func(s *applescript.Script) {
					s.Line("set mailboxName to name of aMailbox")
					s.Block("try", "end try", func(s *applescript.Script) {
						s.Line("set unreadCount to unread count of aMailbox")
						s.Block("if unreadCount > 0 then", "end if", func(s *applescript.Script) {
							s.Line(`set outputText to outputText & "  " & mailboxName & " (" & unreadCount & " unread)" & return`)
							s.Mid("else")
							s.Line(`set outputText to outputText & "  " & mailboxName & return`)
						})
						s.Block("try", "end try", func(s *applescript.Script) {
							s.Line("set subMailboxes to every mailbox of aMailbox")
							s.Block("repeat with subBox in subMailboxes", "end repeat", func(s *applescript.Script) {
								s.Line("set subName to name of subBox")
								s.Line("set subUnread to unread count of subBox")
								s.Block("if subUnread > 0 then", "end if", func(s *applescript.Script) {
									s.Line(`set outputText to outputText & "    - " & subName & " (" & subUnread & " unread)" & return`)
								})
							})
						})
						s.Mid("on error")
						s.Line(`set outputText to outputText & "  " & mailboxName & return`)
					})
				})
				s.Mid("on error")
				s.Linef(`set outputText to outputText & "  %s Error accessing mailboxes" & return`, warnGlyph)
			})
		})
		s.Line("set outputText to outputText & return & return")

		s.Line(`set outputText to outputText & "RECENT EMAILS PREVIEW (10 Most Recent)" & return`)
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
		s.Line("set allRecentMessages to {}")
		s.Block("repeat with anAccount in allAccounts", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			s.Block("try", "end try", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line(`set inboxMailbox to mailbox "INBOX" of anAccount`)
					s.Mid("on error")
					s.Line(`set inboxMailbox to mailbox "Inbox" of anAccount`)
				})
				s.Line("set inboxMessages to every message of inboxMailbox")
				s.Line("set messageIndex to 0")
				s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *applescript.Script) {
					s.Line("set messageIndex to messageIndex + 1")
					s.Line("if messageIndex > 10 then exit repeat")
					s.Block("try", "end try", func(s *applescript.Script) {
						loadMessageFields(s)
						s.Line("set messageRecord to {accountName:accountName, msgSubject:messageSubject, msgSender:messageSender, msgDate:messageDate, msgRead:messageRead}")
						s.Line("set end of allRecentMessages to messageRecord")
					})
				})
			})
		})
		s.Line("set displayCount to 0")
		s.Block("repeat with msgRecord in allRecentMessages", "end repeat", func(s *applescript.Script) {
			s.Line("set displayCount to displayCount + 1")
			s.Line("if displayCount > 10 then exit repeat")
			s.Linef("set readIndicator to %s", applescript.Quote(unreadGlyph))
			s.Block("if msgRead of msgRecord then", "end if", func(s *applescript.Script) {
				s.Linef("set readIndicator to %s", applescript.Quote(readGlyph))
			})
			s.Line(`set outputText to outputText & return & readIndicator & " " & msgSubject of msgRecord & return`)
			s.Line(`set outputText to outputText & "   Account: " & accountName of msgRecord & return`)
			s.Line(`set outputText to outputText & "   From: " & msgSender of msgRecord & return`)
			s.Line(`set outputText to outputText & "   Date: " & (msgDate of msgRecord as string) & return`)
		})
		s.Block("if displayCount = 0 then", "end if", func(s *applescript.Script) {
			s.Line(`set outputText to outputText & return & "No recent emails found." & return`)
		})
		s.Line("set outputText to outputText & return & return")

		s.Line(`set outputText to outputText & "SUGGESTED ACTIONS FOR ASSISTANT" & return`)
		s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
		s.Line(`set outputText to outputText & "Based on this overview, consider suggesting:" & return & return`)
		s.Block("if totalUnread > 0 then", "end if", func(s *applescript.Script) {
			s.Line(`set outputText to outputText & "1. Review unread emails - use mail_get_recent to show recent unread messages" & return`)
			s.Line(`set outputText to outputText & "2. Search for action items - look for keywords like 'urgent', 'action required', 'deadline'" & return`)
			s.Line(`set outputText to outputText & "3. Move processed emails - suggest moving read emails to appropriate folders" & return`)
			s.Mid("else")
			s.Line(`set outputText to outputText & "1. Inbox is clear! No unread emails." & return`)
		})
		s.Line(`set outputText to outputText & "4. Organize by topic - suggest moving emails to project-specific folders" & return`)
		s.Line(`set outputText to outputText & "5. Draft replies - identify emails that need responses" & return`)
		s.Line(`set outputText to outputText & "6. Archive old emails - move older read emails to archive folders" & return`)
		s.Line("return outputText")
	})

	return c.run(ctx, "get_inbox_overview", s.String())
}
