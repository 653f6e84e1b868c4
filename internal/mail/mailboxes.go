package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// ListMailboxes reports the mailbox tree per account, or for one account
// when account is non-empty. Nested mailboxes are shown with their
// "Parent/Child" path, which is the form the move and export operations
// accept. Counts are included when includeCounts is set.
func (c *Client) ListMailboxes(ctx context.Context, account string, includeCounts bool) (string, error) {
	countFragment := func(boxVar string) func(*applescript.Script) {
		return func(s *applescript.Script) {
			s.Block("try", "end try", func(s *applescript.Script) {
				s.Linef("set msgCount to count of messages of %s", boxVar)
				s.Linef("set unreadCount to unread count of %s", boxVar)
				s.Line(`set outputText to outputText & " (" & msgCount & " total, " & unreadCount & " unread)"`)
				s.Mid("on error")
				s.Line(`set outputText to outputText & " (count unavailable)"`)
			})
		}
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "MAILBOXES" & return & return`)
		s.Block("repeat with anAccount in every account", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			body := func(s *applescript.Script) {
				s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
				s.Line(`set outputText to outputText & "ACCOUNT: " & accountName & return`)
				s.Linef("set outputText to outputText & %s & return & return", applescript.Quote(blockSeparator))
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set accountMailboxes to every mailbox of anAccount")
					s.Block("repeat with aMailbox in accountMailboxes", "end repeat", func(s *applescript.Script) {
						s.Line("set mailboxName to name of aMailbox")
						s.Line(`set outputText to outputText & "  " & mailboxName`)
						if includeCounts {
							countFragment("aMailbox")(s)
						}
						s.Line("set outputText to outputText & return")
						s.Block("try", "end try", func(s *applescript.Script) {
							s.Line("set subMailboxes to every mailbox of aMailbox")
							s.Block("repeat with subBox in subMailboxes", "end repeat", func(s *applescript.Script) {
								s.Line("set subName to name of subBox")
								s.Line(`set outputText to outputText & "    - " & subName & " [Path: " & mailboxName & "/" & subName & "]"`)
								if includeCounts {
									countFragment("subBox")(s)
								}
								s.Line("set outputText to outputText & return")
							})
						})
					})
					s.Line("set outputText to outputText & return")
					s.Mid("on error errMsg")
					s.Linef(`set outputText to outputText & "  %s Error accessing mailboxes: " & errMsg & return & return`, warnGlyph)
				})
			}
			if account == "" {
				body(s)
			} else {
				s.Block("if accountName is "+applescript.Quote(account)+" then", "end if", body)
			}
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "list_mailboxes", s.String())
}
