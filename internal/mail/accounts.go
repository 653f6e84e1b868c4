package mail

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// ListAccounts returns the names of all configured Mail accounts.
func (c *Client) ListAccounts(ctx context.Context) ([]string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line("set accountNames to {}")
		s.Block("repeat with anAccount in every account", "end repeat", func(s *applescript.Script) {
			s.Line("set end of accountNames to name of anAccount")
		})
		s.Linef(`set AppleScript's text item delimiters to %s`, applescript.Quote(countDelim))
		s.Line("return accountNames as string")
	})

	out, err := c.run(ctx, "list_accounts", s.String())
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, countDelim), nil
}

// UnreadCounts returns the inbox unread count per account. Accounts whose
// inbox cannot be read report ERROR, parsed to -1, so the rest still come
// through.
func (c *Client) UnreadCounts(ctx context.Context) ([]UnreadCount, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line("set resultList to {}")
		s.Block("repeat with anAccount in every account", "end repeat", func(s *applescript.Script) {
			s.Line("set accountName to name of anAccount")
			s.Block("try", "end try", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line(`set inboxMailbox to mailbox "INBOX" of anAccount`)
					s.Mid("on error")
					s.Line(`set inboxMailbox to mailbox "Inbox" of anAccount`)
				})
				s.Line("set unreadCount to unread count of inboxMailbox")
				s.Line(`set end of resultList to accountName & ":" & unreadCount`)
				s.Mid("on error")
				s.Line(`set end of resultList to accountName & ":ERROR"`)
			})
		})
		s.Linef(`set AppleScript's text item delimiters to %s`, applescript.Quote(countDelim))
		s.Line("return resultList as string")
	})

	out, err := c.run(ctx, "get_unread_count", s.String())
	if err != nil {
		return nil, err
	}
	return ParseUnreadCounts(out), nil
}
