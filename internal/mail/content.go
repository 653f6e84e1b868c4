package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// UseConfiguredLimit as a contentLimit argument selects the client's
// configured ContentLimit.
const UseConfiguredLimit = -1

// GetWithContent searches a mailbox for messages whose subject contains the
// keyword and reports each with a content preview. contentLimit overrides
// the client's truncation limit; 0 means unlimited bodies and
// UseConfiguredLimit falls back to the configured limit. Mailbox "All"
// spans every mailbox of the account, excluding the system folders.
func (c *Client) GetWithContent(ctx context.Context, account, keyword, mailbox string, maxResults, contentLimit int) (string, error) {
	maxResults = clampLimit(maxResults, 5, MaxSearchResults)
	if contentLimit < 0 {
		contentLimit = c.opts.ContentLimit
	}

	location := mailbox
	if mailbox == "All" {
		location = "all mailboxes"
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "SEARCH RESULTS FOR: %s" & return`, applescript.Escape(keyword))
		s.Linef(`set outputText to outputText & "Searching in: %s" & return & return`, applescript.Escape(location))
		s.Line("set resultCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			searchMailboxesFragment(s, mailbox)
			s.Block("repeat with currentMailbox in searchMailboxes", "end repeat", func(s *applescript.Script) {
				s.Line("set mailboxName to name of currentMailbox")
				scan := func(s *applescript.Script) {
					s.Line("set mailboxMessages to every message of currentMailbox")
					s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
						s.Linef("if resultCount >= %d then exit repeat", maxResults)
						s.Block("try", "end try", func(s *applescript.Script) {
							s.Line("set messageSubject to subject of aMessage")
							s.Block("if messageSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
								s.Line("set messageSender to sender of aMessage")
								s.Line("set messageDate to date received of aMessage")
								s.Line("set messageRead to read status of aMessage")
								glyphFragment(s)
								s.Line(`set outputText to outputText & "   Mailbox: " & mailboxName & return`)
								previewFragment(s, "aMessage", contentLimit)
								s.Line(`set outputText to outputText & "   Content: " & previewText & return`)
								s.Line("set outputText to outputText & return")
								s.Line("set resultCount to resultCount + 1")
							})
						})
					})
				}
				if mailbox == "All" {
					s.Block("if mailboxName is not in "+c.skipListLiteral()+" then", "end if", scan)
				} else {
					scan(s)
				}
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "FOUND: " & resultCount & " matching email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_email_with_content", s.String())
}
