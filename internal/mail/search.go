package mail

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// conditionExpr renders the criteria as an AppleScript boolean expression
// over the preloaded message variables. No criteria yields "true".
func conditionExpr(crit SearchCriteria) string {
	var conds []string
	if crit.SubjectContains != "" {
		conds = append(conds, "messageSubject contains "+applescript.Quote(crit.SubjectContains))
	}
	if crit.SenderContains != "" {
		conds = append(conds, "messageSender contains "+applescript.Quote(crit.SenderContains))
	}
	if crit.HasAttachments != nil {
		if *crit.HasAttachments {
			conds = append(conds, "(count of mail attachments of aMessage) > 0")
		} else {
			conds = append(conds, "(count of mail attachments of aMessage) = 0")
		}
	}
	switch crit.ReadStatus {
	case "read":
		conds = append(conds, "messageRead is true")
	case "unread":
		conds = append(conds, "messageRead is false")
	}
	if crit.DaysBack > 0 {
		conds = append(conds, "messageDate > cutoffDate")
	}
	if len(conds) == 0 {
		return "true"
	}
	return strings.Join(conds, " and ")
}

// searchMailboxesFragment emits assignment of searchMailboxes for the given
// mailbox name, where "All" spans every mailbox of targetAccount.
func searchMailboxesFragment(s *applescript.Script, mailbox string) {
	if mailbox == "All" {
		s.Line("set searchMailboxes to every mailbox of targetAccount")
		return
	}
	selectMailbox(s, mailbox, "searchMailbox")
	s.Line("set searchMailboxes to {searchMailbox}")
}

// Search scans a mailbox (or all mailboxes for mailbox "All") of one account
// and returns messages matching the criteria, newest mailbox order first as
// Mail reports them. All-mailbox searches skip the system folders so trash
// and drafts do not pollute results. Previews are attached when
// includeContent is set.
//
// The script emits one delimiter-separated record per match; rendering is
// left to the caller.
func (c *Client) Search(ctx context.Context, account, mailbox string, crit SearchCriteria, includeContent bool, max int) ([]Message, error) {
	max = clampLimit(max, 20, MaxSearchResults)

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to ""`)
		s.Line("set resultCount to 0")
		if crit.DaysBack > 0 {
			dateCutoffFragment(s, crit.DaysBack)
		}
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			searchMailboxesFragment(s, mailbox)
			s.Block("repeat with currentMailbox in searchMailboxes", "end repeat", func(s *applescript.Script) {
				s.Line("set mailboxName to name of currentMailbox")
				scan := func(s *applescript.Script) {
					s.Line("set mailboxMessages to every message of currentMailbox")
					s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
						s.Linef("if resultCount >= %d then exit repeat", max)
						s.Block("try", "end try", func(s *applescript.Script) {
							loadMessageFields(s)
							s.Block("if "+conditionExpr(crit)+" then", "end if", func(s *applescript.Script) {
								s.Block("if messageRead then", "end if", func(s *applescript.Script) {
									s.Line(`set readWord to "read"`)
									s.Mid("else")
									s.Line(`set readWord to "unread"`)
								})
								s.Linef(`set recordLine to messageSubject & %[1]s & messageSender & %[1]s & (messageDate as string) & %[1]s & readWord & %[1]s & mailboxName`, applescript.Quote(recordDelim))
								if includeContent {
									previewFragment(s, "aMessage", c.opts.ContentLimit)
									s.Linef("set recordLine to recordLine & %s & previewText", applescript.Quote(recordDelim))
								}
								s.Line("set outputText to outputText & recordLine & return")
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
		})
		s.Line("return outputText")
	})

	out, err := c.run(ctx, "search_emails", s.String())
	if err != nil {
		return nil, err
	}
	if IsErrorOutput(out) {
		return nil, faultFromOutput(out)
	}
	return ParseRecords(out), nil
}
