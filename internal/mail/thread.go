package mail

import (
	"context"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// threadPrefixes are the reply and forward markers stripped from subjects
// when grouping a conversation.
var threadPrefixes = []string{"Re:", "Fwd:", "FW:", "RE:", "Fw:"}

// cleanThreadKeyword strips reply and forward prefixes from a thread topic.
func cleanThreadKeyword(keyword string) string {
	for _, p := range threadPrefixes {
		keyword = strings.ReplaceAll(keyword, p, "")
	}
	return strings.TrimSpace(keyword)
}

// Thread reports all messages of a conversation identified by a subject
// keyword, matching both the raw subject and the subject with reply and
// forward prefixes stripped. Mailbox "All" spans the whole account minus
// the system folders. Messages come back in mailbox order with short
// previews.
func (c *Client) Thread(ctx context.Context, account, keyword, mailbox string, maxMessages int) (string, error) {
	maxMessages = clampLimit(maxMessages, MaxThreadMessages, MaxThreadMessages)
	topic := cleanThreadKeyword(keyword)

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "EMAIL THREAD VIEW" & return & return`)
		s.Linef(`set outputText to outputText & "Thread topic: %s" & return`, applescript.Escape(topic))
		s.Linef(`set outputText to outputText & "Account: %s" & return & return`, applescript.Escape(account))
		s.Line("set threadMessages to {}")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			searchMailboxesFragment(s, mailbox)
			s.Block("repeat with currentMailbox in searchMailboxes", "end repeat", func(s *applescript.Script) {
				s.Line("set mailboxName to name of currentMailbox")
				scan := func(s *applescript.Script) {
					s.Line("set mailboxMessages to every message of currentMailbox")
					s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
						s.Linef("if (count of threadMessages) >= %d then exit repeat", maxMessages)
						s.Block("try", "end try", func(s *applescript.Script) {
							s.Line("set messageSubject to subject of aMessage")
							s.Line("set cleanSubject to messageSubject")
							s.Block(`if cleanSubject starts with "Re: " then`, "end if", func(s *applescript.Script) {
								s.Line("set cleanSubject to text 5 thru -1 of cleanSubject")
							})
							s.Block(`if cleanSubject starts with "Fwd: " or cleanSubject starts with "FW: " then`, "end if", func(s *applescript.Script) {
								s.Line("set cleanSubject to text 6 thru -1 of cleanSubject")
							})
							s.Block("if cleanSubject contains "+applescript.Quote(topic)+" or messageSubject contains "+applescript.Quote(topic)+" then", "end if", func(s *applescript.Script) {
								s.Line("set end of threadMessages to aMessage")
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
			s.Line("set messageCount to count of threadMessages")
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(blockSeparator))
			s.Line(`set outputText to outputText & "FOUND " & messageCount & " MESSAGE(S) IN THREAD" & return`)
			s.Linef("set outputText to outputText & %s & return & return", applescript.Quote(blockSeparator))
			s.Block("repeat with aMessage in threadMessages", "end repeat", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					loadMessageFields(s)
					glyphFragment(s)
					previewFragment(s, "aMessage", 150)
					s.Line(`set outputText to outputText & "   Preview: " & previewText & return`)
					s.Line("set outputText to outputText & return")
				})
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "get_email_thread", s.String())
}
