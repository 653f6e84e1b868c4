package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// selectDrafts emits resolution of the Drafts mailbox into draftsMailbox.
func selectDrafts(s *applescript.Script) {
	s.Line(`set draftsMailbox to mailbox "Drafts" of targetAccount`)
}

// findDraftFragment emits the first-match scan over drafts, assigning
// foundDraft or leaving it missing value.
func findDraftFragment(s *applescript.Script, keyword string) {
	s.Line("set draftMessages to every message of draftsMailbox")
	s.Line("set foundDraft to missing value")
	s.Block("repeat with aDraft in draftMessages", "end repeat", func(s *applescript.Script) {
		s.Block("try", "end try", func(s *applescript.Script) {
			s.Line("set draftSubject to subject of aDraft")
			s.Block("if draftSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
				s.Line("set foundDraft to aDraft")
				s.Line("exit repeat")
			})
		})
	})
}

// ListDrafts reports the drafts of one account with their subjects and
// creation dates.
func (c *Client) ListDrafts(ctx context.Context, account string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "DRAFT EMAILS - %s" & return & return`, applescript.Escape(account))
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectDrafts(s)
			s.Line("set draftMessages to every message of draftsMailbox")
			s.Line("set draftCount to count of draftMessages")
			s.Line(`set outputText to outputText & "Found " & draftCount & " draft(s)" & return & return`)
			s.Block("repeat with aDraft in draftMessages", "end repeat", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set draftSubject to subject of aDraft")
					s.Line("set draftDate to date sent of aDraft")
					s.Linef(`set outputText to outputText & "%s " & draftSubject & return`, unreadGlyph)
					s.Line(`set outputText to outputText & "   Created: " & (draftDate as string) & return & return`)
				})
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_drafts", s.String())
}

// CreateDraft saves a new unsent message to the account's Drafts folder.
// to, cc and bcc take comma-separated address lists.
func (c *Client) CreateDraft(ctx context.Context, account, to, subject, body, cc, bcc string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "CREATING DRAFT" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Linef("set newDraft to make new outgoing message with properties {subject:%s, content:%s, visible:false}",
				applescript.Quote(subject), applescript.Quote(body))
			s.Line("set sender of newDraft to targetAccount")
			recipientsFragment(s, "newDraft", "to", to)
			recipientsFragment(s, "newDraft", "cc", cc)
			recipientsFragment(s, "newDraft", "bcc", bcc)
			// Not sending leaves the message in Drafts.
			s.Linef(`set outputText to outputText & "%s Draft created successfully!" & return & return`, readGlyph)
			s.Linef(`set outputText to outputText & "Subject: %s" & return`, applescript.Escape(subject))
			s.Linef(`set outputText to outputText & "To: %s" & return`, applescript.Escape(to))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_drafts", s.String())
}

// SendDraft sends the first draft whose subject contains keyword.
func (c *Client) SendDraft(ctx context.Context, account, keyword string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "SENDING DRAFT" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectDrafts(s)
			findDraftFragment(s, keyword)
			s.Block("if foundDraft is not missing value then", "end if", func(s *applescript.Script) {
				s.Line("set draftSubject to subject of foundDraft")
				s.Line("send foundDraft")
				s.Linef(`set outputText to outputText & "%s Draft sent successfully!" & return`, readGlyph)
				s.Line(`set outputText to outputText & "Subject: " & draftSubject & return`)
				s.Mid("else")
				s.Linef(`set outputText to outputText & "%s No draft found matching: %s" & return`, warnGlyph, applescript.Escape(keyword))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_drafts", s.String())
}

// DeleteDraft deletes the first draft whose subject contains keyword.
func (c *Client) DeleteDraft(ctx context.Context, account, keyword string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "DELETING DRAFT" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectDrafts(s)
			findDraftFragment(s, keyword)
			s.Block("if foundDraft is not missing value then", "end if", func(s *applescript.Script) {
				s.Line("set draftSubject to subject of foundDraft")
				s.Line("delete foundDraft")
				s.Linef(`set outputText to outputText & "%s Draft deleted successfully!" & return`, readGlyph)
				s.Line(`set outputText to outputText & "Subject: " & draftSubject & return`)
				s.Mid("else")
				s.Linef(`set outputText to outputText & "%s No draft found matching: %s" & return`, warnGlyph, applescript.Escape(keyword))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_drafts", s.String())
}
