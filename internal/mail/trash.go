package mail

import (
	"context"
	"fmt"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// ManageTrash moves messages to trash, deletes permanently from trash, or
// empties the trash of one account. keyword and sender filters AND together
// and are ignored for empty_trash; maxDeletes caps the destructive loop.
// Messages trashed before a mid-run failure stay trashed.
func (c *Client) ManageTrash(ctx context.Context, account string, action TrashAction, keyword, sender, mailbox string, maxDeletes int) (string, error) {
	switch action {
	case TrashEmpty:
		return c.emptyTrash(ctx, account)
	case TrashPermanent:
		return c.deletePermanent(ctx, account, keyword, sender, maxDeletes)
	case TrashMove:
		return c.moveToTrash(ctx, account, keyword, sender, mailbox, maxDeletes)
	}
	return "", fmt.Errorf("invalid trash action %q", action)
}

func (c *Client) emptyTrash(ctx context.Context, account string) (string, error) {
	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "EMPTYING TRASH" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Line(`set trashMailbox to mailbox "Trash" of targetAccount`)
			s.Line("set trashMessages to every message of trashMailbox")
			s.Line("set messageCount to count of trashMessages")
			s.Block("repeat with aMessage in trashMessages", "end repeat", func(s *applescript.Script) {
				s.Line("delete aMessage")
			})
			s.Linef(`set outputText to outputText & "%s Emptied trash for account: %s" & return`, readGlyph, applescript.Escape(account))
			s.Line(`set outputText to outputText & "   Deleted " & messageCount & " message(s)" & return`)
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_trash", s.String())
}

func (c *Client) deletePermanent(ctx context.Context, account, keyword, sender string, maxDeletes int) (string, error) {
	maxDeletes = clampLimit(maxDeletes, 5, MaxBulkUpdates)
	cond := conditionExpr(SearchCriteria{SubjectContains: keyword, SenderContains: sender})

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "PERMANENTLY DELETING EMAILS" & return & return`)
		s.Line("set deleteCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			s.Line(`set trashMailbox to mailbox "Trash" of targetAccount`)
			s.Line("set trashMessages to every message of trashMailbox")
			s.Block("repeat with aMessage in trashMessages", "end repeat", func(s *applescript.Script) {
				s.Linef("if deleteCount >= %d then exit repeat", maxDeletes)
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Line("set messageSender to sender of aMessage")
					s.Block("if "+cond+" then", "end if", func(s *applescript.Script) {
						s.Linef(`set outputText to outputText & "%s Permanently deleted: " & messageSubject & return`, readGlyph)
						s.Line(`set outputText to outputText & "   From: " & messageSender & return & return`)
						s.Line("delete aMessage")
						s.Line("set deleteCount to deleteCount + 1")
					})
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "TOTAL DELETED: " & deleteCount & " email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_trash", s.String())
}

func (c *Client) moveToTrash(ctx context.Context, account, keyword, sender, mailbox string, maxDeletes int) (string, error) {
	maxDeletes = clampLimit(maxDeletes, 5, MaxBulkUpdates)
	cond := conditionExpr(SearchCriteria{SubjectContains: keyword, SenderContains: sender})

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "MOVING EMAILS TO TRASH" & return & return`)
		s.Line("set deleteCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "sourceMailbox")
			s.Line(`set trashMailbox to mailbox "Trash" of targetAccount`)
			s.Line("set sourceMessages to every message of sourceMailbox")
			s.Block("repeat with aMessage in sourceMessages", "end repeat", func(s *applescript.Script) {
				s.Linef("if deleteCount >= %d then exit repeat", maxDeletes)
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Line("set messageSender to sender of aMessage")
					s.Line("set messageDate to date received of aMessage")
					s.Block("if "+cond+" then", "end if", func(s *applescript.Script) {
						s.Line("move aMessage to trashMailbox")
						s.Linef(`set outputText to outputText & "%s Moved to trash: " & messageSubject & return`, readGlyph)
						s.Line(`set outputText to outputText & "   From: " & messageSender & return`)
						s.Line(`set outputText to outputText & "   Date: " & (messageDate as string) & return & return`)
						s.Line("set deleteCount to deleteCount + 1")
					})
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "TOTAL MOVED TO TRASH: " & deleteCount & " email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "manage_trash", s.String())
}
