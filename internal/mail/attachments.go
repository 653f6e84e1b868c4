package mail

import (
	"context"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// ListAttachments reports the attachments of inbox messages whose subject
// contains keyword, with sizes in KB where Mail exposes them.
func (c *Client) ListAttachments(ctx context.Context, account, keyword string, maxResults int) (string, error) {
	maxResults = clampLimit(maxResults, 1, MaxBulkUpdates)

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Linef(`set outputText to "ATTACHMENTS FOR: %s" & return & return`, applescript.Escape(keyword))
		s.Line("set resultCount to 0")
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectInbox(s)
			s.Line("set inboxMessages to every message of inboxMailbox")
			s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *applescript.Script) {
				s.Linef("if resultCount >= %d then exit repeat", maxResults)
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Block("if messageSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
						s.Line("set messageSender to sender of aMessage")
						s.Line("set messageDate to date received of aMessage")
						s.Linef(`set outputText to outputText & "%s " & messageSubject & return`, unreadGlyph)
						s.Line(`set outputText to outputText & "   From: " & messageSender & return`)
						s.Line(`set outputText to outputText & "   Date: " & (messageDate as string) & return & return`)
						s.Line("set msgAttachments to mail attachments of aMessage")
						s.Line("set attachmentCount to count of msgAttachments")
						s.Block("if attachmentCount > 0 then", "end if", func(s *applescript.Script) {
							s.Line(`set outputText to outputText & "   Attachments (" & attachmentCount & "):" & return`)
							s.Block("repeat with anAttachment in msgAttachments", "end repeat", func(s *applescript.Script) {
								s.Line("set attachmentName to name of anAttachment")
								s.Block("try", "end try", func(s *applescript.Script) {
									s.Line("set attachmentSize to size of anAttachment")
									s.Line("set sizeInKB to (attachmentSize / 1024) as integer")
									s.Line(`set outputText to outputText & "   - " & attachmentName & " (" & sizeInKB & " KB)" & return`)
									s.Mid("on error")
									s.Line(`set outputText to outputText & "   - " & attachmentName & return`)
								})
							})
							s.Mid("else")
							s.Line(`set outputText to outputText & "   No attachments" & return`)
						})
						s.Line("set outputText to outputText & return")
						s.Line("set resultCount to resultCount + 1")
					})
				})
			})
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
			s.Line(`set outputText to outputText & "FOUND: " & resultCount & " matching email(s)" & return`)
			s.Linef("set outputText to outputText & %s & return", applescript.Quote(bannerLine))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "list_email_attachments", s.String())
}

// SaveAttachment writes the first attachment whose name contains
// attachmentName, from the first inbox message whose subject contains
// keyword, to savePath. savePath must be absolute; tilde expansion happens
// before the script is built.
func (c *Client) SaveAttachment(ctx context.Context, account, keyword, attachmentName, savePath string) (string, error) {
	path, err := expandHome(savePath)
	if err != nil {
		return "", err
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to ""`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectInbox(s)
			s.Line("set inboxMessages to every message of inboxMailbox")
			s.Line("set foundAttachment to false")
			s.Block("repeat with aMessage in inboxMessages", "end repeat", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Block("if messageSubject contains "+applescript.Quote(keyword)+" then", "end if", func(s *applescript.Script) {
						s.Line("set msgAttachments to mail attachments of aMessage")
						s.Block("repeat with anAttachment in msgAttachments", "end repeat", func(s *applescript.Script) {
							s.Line("set attachmentFileName to name of anAttachment")
							s.Block("if attachmentFileName contains "+applescript.Quote(attachmentName)+" then", "end if", func(s *applescript.Script) {
								s.Linef("save anAttachment in POSIX file %s", applescript.Quote(path))
								s.Linef(`set outputText to "%s Attachment saved successfully!" & return & return`, readGlyph)
								s.Line(`set outputText to outputText & "Email: " & messageSubject & return`)
								s.Line(`set outputText to outputText & "Attachment: " & attachmentFileName & return`)
								s.Linef(`set outputText to outputText & "Saved to: %s" & return`, applescript.Escape(path))
								s.Line("set foundAttachment to true")
								s.Line("exit repeat")
							})
						})
						s.Line("if foundAttachment then exit repeat")
					})
				})
			})
			s.Block("if not foundAttachment then", "end if", func(s *applescript.Script) {
				s.Linef(`set outputText to "%s Attachment not found" & return`, warnGlyph)
				s.Linef(`set outputText to outputText & "Email keyword: %s" & return`, applescript.Escape(keyword))
				s.Linef(`set outputText to outputText & "Attachment name: %s" & return`, applescript.Escape(attachmentName))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "save_email_attachment", s.String())
}
