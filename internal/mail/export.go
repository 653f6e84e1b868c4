package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mailbridge/mailbridge/internal/applescript"
)

// expandHome resolves a leading ~ against the current user's home directory.
func expandHome(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %q: %w", path, err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// exportContentFragment emits assembly of exportContent for the chosen
// format from the preloaded message fields.
func exportContentFragment(s *applescript.Script, format ExportFormat) {
	if format == ExportHTML {
		s.Line(`set exportContent to "<html><body>"`)
		s.Line(`set exportContent to exportContent & "<h2>" & messageSubject & "</h2>"`)
		s.Line(`set exportContent to exportContent & "<p><strong>From:</strong> " & messageSender & "</p>"`)
		s.Line(`set exportContent to exportContent & "<p><strong>Date:</strong> " & (messageDate as string) & "</p>"`)
		s.Line(`set exportContent to exportContent & "<hr>" & messageContent`)
		s.Line(`set exportContent to exportContent & "</body></html>"`)
		return
	}
	s.Line(`set exportContent to "Subject: " & messageSubject & return`)
	s.Line(`set exportContent to exportContent & "From: " & messageSender & return`)
	s.Line(`set exportContent to exportContent & "Date: " & (messageDate as string) & return & return`)
	s.Line("set exportContent to exportContent & messageContent")
}

// safeFileNameFragment emits sanitization of the name in srcVar, replacing
// path separators so subjects cannot escape the export directory.
func safeFileNameFragment(s *applescript.Script, srcVar string) {
	s.Linef(`set AppleScript's text item delimiters to "/"`)
	s.Linef("set nameParts to text items of %s", srcVar)
	s.Linef(`set AppleScript's text item delimiters to "-"`)
	s.Linef("set %s to nameParts as string", srcVar)
	s.Linef(`set AppleScript's text item delimiters to ""`)
}

// writeFileFragment emits a write of exportContent to filePath as UTF-8.
func writeFileFragment(s *applescript.Script) {
	s.Line("set fileRef to open for access POSIX file filePath with write permission")
	s.Line("set eof of fileRef to 0")
	s.Line("write exportContent to fileRef as «class utf8»")
	s.Line("close access fileRef")
}

// ExportSingle writes the first message matching keyword in a mailbox to a
// file named after its subject in saveDirectory.
func (c *Client) ExportSingle(ctx context.Context, account, keyword, mailbox, saveDirectory string, format ExportFormat) (string, error) {
	dir, err := expandHome(saveDirectory)
	if err != nil {
		return "", err
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "EXPORTING EMAIL" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "targetMailbox")
			findFirstFragment(s, "targetMailbox", keyword)
			s.Block("if foundMessage is not missing value then", "end if", func(s *applescript.Script) {
				s.Line("set messageSubject to subject of foundMessage")
				s.Line("set messageSender to sender of foundMessage")
				s.Line("set messageDate to date received of foundMessage")
				s.Line("set messageContent to content of foundMessage")
				s.Line("set safeSubject to messageSubject")
				safeFileNameFragment(s, "safeSubject")
				s.Linef(`set fileName to safeSubject & ".%s"`, format)
				s.Linef("set filePath to %s & fileName", applescript.Quote(dir+"/"))
				exportContentFragment(s, format)
				writeFileFragment(s)
				s.Linef(`set outputText to outputText & "%s Email exported successfully!" & return & return`, readGlyph)
				s.Line(`set outputText to outputText & "Subject: " & messageSubject & return`)
				s.Line(`set outputText to outputText & "Saved to: " & filePath & return`)
				s.Mid("else")
				s.Linef(`set outputText to outputText & "%s No email found matching: %s" & return`, warnGlyph, applescript.Escape(keyword))
			})
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "export_emails", s.String())
}

// ExportMailbox writes every message of a mailbox to an export directory
// created under saveDirectory. Messages that fail to export individually
// are skipped so one bad message does not abort the backup.
func (c *Client) ExportMailbox(ctx context.Context, account, mailbox, saveDirectory string, format ExportFormat) (string, error) {
	dir, err := expandHome(saveDirectory)
	if err != nil {
		return "", err
	}
	exportDir := filepath.Join(dir, strings.ReplaceAll(mailbox, "/", "-")+"_export")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	s := applescript.NewScript()
	s.Tell("Mail", func(s *applescript.Script) {
		s.Line(`set outputText to "EXPORTING MAILBOX" & return & return`)
		s.Try(func(s *applescript.Script) {
			selectAccount(s, account)
			selectMailbox(s, mailbox, "targetMailbox")
			s.Line("set mailboxMessages to every message of targetMailbox")
			s.Line("set messageCount to count of mailboxMessages")
			s.Line("set exportCount to 0")
			s.Block("repeat with aMessage in mailboxMessages", "end repeat", func(s *applescript.Script) {
				s.Block("try", "end try", func(s *applescript.Script) {
					s.Line("set messageSubject to subject of aMessage")
					s.Line("set messageSender to sender of aMessage")
					s.Line("set messageDate to date received of aMessage")
					s.Line("set messageContent to content of aMessage")
					s.Line("set exportCount to exportCount + 1")
					s.Linef(`set fileName to exportCount & "_" & messageSubject & ".%s"`, format)
					safeFileNameFragment(s, "fileName")
					s.Linef("set filePath to %s & fileName", applescript.Quote(exportDir+"/"))
					exportContentFragment(s, format)
					writeFileFragment(s)
					s.Mid("on error")
					// skip the message and keep exporting
				})
			})
			s.Linef(`set outputText to outputText & "%s Mailbox exported successfully!" & return & return`, readGlyph)
			s.Linef(`set outputText to outputText & "Mailbox: %s" & return`, applescript.Escape(mailbox))
			s.Line(`set outputText to outputText & "Total emails: " & messageCount & return`)
			s.Line(`set outputText to outputText & "Exported: " & exportCount & return`)
			s.Linef(`set outputText to outputText & "Location: %s" & return`, applescript.Escape(exportDir))
		})
		s.Line("return outputText")
	})

	return c.run(ctx, "export_emails", s.String())
}
