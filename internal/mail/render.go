package mail

import (
	"fmt"
	"strings"
)

// RenderMessages formats parsed records back into the glyph report layout,
// under the given title. Structured data stays available to callers that
// want it; this is the text surface handed to the assistant.
func RenderMessages(title string, msgs []Message) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, m := range msgs {
		glyph := unreadGlyph
		if m.Read {
			glyph = readGlyph
		}
		fmt.Fprintf(&sb, "%s %s\n", glyph, m.Subject)
		fmt.Fprintf(&sb, "   From: %s\n", m.Sender)
		fmt.Fprintf(&sb, "   Date: %s\n", m.Date)
		if m.Mailbox != "" {
			fmt.Fprintf(&sb, "   Mailbox: %s\n", m.Mailbox)
		}
		if m.Preview != "" {
			fmt.Fprintf(&sb, "   Preview: %s\n", m.Preview)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(bannerLine)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "FOUND: %d matching email(s)\n", len(msgs))
	sb.WriteString(bannerLine)
	sb.WriteString("\n")
	return sb.String()
}

// RenderUnreadCounts formats per-account unread totals, marking accounts
// that could not be read.
func RenderUnreadCounts(counts []UnreadCount) string {
	var sb strings.Builder
	sb.WriteString("UNREAD EMAILS BY ACCOUNT\n")
	sb.WriteString(blockSeparator)
	sb.WriteString("\n")
	total := 0
	for _, uc := range counts {
		if uc.Count < 0 {
			fmt.Fprintf(&sb, "  %s %s: error reading inbox\n", warnGlyph, uc.Account)
			continue
		}
		total += uc.Count
		fmt.Fprintf(&sb, "  %s: %d unread\n", uc.Account, uc.Count)
	}
	fmt.Fprintf(&sb, "\nTOTAL UNREAD: %d\n", total)
	return sb.String()
}
