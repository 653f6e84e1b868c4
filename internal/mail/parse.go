package mail

import (
	"strconv"
	"strings"
)

// Output markers shared between the script generators and the parsers.
// Generators emit them, parsers key on them; keep the two sides in sync.
const (
	unreadGlyph    = "✉" // ✉
	readGlyph      = "✓" // ✓
	warnGlyph      = "⚠" // ⚠
	recordDelim    = "|||"
	countDelim     = "|"
	blockSeparator = "----------------------------------------"
	bannerLine     = "========================================"
	totalSentinel  = "TOTAL EMAILS:"
)

// ParseMessageList parses glyph-formatted report text into records. Lines it
// does not recognize (banners, separators, the total sentinel) are skipped,
// so it accepts the full report as produced by the listing scripts.
func ParseMessageList(raw string) []Message {
	var (
		msgs []Message
		cur  *Message
	)
	flush := func() {
		if cur != nil {
			msgs = append(msgs, *cur)
			cur = nil
		}
	}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, unreadGlyph+" "):
			flush()
			cur = &Message{Subject: strings.TrimPrefix(line, unreadGlyph+" ")}
		case strings.HasPrefix(line, readGlyph+" "):
			flush()
			cur = &Message{Subject: strings.TrimPrefix(line, readGlyph+" "), Read: true}
		case cur == nil:
			// banner or noise before the first message
		case strings.HasPrefix(line, "From: "):
			cur.Sender = strings.TrimPrefix(line, "From: ")
		case strings.HasPrefix(line, "Date: "):
			cur.Date = strings.TrimPrefix(line, "Date: ")
		case strings.HasPrefix(line, "Mailbox: "):
			cur.Mailbox = strings.TrimPrefix(line, "Mailbox: ")
		case strings.HasPrefix(line, "Preview: "):
			cur.Preview = strings.TrimPrefix(line, "Preview: ")
		case line == blockSeparator || strings.HasPrefix(line, totalSentinel):
			flush()
		}
	}
	flush()
	return msgs
}

// ParseRecords parses delimiter-separated records, one per line, into
// messages. Fields are subject, sender, date, read flag, mailbox and
// preview. The split is bounded so a preview containing the delimiter stays
// intact; short lines are skipped.
func ParseRecords(raw string) []Message {
	var msgs []Message
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, recordDelim, 6)
		if len(fields) < 5 {
			continue
		}
		m := Message{
			Subject: fields[0],
			Sender:  fields[1],
			Date:    fields[2],
			Read:    fields[3] == "read",
			Mailbox: fields[4],
		}
		if len(fields) == 6 {
			m.Preview = fields[5]
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// ParseUnreadCounts parses "name:count|name:count" output. A count of ERROR,
// or one that does not parse, becomes -1 so one broken account does not hide
// the others. Account names keep any colons they contain; only the last
// colon separates the count.
func ParseUnreadCounts(raw string) []UnreadCount {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var counts []UnreadCount
	for _, pair := range strings.Split(raw, countDelim) {
		idx := strings.LastIndex(pair, ":")
		if idx < 0 {
			continue
		}
		uc := UnreadCount{Account: pair[:idx], Count: -1}
		if n, err := strconv.Atoi(strings.TrimSpace(pair[idx+1:])); err == nil {
			uc.Count = n
		}
		counts = append(counts, uc)
	}
	return counts
}
