package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessageList(t *testing.T) {
	raw := `INBOX EMAILS - ALL ACCOUNTS

----------------------------------------
ACCOUNT: Work (2 messages)

✉ Quarterly report due
   From: boss@example.com
   Date: Monday, 3 August 2026 at 10:02:11
   Preview: Please send the numbers by...

✓ Lunch?
   From: Alice <alice@example.com>
   Date: Monday, 3 August 2026 at 09:15:00

========================================
TOTAL EMAILS: 2
========================================
`

	msgs := ParseMessageList(raw)
	if assert.Len(t, msgs, 2) {
		assert.Equal(t, "Quarterly report due", msgs[0].Subject)
		assert.Equal(t, "boss@example.com", msgs[0].Sender)
		assert.Equal(t, "Monday, 3 August 2026 at 10:02:11", msgs[0].Date)
		assert.Equal(t, "Please send the numbers by...", msgs[0].Preview)
		assert.False(t, msgs[0].Read)

		assert.Equal(t, "Lunch?", msgs[1].Subject)
		assert.True(t, msgs[1].Read)
		assert.Empty(t, msgs[1].Preview)
	}
}

func TestParseMessageListNoTotalSentinel(t *testing.T) {
	// Reports without the closing sentinel still flush the last record.
	raw := "✉ Hanging message\n   From: someone@example.com\n"
	msgs := ParseMessageList(raw)
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, "Hanging message", msgs[0].Subject)
	}
}

func TestParseMessageListEmpty(t *testing.T) {
	assert.Empty(t, ParseMessageList(""))
	assert.Empty(t, ParseMessageList("INBOX EMAILS\nTOTAL EMAILS: 0\n"))
}

func TestParseRecords(t *testing.T) {
	raw := "Subj A|||a@example.com|||Mon 3 Aug|||unread|||INBOX|||preview text\n" +
		"Subj B|||b@example.com|||Tue 4 Aug|||read|||Archive\n"

	msgs := ParseRecords(raw)
	if assert.Len(t, msgs, 2) {
		assert.Equal(t, "Subj A", msgs[0].Subject)
		assert.False(t, msgs[0].Read)
		assert.Equal(t, "INBOX", msgs[0].Mailbox)
		assert.Equal(t, "preview text", msgs[0].Preview)

		assert.True(t, msgs[1].Read)
		assert.Empty(t, msgs[1].Preview)
	}
}

func TestParseRecordsBoundedSplit(t *testing.T) {
	// A preview containing the delimiter must stay in one piece.
	raw := "S|||x@example.com|||Mon|||read|||INBOX|||see ||| marks inside\n"
	msgs := ParseRecords(raw)
	if assert.Len(t, msgs, 1) {
		assert.Equal(t, "see ||| marks inside", msgs[0].Preview)
	}
}

func TestParseRecordsSkipsMalformed(t *testing.T) {
	raw := "garbage line\nonly|||two fields\n\n"
	assert.Empty(t, ParseRecords(raw))
}

func TestParseUnreadCounts(t *testing.T) {
	counts := ParseUnreadCounts("Work:3|Personal:0|Broken:ERROR")
	if assert.Len(t, counts, 3) {
		assert.Equal(t, UnreadCount{Account: "Work", Count: 3}, counts[0])
		assert.Equal(t, UnreadCount{Account: "Personal", Count: 0}, counts[1])
		assert.Equal(t, UnreadCount{Account: "Broken", Count: -1}, counts[2])
	}
}

func TestParseUnreadCountsColonInName(t *testing.T) {
	counts := ParseUnreadCounts("Exchange: Work:7")
	if assert.Len(t, counts, 1) {
		assert.Equal(t, "Exchange: Work", counts[0].Account)
		assert.Equal(t, 7, counts[0].Count)
	}
}

func TestParseUnreadCountsEmpty(t *testing.T) {
	assert.Empty(t, ParseUnreadCounts(""))
	assert.Empty(t, ParseUnreadCounts("   "))
}

func TestRenderMessagesRoundTrip(t *testing.T) {
	msgs := []Message{
		{Subject: "Hello", Sender: "a@example.com", Date: "Mon", Mailbox: "INBOX", Preview: "hi"},
		{Subject: "Done", Sender: "b@example.com", Date: "Tue", Read: true},
	}

	text := RenderMessages("SEARCH RESULTS", msgs)
	assert.Contains(t, text, unreadGlyph+" Hello")
	assert.Contains(t, text, readGlyph+" Done")
	assert.Contains(t, text, "FOUND: 2 matching email(s)")

	// The rendered report parses back into the same essentials.
	parsed := ParseMessageList(text)
	if assert.Len(t, parsed, 2) {
		assert.Equal(t, msgs[0].Subject, parsed[0].Subject)
		assert.Equal(t, msgs[1].Read, parsed[1].Read)
	}
}

func TestRenderUnreadCounts(t *testing.T) {
	text := RenderUnreadCounts([]UnreadCount{
		{Account: "Work", Count: 2},
		{Account: "Broken", Count: -1},
	})
	assert.Contains(t, text, "Work: 2 unread")
	assert.Contains(t, text, "Broken: error reading inbox")
	assert.Contains(t, text, "TOTAL UNREAD: 2")
}
