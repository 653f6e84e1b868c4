package mail_tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleSearchRejectsBadReadStatus(t *testing.T) {
	sc, runner := newTestContext(t, "")

	result, err := handleSearch(context.Background(), newRequest(map[string]interface{}{
		"account":     "Work",
		"read_status": "skimmed",
	}), sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "invalid read_status")
	// Validation failures must not spawn a script.
	assert.Equal(t, 0, runner.calls)
}

func TestHandleSearchBuildsCriteria(t *testing.T) {
	sc, runner := newTestContext(t, "")

	result, err := handleSearch(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"subject_keyword": "invoice",
		"sender":          "billing@",
		"has_attachments": true,
		"read_status":     "unread",
		"days_back":       float64(7),
	}), sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	assert.Contains(t, runner.script, `messageSubject contains "invoice"`)
	assert.Contains(t, runner.script, `messageSender contains "billing@"`)
	assert.Contains(t, runner.script, "count of mail attachments")
	assert.Contains(t, runner.script, "messageRead is false")
	assert.Contains(t, runner.script, "cutoffDate")
}

func TestHandleSearchOmitsAttachmentFilterWhenUnset(t *testing.T) {
	sc, runner := newTestContext(t, "")

	_, err := handleSearch(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
	}), sc)
	require.NoError(t, err)
	assert.NotContains(t, runner.script, "mail attachments")
}

func TestHandleSearchRequiresAccount(t *testing.T) {
	sc, runner := newTestContext(t, "")

	result, err := handleSearch(context.Background(), newRequest(map[string]interface{}{}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "account is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleGetContentDefaultsMailbox(t *testing.T) {
	sc, runner := newTestContext(t, "report text")

	result, err := handleGetContent(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"subject_keyword": "report",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "report text", resultText(t, result))
	assert.Contains(t, runner.script, `mailbox "INBOX" of targetAccount`)
}

func TestHandleGetContentLengthArg(t *testing.T) {
	sc, runner := newTestContext(t, "report text")

	// Absent argument keeps the configured limit.
	_, err := handleGetContent(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"subject_keyword": "report",
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, runner.script, "if length of msgContent > 300 then")

	// An explicit zero disables truncation.
	_, err = handleGetContent(context.Background(), newRequest(map[string]interface{}{
		"account":            "Work",
		"subject_keyword":    "report",
		"max_content_length": float64(0),
	}), sc)
	require.NoError(t, err)
	assert.NotContains(t, runner.script, "if length of msgContent >")

	_, err = handleGetContent(context.Background(), newRequest(map[string]interface{}{
		"account":            "Work",
		"subject_keyword":    "report",
		"max_content_length": float64(120),
	}), sc)
	require.NoError(t, err)
	assert.Contains(t, runner.script, "if length of msgContent > 120 then")
}

func TestHandleGetThreadRequiresKeyword(t *testing.T) {
	sc, runner := newTestContext(t, "")

	result, err := handleGetThread(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "subject_keyword is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleFindNewslettersRendersTitle(t *testing.T) {
	sc, _ := newTestContext(t, "Weekly Digest|||news@example.com|||Mon|||read|||INBOX\n")

	result, err := handleFindNewsletters(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "NEWSLETTERS in INBOX (Work)")
	assert.Contains(t, text, "Weekly Digest")
}
