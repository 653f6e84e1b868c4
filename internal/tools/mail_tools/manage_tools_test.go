package mail_tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUpdateStatusRejectsBadAction(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"action":          "shred",
		"subject_keyword": "urgent",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `invalid action "shred"`)
	assert.Equal(t, 0, runner.calls)
}

func TestHandleUpdateStatusRequiresKeywordOrSender(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "mark_read",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "subject_keyword or sender is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleUpdateStatusSenderOnly(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "mark_read",
		"sender":  "noreply@",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, runner.calls)
	assert.Contains(t, runner.script, `messageSender contains "noreply@"`)
}

func TestHandleUpdateStatusSingleKeyword(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"action":          "flag",
		"subject_keyword": "urgent",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "ok", resultText(t, result))
	assert.Equal(t, 1, runner.calls)
}

func TestHandleUpdateStatusBatchKeywords(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"action":          "mark_read",
		"subject_keyword": []interface{}{"invoice", "receipt", "statement"},
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 3, runner.calls)

	text := resultText(t, result)
	assert.Contains(t, text, `"total": 3`)
	assert.Contains(t, text, `"successful": 3`)
	assert.Contains(t, text, `"id": "invoice"`)
}

func TestHandleUpdateStatusJSONStringArray(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleUpdateStatus(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"action":          "mark_read",
		"subject_keyword": `["invoice", "receipt"]`,
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 2, runner.calls)
}

func TestHandleManageTrashRejectsBadAction(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleManageTrash(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "vaporize",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `invalid action "vaporize"`)
	assert.Equal(t, 0, runner.calls)
}

func TestHandleManageTrashEmptyTrashNeedsNoFilters(t *testing.T) {
	sc, runner := newTestContext(t, "done")

	result, err := handleManageTrash(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "empty_trash",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 1, runner.calls)
}

func TestHandleManageTrashRequiresKeywordOrSender(t *testing.T) {
	sc, runner := newTestContext(t, "done")

	result, err := handleManageTrash(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "move_to_trash",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "subject_keyword or sender is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleManageTrashBatchKeywords(t *testing.T) {
	sc, runner := newTestContext(t, "done")

	result, err := handleManageTrash(context.Background(), newRequest(map[string]interface{}{
		"account":         "Work",
		"action":          "move_to_trash",
		"subject_keyword": []interface{}{"promo", "deals"},
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, 2, runner.calls)
	assert.Contains(t, resultText(t, result), `"total": 2`)
}

func TestHandleManageDraftsRejectsBadAction(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleManageDrafts(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "archive",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), `invalid action "archive"`)
	assert.Equal(t, 0, runner.calls)
}

func TestHandleManageDraftsCreateRequiresFields(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleManageDrafts(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "create",
		"to":      "a@example.com",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "subject is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleManageDraftsSendRequiresDraftSubject(t *testing.T) {
	sc, runner := newTestContext(t, "ok")

	result, err := handleManageDrafts(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "send",
	}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "draft_subject is required")
	assert.Equal(t, 0, runner.calls)
}

func TestHandleManageDraftsList(t *testing.T) {
	sc, runner := newTestContext(t, "DRAFTS for Work")

	result, err := handleManageDrafts(context.Background(), newRequest(map[string]interface{}{
		"account": "Work",
		"action":  "list",
	}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "DRAFTS for Work", resultText(t, result))
	assert.Equal(t, 1, runner.calls)
}
