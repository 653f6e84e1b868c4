package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/batch"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterManageTools registers status, trash and draft management tools.
// These mutate Mail state and are skipped in read-only mode.
func RegisterManageTools(r *Registration) error {
	statusTool := mcp.NewTool("mail_update_status",
		mcp.WithDescription(r.describe("Mark emails read/unread or flag/unflag them. Targets are selected by subject keyword, sender or both. subject_keyword accepts a single string or an array for batch updates.")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Status action: mark_read, mark_unread, flag or unflag"),
		),
		mcp.WithString("subject_keyword",
			mcp.Description("Subject text to match, or a JSON array of subjects for batch updates"),
		),
		mcp.WithString("sender",
			mcp.Description("Sender text to match (substring, case-insensitive)"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to operate on (default: INBOX)"),
		),
		mcp.WithNumber("max_updates",
			mcp.Description("Maximum emails to update per keyword (default: 10)"),
		),
	)

	r.Server.AddTool(statusTool, common.InstrumentedToolHandlerWithOperation(
		"mail_update_status", "update_email_status", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateStatus(ctx, request, r.SC)
		}))

	trashTool := mcp.NewTool("mail_manage_trash",
		mcp.WithDescription(r.describe("Move emails to trash, delete them permanently or empty the trash. subject_keyword accepts a single string or an array for batch deletes.")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Trash action: move_to_trash, delete_permanent or empty_trash"),
		),
		mcp.WithString("subject_keyword",
			mcp.Description("Subject text to match, or a JSON array of subjects for batch deletes"),
		),
		mcp.WithString("sender",
			mcp.Description("Sender text to match (substring, case-insensitive)"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to operate on (default: INBOX)"),
		),
		mcp.WithNumber("max_deletes",
			mcp.Description("Maximum emails to delete per keyword (default: 5)"),
		),
	)

	r.Server.AddTool(trashTool, common.InstrumentedToolHandlerWithOperation(
		"mail_manage_trash", "manage_trash", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleManageTrash(ctx, request, r.SC)
		}))

	draftsTool := mcp.NewTool("mail_manage_drafts",
		mcp.WithDescription(r.describe("List, create, send or delete draft emails")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("Draft action: list, create, send or delete"),
		),
		mcp.WithString("to",
			mcp.Description("Recipient addresses for create, comma-separated"),
		),
		mcp.WithString("subject",
			mcp.Description("Draft subject for create"),
		),
		mcp.WithString("body",
			mcp.Description("Draft body for create"),
		),
		mcp.WithString("cc",
			mcp.Description("CC addresses for create, comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC addresses for create, comma-separated"),
		),
		mcp.WithString("draft_subject",
			mcp.Description("Subject text identifying the draft for send and delete"),
		),
	)

	r.Server.AddTool(draftsTool, common.InstrumentedToolHandlerWithOperation(
		"mail_manage_drafts", "manage_drafts", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleManageDrafts(ctx, request, r.SC)
		}))

	return nil
}

func handleUpdateStatus(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	action, errResult := requiredString(args, "action")
	if errResult != nil {
		return errResult, nil
	}
	if !mail.ValidStatusAction(action) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be mark_read, mark_unread, flag or unflag", action)), nil
	}

	sender := optionalString(args, "sender", "")
	mailbox := optionalString(args, "mailbox", "INBOX")
	maxUpdates := optionalInt(args, "max_updates", 10)

	keywordArg, hasKeyword := args["subject_keyword"]
	if !hasKeyword {
		if sender == "" {
			return mcp.NewToolResultError("subject_keyword or sender is required"), nil
		}
		result, err := client.UpdateStatus(ctx, account, mail.StatusAction(action), "", sender, mailbox, maxUpdates)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update email status: %v", err)), nil
		}
		return mcp.NewToolResultText(result), nil
	}

	keywords, err := batch.ParseStringOrArray(keywordArg, "subject_keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(keywords) == 1 {
		result, err := client.UpdateStatus(ctx, account, mail.StatusAction(action), keywords[0], sender, mailbox, maxUpdates)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update email status: %v", err)), nil
		}
		return mcp.NewToolResultText(result), nil
	}

	results := batch.ProcessBatch(keywords, func(keyword string) (string, error) {
		return client.UpdateStatus(ctx, account, mail.StatusAction(action), keyword, sender, mailbox, maxUpdates)
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleManageTrash(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	action, errResult := requiredString(args, "action")
	if errResult != nil {
		return errResult, nil
	}
	if !mail.ValidTrashAction(action) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be move_to_trash, delete_permanent or empty_trash", action)), nil
	}

	sender := optionalString(args, "sender", "")
	mailbox := optionalString(args, "mailbox", "INBOX")
	maxDeletes := optionalInt(args, "max_deletes", 5)

	keywordArg, hasKeyword := args["subject_keyword"]
	if !hasKeyword || mail.TrashAction(action) == mail.TrashEmpty {
		if mail.TrashAction(action) != mail.TrashEmpty && sender == "" {
			return mcp.NewToolResultError("subject_keyword or sender is required"), nil
		}
		result, err := client.ManageTrash(ctx, account, mail.TrashAction(action), "", sender, mailbox, maxDeletes)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to manage trash: %v", err)), nil
		}
		return mcp.NewToolResultText(result), nil
	}

	keywords, err := batch.ParseStringOrArray(keywordArg, "subject_keyword")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(keywords) == 1 {
		result, err := client.ManageTrash(ctx, account, mail.TrashAction(action), keywords[0], sender, mailbox, maxDeletes)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to manage trash: %v", err)), nil
		}
		return mcp.NewToolResultText(result), nil
	}

	results := batch.ProcessBatch(keywords, func(keyword string) (string, error) {
		return client.ManageTrash(ctx, account, mail.TrashAction(action), keyword, sender, mailbox, maxDeletes)
	})
	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleManageDrafts(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	action, errResult := requiredString(args, "action")
	if errResult != nil {
		return errResult, nil
	}
	if !mail.ValidDraftAction(action) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be list, create, send or delete", action)), nil
	}

	var result string
	var err error

	switch mail.DraftAction(action) {
	case mail.DraftList:
		result, err = client.ListDrafts(ctx, account)
	case mail.DraftCreate:
		to, errResult := requiredString(args, "to")
		if errResult != nil {
			return errResult, nil
		}
		subject, errResult := requiredString(args, "subject")
		if errResult != nil {
			return errResult, nil
		}
		body, errResult := requiredString(args, "body")
		if errResult != nil {
			return errResult, nil
		}
		cc := optionalString(args, "cc", "")
		bcc := optionalString(args, "bcc", "")
		result, err = client.CreateDraft(ctx, account, to, subject, body, cc, bcc)
	case mail.DraftSend:
		keyword, errResult := requiredString(args, "draft_subject")
		if errResult != nil {
			return errResult, nil
		}
		result, err = client.SendDraft(ctx, account, keyword)
	case mail.DraftDelete:
		keyword, errResult := requiredString(args, "draft_subject")
		if errResult != nil {
			return errResult, nil
		}
		result, err = client.DeleteDraft(ctx, account, keyword)
	}

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to manage drafts: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}
