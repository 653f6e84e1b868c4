package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterExportTools registers tools that write files to the local disk.
// These are skipped in read-only mode.
func RegisterExportTools(r *Registration) error {
	exportTool := mcp.NewTool("mail_export",
		mcp.WithDescription(r.describe("Export a single email or an entire mailbox to text or HTML files on disk")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("scope",
			mcp.Description("Export scope: single_email or entire_mailbox (default: single_email)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Description("Subject text identifying the email; required for single_email"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to export from (default: INBOX)"),
		),
		mcp.WithString("save_directory",
			mcp.Description("Directory for exported files (default: ~/Desktop)"),
		),
		mcp.WithString("format",
			mcp.Description("File format: txt or html (default: txt)"),
		),
	)

	r.Server.AddTool(exportTool, common.InstrumentedToolHandlerWithOperation(
		"mail_export", "export_emails", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleExport(ctx, request, r.SC)
		}))

	saveAttachmentTool := mcp.NewTool("mail_save_attachment",
		mcp.WithDescription(r.describe("Save a named attachment from the first email matching a subject keyword to a local path")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject of the email must contain"),
		),
		mcp.WithString("attachment_name",
			mcp.Required(),
			mcp.Description("File name (or part of it) of the attachment to save"),
		),
		mcp.WithString("save_path",
			mcp.Required(),
			mcp.Description("Destination file path; ~ is expanded"),
		),
	)

	r.Server.AddTool(saveAttachmentTool, common.InstrumentedToolHandlerWithOperation(
		"mail_save_attachment", "save_email_attachment", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSaveAttachment(ctx, request, r.SC)
		}))

	return nil
}

func handleExport(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}

	scope := optionalString(args, "scope", string(mail.ExportSingle))
	if !mail.ValidExportScope(scope) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scope %q: must be single_email or entire_mailbox", scope)), nil
	}
	format := optionalString(args, "format", string(mail.ExportTXT))
	if !mail.ValidExportFormat(format) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q: must be txt or html", format)), nil
	}

	mailbox := optionalString(args, "mailbox", "INBOX")
	saveDirectory := optionalString(args, "save_directory", "~/Desktop")

	var result string
	var err error

	switch mail.ExportScope(scope) {
	case mail.ExportSingle:
		keyword, errResult := requiredString(args, "subject_keyword")
		if errResult != nil {
			return errResult, nil
		}
		result, err = client.ExportSingle(ctx, account, keyword, mailbox, saveDirectory, mail.ExportFormat(format))
	case mail.ExportMailbox:
		result, err = client.ExportMailbox(ctx, account, mailbox, saveDirectory, mail.ExportFormat(format))
	}

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to export emails: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}

func handleSaveAttachment(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	keyword, errResult := requiredString(args, "subject_keyword")
	if errResult != nil {
		return errResult, nil
	}
	attachmentName, errResult := requiredString(args, "attachment_name")
	if errResult != nil {
		return errResult, nil
	}
	savePath, errResult := requiredString(args, "save_path")
	if errResult != nil {
		return errResult, nil
	}

	result, err := client.SaveAttachment(ctx, account, keyword, attachmentName, savePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save attachment: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}
