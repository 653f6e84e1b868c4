package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterStatisticsTools registers reporting and attachment inspection tools.
func RegisterStatisticsTools(r *Registration) error {
	statsTool := mcp.NewTool("mail_get_statistics",
		mcp.WithDescription(r.describe("Produce an email statistics report: account overview, per-sender stats or per-mailbox breakdown")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("scope",
			mcp.Description("Report scope: account_overview, sender_stats or mailbox_breakdown (default: account_overview)"),
		),
		mcp.WithString("sender",
			mcp.Description("Sender filter for sender_stats (substring match)"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox for mailbox_breakdown (default: INBOX)"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("Activity window in days for overview and sender stats (default: 30)"),
		),
	)

	r.Server.AddTool(statsTool, common.InstrumentedToolHandlerWithOperation(
		"mail_get_statistics", "get_statistics", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetStatistics(ctx, request, r.SC)
		}))

	attachmentsTool := mcp.NewTool("mail_list_attachments",
		mcp.WithDescription(r.describe("List attachments on emails matching a subject keyword, with file name and size")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject must contain"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum matching emails to inspect (default: 1)"),
		),
	)

	r.Server.AddTool(attachmentsTool, common.InstrumentedToolHandlerWithOperation(
		"mail_list_attachments", "list_email_attachments", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAttachments(ctx, request, r.SC)
		}))

	return nil
}

func handleGetStatistics(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}

	scope := optionalString(args, "scope", string(mail.ScopeAccountOverview))
	if !mail.ValidStatScope(scope) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scope %q: must be account_overview, sender_stats or mailbox_breakdown", scope)), nil
	}

	sender := optionalString(args, "sender", "")
	mailbox := optionalString(args, "mailbox", "INBOX")
	daysBack := optionalInt(args, "days_back", 30)

	report, err := client.Statistics(ctx, account, mail.StatScope(scope), sender, mailbox, daysBack)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get statistics: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func handleListAttachments(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	maxResults := optionalInt(args, "max_results", 1)

	report, err := client.ListAttachments(ctx, account, keyword, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list attachments: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}
