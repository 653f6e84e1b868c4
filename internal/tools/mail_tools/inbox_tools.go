package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterInboxTools registers inbox and mailbox listing tools.
func RegisterInboxTools(r *Registration) error {
	listInboxTool := mcp.NewTool("mail_list_inbox",
		mcp.WithDescription(r.describe("List emails in the inbox of all accounts, or of one account")),
		mcp.WithString("account",
			mcp.Description("Account name to list. Omit to list all accounts."),
		),
		mcp.WithNumber("max_emails",
			mcp.Description("Maximum emails per account (default: 0 for unlimited)"),
		),
		mcp.WithBoolean("include_read",
			mcp.Description("Include already-read emails (default: true)"),
		),
	)

	r.Server.AddTool(listInboxTool, common.InstrumentedToolHandlerWithOperation(
		"mail_list_inbox", "list_inbox", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListInbox(ctx, request, r.SC)
		}))

	recentTool := mcp.NewTool("mail_get_recent",
		mcp.WithDescription(r.describe("Get the most recent emails from one account's inbox")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of emails to return (default: 10, max: 50)"),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Include a content preview for each email (default: false)"),
		),
	)

	r.Server.AddTool(recentTool, common.InstrumentedToolHandlerWithOperation(
		"mail_get_recent", "get_recent_emails", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetRecent(ctx, request, r.SC)
		}))

	listMailboxesTool := mcp.NewTool("mail_list_mailboxes",
		mcp.WithDescription(r.describe("List the mailbox (folder) structure of all accounts or one account. Nested mailboxes are annotated with their Parent/Child path.")),
		mcp.WithString("account",
			mcp.Description("Account name to list. Omit to list all accounts."),
		),
		mcp.WithBoolean("include_counts",
			mcp.Description("Include total and unread message counts per mailbox (default: true)"),
		),
	)

	r.Server.AddTool(listMailboxesTool, common.InstrumentedToolHandlerWithOperation(
		"mail_list_mailboxes", "list_mailboxes", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMailboxes(ctx, request, r.SC)
		}))

	return nil
}

func handleListInbox(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account := optionalString(args, "account", "")
	maxEmails := optionalInt(args, "max_emails", 0)
	includeRead := optionalBool(args, "include_read", true)

	report, err := client.ListInbox(ctx, account, maxEmails, includeRead)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list inbox: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func handleGetRecent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	count := optionalInt(args, "count", 10)
	includeContent := optionalBool(args, "include_content", false)

	report, err := client.RecentMessages(ctx, account, count, includeContent)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get recent emails: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func handleListMailboxes(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account := optionalString(args, "account", "")
	includeCounts := optionalBool(args, "include_counts", true)

	report, err := client.ListMailboxes(ctx, account, includeCounts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list mailboxes: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}
