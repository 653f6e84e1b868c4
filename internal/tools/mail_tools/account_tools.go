package mail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterAccountTools registers account-level tools with the MCP server.
func RegisterAccountTools(r *Registration) error {
	listAccountsTool := mcp.NewTool("mail_list_accounts",
		mcp.WithDescription(r.describe("List all email accounts configured in Apple Mail")),
	)

	r.Server.AddTool(listAccountsTool, common.InstrumentedToolHandlerWithOperation(
		"mail_list_accounts", "list_accounts", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListAccounts(ctx, request, r.SC)
		}))

	unreadCountTool := mcp.NewTool("mail_get_unread_count",
		mcp.WithDescription(r.describe("Get the number of unread emails in each account's inbox")),
	)

	r.Server.AddTool(unreadCountTool, common.InstrumentedToolHandlerWithOperation(
		"mail_get_unread_count", "get_unread_count", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUnreadCount(ctx, request, r.SC)
		}))

	overviewTool := mcp.NewTool("mail_inbox_overview",
		mcp.WithDescription(r.describe("Get a full inbox overview: unread counts per account, mailbox structure, a preview of recent emails, and suggested next actions")),
	)

	r.Server.AddTool(overviewTool, common.InstrumentedToolHandlerWithOperation(
		"mail_inbox_overview", "get_inbox_overview", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInboxOverview(ctx, request, r.SC)
		}))

	return nil
}

func handleListAccounts(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list accounts: %v", err)), nil
	}

	if len(accounts) == 0 {
		return mcp.NewToolResultText("No accounts configured in Mail.app"), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d account(s):\n", len(accounts))
	for i, name := range accounts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func handleUnreadCount(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	counts, err := client.UnreadCounts(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get unread counts: %v", err)), nil
	}

	return mcp.NewToolResultText(mail.RenderUnreadCounts(counts)), nil
}

func handleInboxOverview(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	report, err := client.Overview(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to build inbox overview: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}
