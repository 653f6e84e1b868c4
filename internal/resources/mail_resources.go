package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailbridge/mailbridge/internal/server"
)

// usageGuide is the static help text served at mailbridge://guide. It tells
// the assistant how the tool surface is organized without requiring a tool
// call.
const usageGuide = `# Apple Mail Bridge

This server exposes Apple Mail (Mail.app) through MCP tools. Mail.app must be
running on the same machine; every tool drives it through AppleScript.

## Finding things
- mail_list_accounts, mail_get_unread_count, mail_inbox_overview for a quick
  picture of all accounts.
- mail_list_inbox, mail_get_recent, mail_list_mailboxes for one account.
- mail_search combines subject, sender, attachment, read-status and age
  filters. Use mailbox "All" to search everything except Trash/Junk/Spam.
- mail_get_content, mail_get_thread, mail_find_newsletters for deeper reads.

## Acting on emails
Emails are addressed by subject keyword: each write tool acts on the first
message whose subject contains the keyword, in mailbox order. Be specific to
avoid acting on the wrong message.

- mail_compose, mail_reply, mail_forward send mail.
- mail_move, mail_update_status, mail_manage_trash, mail_manage_drafts change
  mailbox state. mail_update_status and mail_manage_trash accept an array of
  subject keywords for batch work.
- mail_export and mail_save_attachment write files to the local disk.

Write tools are absent when the server runs in read-only mode.
`

// RegisterMailResources registers the static usage guide and the live
// account list.
func RegisterMailResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	guideResource := mcp.NewResource(
		"mailbridge://guide",
		"Apple Mail Usage Guide",
		mcp.WithResourceDescription("How the Apple Mail tools are organized and how emails are addressed"),
		mcp.WithMIMEType("text/markdown"),
	)

	s.AddResource(guideResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			&mcp.TextResourceContents{
				URI:      request.Params.URI,
				MIMEType: "text/markdown",
				Text:     usageGuide,
			},
		}, nil
	})

	accountsResource := mcp.NewResource(
		"mailbridge://accounts",
		"Mail Accounts",
		mcp.WithResourceDescription("Email accounts currently configured in Mail.app"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(accountsResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccounts(ctx, request, sc)
	})

	return nil
}

// handleAccounts returns the Mail.app account list as JSON.
func handleAccounts(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client := sc.MailClient()
	if client == nil {
		return nil, fmt.Errorf("no Mail client available")
	}

	accounts, err := client.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	accountData := map[string]interface{}{
		"accounts": accounts,
		"count":    len(accounts),
	}

	jsonData, err := json.MarshalIndent(accountData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
