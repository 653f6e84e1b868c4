package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterSearchTools registers search and content retrieval tools.
func RegisterSearchTools(r *Registration) error {
	searchTool := mcp.NewTool("mail_search",
		mcp.WithDescription(r.describe("Search emails with combined filters: subject, sender, attachments, read status and age. Filters are ANDed together. Use mailbox \"All\" to search every mailbox except system folders.")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to search, or \"All\" for all non-system mailboxes (default: INBOX)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Description("Keep emails whose subject contains this text"),
		),
		mcp.WithString("sender",
			mcp.Description("Keep emails whose sender contains this text"),
		),
		mcp.WithBoolean("has_attachments",
			mcp.Description("Keep only emails with attachments (true) or without (false)"),
		),
		mcp.WithString("read_status",
			mcp.Description("Filter by read status: all, read or unread (default: all)"),
		),
		mcp.WithNumber("days_back",
			mcp.Description("Keep only emails received in the last N days (default: 0 for no age filter)"),
		),
		mcp.WithBoolean("include_content",
			mcp.Description("Include a content preview for each match (default: false)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum matches to return (default: 20, max: 50)"),
		),
	)

	r.Server.AddTool(searchTool, common.InstrumentedToolHandlerWithOperation(
		"mail_search", "search_emails", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, r.SC)
		}))

	getContentTool := mcp.NewTool("mail_get_content",
		mcp.WithDescription(r.describe("Find emails by subject keyword and return their full content previews")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject must contain"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to search, or \"All\" (default: INBOX)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum matches to return (default: 5)"),
		),
		mcp.WithNumber("max_content_length",
			mcp.Description("Content preview length in characters; 0 disables truncation (default: the server content limit, 300 unless configured)"),
		),
	)

	r.Server.AddTool(getContentTool, common.InstrumentedToolHandlerWithOperation(
		"mail_get_content", "get_email_with_content", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetContent(ctx, request, r.SC)
		}))

	threadTool := mcp.NewTool("mail_get_thread",
		mcp.WithDescription(r.describe("Collect the conversation thread for a subject: matches the topic with Re:/Fwd: prefixes stripped")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Thread topic; leading Re:/Fwd: prefixes are ignored"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to search, or \"All\" (default: INBOX)"),
		),
		mcp.WithNumber("max_messages",
			mcp.Description("Maximum thread messages to return (default: 20)"),
		),
	)

	r.Server.AddTool(threadTool, common.InstrumentedToolHandlerWithOperation(
		"mail_get_thread", "get_email_thread", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetThread(ctx, request, r.SC)
		}))

	newslettersTool := mcp.NewTool("mail_find_newsletters",
		mcp.WithDescription(r.describe("Find newsletter and bulk emails in a mailbox using sender domain and keyword heuristics")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to scan, or \"All\" (default: INBOX)"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum newsletters to return (default: 20)"),
		),
	)

	r.Server.AddTool(newslettersTool, common.InstrumentedToolHandlerWithOperation(
		"mail_find_newsletters", "search_emails", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFindNewsletters(ctx, request, r.SC)
		}))

	return nil
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	mailbox := optionalString(args, "mailbox", "INBOX")

	readStatus := optionalString(args, "read_status", "all")
	switch readStatus {
	case "all":
		readStatus = ""
	case "read", "unread":
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid read_status %q: must be all, read or unread", readStatus)), nil
	}

	crit := mail.SearchCriteria{
		SubjectContains: optionalString(args, "subject_keyword", ""),
		SenderContains:  optionalString(args, "sender", ""),
		ReadStatus:      readStatus,
		DaysBack:        optionalInt(args, "days_back", 0),
	}
	if val, ok := args["has_attachments"].(bool); ok {
		crit.HasAttachments = &val
	}

	includeContent := optionalBool(args, "include_content", false)
	maxResults := optionalInt(args, "max_results", 20)

	msgs, err := client.Search(ctx, account, mailbox, crit, includeContent, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search emails: %v", err)), nil
	}

	title := fmt.Sprintf("SEARCH RESULTS in %s (%s)", mailbox, account)
	return mcp.NewToolResultText(mail.RenderMessages(title, msgs)), nil
}

func handleGetContent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	mailbox := optionalString(args, "mailbox", "INBOX")
	maxResults := optionalInt(args, "max_results", 5)
	// An explicit zero disables truncation; an absent argument keeps the
	// configured limit.
	contentLimit := optionalInt(args, "max_content_length", mail.UseConfiguredLimit)

	report, err := client.GetWithContent(ctx, account, keyword, mailbox, maxResults, contentLimit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get email content: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func handleGetThread(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	mailbox := optionalString(args, "mailbox", "INBOX")
	maxMessages := optionalInt(args, "max_messages", 20)

	report, err := client.Thread(ctx, account, keyword, mailbox, maxMessages)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get email thread: %v", err)), nil
	}

	return mcp.NewToolResultText(report), nil
}

func handleFindNewsletters(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
	mailbox := optionalString(args, "mailbox", "INBOX")
	maxResults := optionalInt(args, "max_results", 20)

	msgs, err := client.FindNewsletters(ctx, account, mailbox, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to find newsletters: %v", err)), nil
	}

	title := fmt.Sprintf("NEWSLETTERS in %s (%s)", mailbox, account)
	return mcp.NewToolResultText(mail.RenderMessages(title, msgs)), nil
}
