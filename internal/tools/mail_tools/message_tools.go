package mail_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailbridge/mailbridge/internal/server"
	"github.com/mailbridge/mailbridge/internal/tools/common"
)

// RegisterMessageTools registers compose, reply, forward and move tools.
// These mutate Mail state and are skipped in read-only mode.
func RegisterMessageTools(r *Registration) error {
	composeTool := mcp.NewTool("mail_compose",
		mcp.WithDescription(r.describe("Compose and send a new email from the given account")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name to send from (exact, as shown in Mail.app)"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient addresses, comma-separated"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Email body text"),
		),
		mcp.WithString("cc",
			mcp.Description("CC addresses, comma-separated"),
		),
		mcp.WithString("bcc",
			mcp.Description("BCC addresses, comma-separated"),
		),
	)

	r.Server.AddTool(composeTool, common.InstrumentedToolHandlerWithOperation(
		"mail_compose", "compose_email", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCompose(ctx, request, r.SC)
		}))

	replyTool := mcp.NewTool("mail_reply",
		mcp.WithDescription(r.describe("Reply to the first inbox email whose subject contains the keyword")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject of the email to reply to must contain"),
		),
		mcp.WithString("reply_body",
			mcp.Required(),
			mcp.Description("Reply body text"),
		),
		mcp.WithBoolean("reply_to_all",
			mcp.Description("Reply to all recipients instead of only the sender (default: false)"),
		),
	)

	r.Server.AddTool(replyTool, common.InstrumentedToolHandlerWithOperation(
		"mail_reply", "reply_to_email", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReply(ctx, request, r.SC)
		}))

	forwardTool := mcp.NewTool("mail_forward",
		mcp.WithDescription(r.describe("Forward the first matching email to new recipients, optionally with an introduction")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject of the email to forward must contain"),
		),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient addresses, comma-separated"),
		),
		mcp.WithString("message",
			mcp.Description("Introduction text placed above the forwarded content"),
		),
		mcp.WithString("mailbox",
			mcp.Description("Mailbox to search for the email (default: INBOX)"),
		),
	)

	r.Server.AddTool(forwardTool, common.InstrumentedToolHandlerWithOperation(
		"mail_forward", "forward_email", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleForward(ctx, request, r.SC)
		}))

	moveTool := mcp.NewTool("mail_move",
		mcp.WithDescription(r.describe("Move emails matching a subject keyword from one mailbox to another")),
		mcp.WithString("account",
			mcp.Required(),
			mcp.Description("Account name (exact, as shown in Mail.app)"),
		),
		mcp.WithString("subject_keyword",
			mcp.Required(),
			mcp.Description("Text the subject of the emails to move must contain"),
		),
		mcp.WithString("to_mailbox",
			mcp.Required(),
			mcp.Description("Destination mailbox; created by Mail if it does not exist"),
		),
		mcp.WithString("from_mailbox",
			mcp.Description("Source mailbox (default: INBOX)"),
		),
		mcp.WithNumber("max_moves",
			mcp.Description("Maximum emails to move (default: 1)"),
		),
	)

	r.Server.AddTool(moveTool, common.InstrumentedToolHandlerWithOperation(
		"mail_move", "move_email", r.SC,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleMove(ctx, request, r.SC)
		}))

	return nil
}

func handleCompose(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, errResult := mailClient(sc)
	if errResult != nil {
		return errResult, nil
	}

	args := request.GetArguments()
	account, errResult := requiredString(args, "account")
	if errResult != nil {
		return errResult, nil
	}
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

	result, err := client.Compose(ctx, account, to, subject, body, cc, bcc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send email: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}

func handleReply(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	body, errResult := requiredString(args, "reply_body")
	if errResult != nil {
		return errResult, nil
	}
	replyAll := optionalBool(args, "reply_to_all", false)

	result, err := client.Reply(ctx, account, keyword, body, replyAll)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to send reply: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}

func handleForward(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	to, errResult := requiredString(args, "to")
	if errResult != nil {
		return errResult, nil
	}
	introduction := optionalString(args, "message", "")
	mailbox := optionalString(args, "mailbox", "INBOX")

	result, err := client.Forward(ctx, account, keyword, to, introduction, mailbox)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to forward email: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}

func handleMove(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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
	toMailbox, errResult := requiredString(args, "to_mailbox")
	if errResult != nil {
		return errResult, nil
	}
	fromMailbox := optionalString(args, "from_mailbox", "INBOX")
	maxMoves := optionalInt(args, "max_moves", 1)

	result, err := client.Move(ctx, account, keyword, fromMailbox, toMailbox, maxMoves)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move email: %v", err)), nil
	}

	return mcp.NewToolResultText(result), nil
}
