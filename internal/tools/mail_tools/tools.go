package mail_tools

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
)

// Registration carries the shared pieces each tool registration needs.
type Registration struct {
	Server *mcpserver.MCPServer
	SC     *server.ServerContext

	// ReadOnly suppresses registration of tools that mutate mailboxes.
	ReadOnly bool

	// Instructions is extra operator-provided text appended to every tool
	// description at registration time.
	Instructions string
}

// describe appends the configured extra instructions to a tool description.
func (r *Registration) describe(text string) string {
	if r.Instructions == "" {
		return text
	}
	return text + "\n\n" + r.Instructions
}

// RegisterMailTools registers all Apple Mail tools with the MCP server.
// Write tools are skipped when readOnly is set.
func RegisterMailTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool, instructions string) error {
	r := &Registration{
		Server:       s,
		SC:           sc,
		ReadOnly:     readOnly,
		Instructions: instructions,
	}

	if err := RegisterAccountTools(r); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}
	if err := RegisterInboxTools(r); err != nil {
		return fmt.Errorf("failed to register inbox tools: %w", err)
	}
	if err := RegisterSearchTools(r); err != nil {
		return fmt.Errorf("failed to register search tools: %w", err)
	}
	if err := RegisterStatisticsTools(r); err != nil {
		return fmt.Errorf("failed to register statistics tools: %w", err)
	}

	if readOnly {
		return nil
	}

	if err := RegisterMessageTools(r); err != nil {
		return fmt.Errorf("failed to register message tools: %w", err)
	}
	if err := RegisterManageTools(r); err != nil {
		return fmt.Errorf("failed to register manage tools: %w", err)
	}
	if err := RegisterExportTools(r); err != nil {
		return fmt.Errorf("failed to register export tools: %w", err)
	}

	return nil
}

// mailClient fetches the shared Mail client, returning a tool error result
// when the server was assembled without one.
func mailClient(sc *server.ServerContext) (*mail.Client, *mcp.CallToolResult) {
	client := sc.MailClient()
	if client == nil {
		return nil, mcp.NewToolResultError("Mail client is not configured")
	}
	return client, nil
}

// requiredString extracts a required non-empty string argument.
func requiredString(args map[string]interface{}, key string) (string, *mcp.CallToolResult) {
	val, ok := args[key].(string)
	if !ok || val == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s is required", key))
	}
	return val, nil
}

// optionalString extracts an optional string argument, falling back to def.
func optionalString(args map[string]interface{}, key, def string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return def
}

// optionalInt extracts an optional number argument, falling back to def.
// JSON numbers arrive as float64.
func optionalInt(args map[string]interface{}, key string, def int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	return def
}

// optionalBool extracts an optional boolean argument, falling back to def.
func optionalBool(args map[string]interface{}, key string, def bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return def
}
