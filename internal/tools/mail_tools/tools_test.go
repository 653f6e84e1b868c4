package mail_tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
)

// fakeRunner records the script it was handed and replies with canned
// output, so handlers are testable without osascript.
type fakeRunner struct {
	script string
	calls  int
	out    string
	err    error
}

func (f *fakeRunner) Run(_ context.Context, script string) (string, error) {
	f.script = script
	f.calls++
	return f.out, f.err
}

// newTestContext builds a server context around a client backed by a fake
// runner.
func newTestContext(t *testing.T, out string) (*server.ServerContext, *fakeRunner) {
	t.Helper()
	runner := &fakeRunner{out: out}
	client := mail.NewClient(runner, mail.Options{}, nil)
	sc := server.NewServerContext(context.Background(), client)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc, runner
}

func newRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestRegisterMailTools(t *testing.T) {
	sc, _ := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.1")

	err := RegisterMailTools(s, sc, false, "")
	require.NoError(t, err)
}

func TestRegisterMailToolsReadOnly(t *testing.T) {
	sc, _ := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.1")

	err := RegisterMailTools(s, sc, true, "")
	require.NoError(t, err)
}

func TestListAttachmentsDescriptionMatchesReport(t *testing.T) {
	sc, _ := newTestContext(t, "")
	s := mcpserver.NewMCPServer("test", "0.0.1")
	require.NoError(t, RegisterMailTools(s, sc, false, ""))

	for _, st := range s.ListTools() {
		if st.Tool.Name != "mail_list_attachments" {
			continue
		}
		// The report carries file name and size in KB only.
		assert.Contains(t, st.Tool.Description, "file name and size")
		assert.NotContains(t, st.Tool.Description, "MIME")
		return
	}
	t.Fatal("mail_list_attachments not registered")
}

func TestDescribeAppendsInstructions(t *testing.T) {
	r := &Registration{Instructions: "Only touch the Work account."}
	assert.Equal(t, "List accounts\n\nOnly touch the Work account.", r.describe("List accounts"))

	r = &Registration{}
	assert.Equal(t, "List accounts", r.describe("List accounts"))
}

func TestMailClientMissing(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)
	defer func() { _ = sc.Shutdown() }()

	client, errResult := mailClient(sc)
	assert.Nil(t, client)
	require.NotNil(t, errResult)
	assert.True(t, errResult.IsError)
}

func TestRequiredString(t *testing.T) {
	val, errResult := requiredString(map[string]interface{}{"account": "Work"}, "account")
	assert.Equal(t, "Work", val)
	assert.Nil(t, errResult)

	for _, args := range []map[string]interface{}{
		{},
		{"account": ""},
		{"account": 42},
	} {
		_, errResult := requiredString(args, "account")
		require.NotNil(t, errResult)
		assert.Contains(t, resultText(t, errResult), "account is required")
	}
}

func TestOptionalArgHelpers(t *testing.T) {
	args := map[string]interface{}{
		"mailbox":     "Receipts",
		"max_results": float64(7),
		"include":     true,
	}

	assert.Equal(t, "Receipts", optionalString(args, "mailbox", "INBOX"))
	assert.Equal(t, "INBOX", optionalString(args, "missing", "INBOX"))
	assert.Equal(t, "INBOX", optionalString(map[string]interface{}{"mailbox": ""}, "mailbox", "INBOX"))

	assert.Equal(t, 7, optionalInt(args, "max_results", 20))
	assert.Equal(t, 20, optionalInt(args, "missing", 20))

	assert.True(t, optionalBool(args, "include", false))
	assert.False(t, optionalBool(args, "missing", false))
}

func TestHandleListAccountsNoClient(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)
	defer func() { _ = sc.Shutdown() }()

	result, err := handleListAccounts(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Mail client is not configured")
}

func TestHandleListAccountsRendersList(t *testing.T) {
	sc, runner := newTestContext(t, "Work|Personal")

	result, err := handleListAccounts(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Found 2 account(s):")
	assert.Contains(t, text, "1. Work")
	assert.Contains(t, text, "2. Personal")
	assert.Equal(t, 1, runner.calls)
}

func TestHandleListAccountsEmpty(t *testing.T) {
	sc, _ := newTestContext(t, "")

	result, err := handleListAccounts(context.Background(), newRequest(nil), sc)
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), "No accounts configured in Mail.app")
}
