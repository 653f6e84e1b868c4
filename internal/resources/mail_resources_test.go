package resources

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailbridge/mailbridge/internal/mail"
	"github.com/mailbridge/mailbridge/internal/server"
)

type fakeRunner struct {
	out string
	err error
}

func (f *fakeRunner) Run(ctx context.Context, script string) (string, error) {
	return f.out, f.err
}

func newTestContext(t *testing.T, out string) *server.ServerContext {
	t.Helper()
	client := mail.NewClient(&fakeRunner{out: out}, mail.Options{}, nil)
	sc := server.NewServerContext(context.Background(), client)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func readRequest(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestRegisterMailResources(t *testing.T) {
	s := mcpserver.NewMCPServer("test", "0.0.1", mcpserver.WithResourceCapabilities(false, false))
	sc := newTestContext(t, "")

	if err := RegisterMailResources(s, sc); err != nil {
		t.Fatalf("RegisterMailResources: %v", err)
	}
}

func TestUsageGuideMentionsEveryToolGroup(t *testing.T) {
	for _, tool := range []string{
		"mail_list_accounts",
		"mail_search",
		"mail_compose",
		"mail_manage_trash",
		"mail_save_attachment",
	} {
		if !strings.Contains(usageGuide, tool) {
			t.Errorf("usage guide does not mention %s", tool)
		}
	}
}

func TestHandleAccounts(t *testing.T) {
	sc := newTestContext(t, "Work|Personal")

	contents, err := handleAccounts(context.Background(), readRequest("mailbridge://accounts"), sc)
	if err != nil {
		t.Fatalf("handleAccounts: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("len(contents) = %d, want 1", len(contents))
	}

	text, ok := contents[0].(*mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T, want *mcp.TextResourceContents", contents[0])
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", text.MIMEType)
	}

	var payload struct {
		Accounts []string `json:"accounts"`
		Count    int      `json:"count"`
	}
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Fatalf("parse payload: %v", err)
	}
	if payload.Count != 2 {
		t.Errorf("count = %d, want 2", payload.Count)
	}
	if len(payload.Accounts) != 2 || payload.Accounts[0] != "Work" || payload.Accounts[1] != "Personal" {
		t.Errorf("accounts = %v, want [Work Personal]", payload.Accounts)
	}
}

func TestHandleAccountsNoClient(t *testing.T) {
	sc := server.NewServerContext(context.Background(), nil)
	t.Cleanup(func() { _ = sc.Shutdown() })

	if _, err := handleAccounts(context.Background(), readRequest("mailbridge://accounts"), sc); err == nil {
		t.Fatal("expected error when no Mail client is configured")
	}
}
