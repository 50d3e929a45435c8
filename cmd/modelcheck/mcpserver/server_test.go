package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func callValidate(t *testing.T, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = ToolValidateModels
	req.Params.Arguments = args

	resp, err := New(nil, "test", nil).HandleValidateModels(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp == nil || len(resp.Content) == 0 {
		t.Fatal("expected content in response")
	}
	return resp
}

func text(t *testing.T, resp *mcp.CallToolResult) string {
	t.Helper()
	tc, ok := resp.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %#v", resp.Content[0])
	}
	return tc.Text
}

func writeModels(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "models.py")
	src := "from sqlmodel import SQLModel\n\n\nclass Todo(SQLModel, table=True):\n    title: str\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHandleValidateModels_JSON(t *testing.T) {
	path := writeModels(t)
	resp := callValidate(t, map[string]any{"path": path})

	if resp.IsError {
		t.Fatalf("expected success, got error result %s", text(t, resp))
	}

	var doc struct {
		Errors int `json:"errors"`
		Issues []struct {
			Message string `json:"message"`
			Line    int    `json:"line"`
		} `json:"issues"`
	}
	if err := json.Unmarshal([]byte(text(t, resp)), &doc); err != nil {
		t.Fatalf("response is not valid json: %v", err)
	}
	if doc.Errors != 1 || len(doc.Issues) != 1 {
		t.Fatalf("expected one error, got %+v", doc)
	}
	if doc.Issues[0].Message != "Table model 'Todo' has no primary key" || doc.Issues[0].Line != 4 {
		t.Errorf("unexpected issue %+v", doc.Issues[0])
	}
}

func TestHandleValidateModels_Text(t *testing.T) {
	path := writeModels(t)
	resp := callValidate(t, map[string]any{"path": path, "format": "TEXT"})

	out := text(t, resp)
	if !strings.HasPrefix(out, "ERROR: "+path+":4 - ") {
		t.Errorf("unexpected text report:\n%s", out)
	}
	if !strings.HasSuffix(out, "Found 1 error(s) and 0 warning(s)\n") {
		t.Errorf("missing summary:\n%s", out)
	}
}

func TestHandleValidateModels_InvocationErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{name: "no path", args: map[string]any{}, wantMsg: "path is required"},
		{name: "blank path", args: map[string]any{"path": "  "}, wantMsg: "path is required"},
		{name: "missing path", args: map[string]any{"path": missing}, wantMsg: "Path not found: " + missing},
		{name: "bad format", args: map[string]any{"path": missing, "format": "xml"}, wantMsg: "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := callValidate(t, tt.args)
			if !resp.IsError {
				t.Fatal("expected an error result")
			}
			if got := text(t, resp); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected %q in %q", tt.wantMsg, got)
			}
		})
	}
}
