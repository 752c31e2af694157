package mcpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"atlassian_mcp/internal/atlassian"
	"atlassian_mcp/internal/config"
)

// newTestClient points both API roots at the given mock server.
func newTestClient(srv *httptest.Server) *atlassian.Client {
	return atlassian.NewClient(&config.Config{
		AtlassianEmail:    "user@example.com",
		AtlassianToken:    "secret-token",
		AtlassianDomain:   "test",
		JiraBaseURL:       srv.URL,
		ConfluenceBaseURL: srv.URL,
	})
}

// callTool builds a CallToolRequest with the given arguments and invokes the
// handler directly.
func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if result == nil {
		t.Fatal("handler returned nil result")
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if textContent, ok := content.(mcp.TextContent); ok {
			return textContent.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}

// mockJiraServer simulates the Jira Cloud REST endpoints the tools hit.
func mockJiraServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/issue/TEST-123":
			w.Write([]byte(`{
				"key": "TEST-123",
				"self": "https://acme.atlassian.net/rest/api/3/issue/10001",
				"fields": {
					"summary": "Broken login button",
					"status": {"name": "In Progress"},
					"issuetype": {"name": "Bug"},
					"priority": {"name": "High"},
					"assignee": {"displayName": "Jamie Rivera"},
					"reporter": {"displayName": "Sam Okafor"},
					"created": "2024-01-01T10:00:00.000+0000",
					"updated": "2024-01-02T15:30:00.000+0000",
					"description": {
						"type": "doc",
						"version": 1,
						"content": [
							{"type": "paragraph", "content": [
								{"type": "text", "text": "Clicking login "},
								{"type": "text", "text": "does nothing."}
							]}
						]
					}
				}
			}`))

		case r.URL.Path == "/issue/GONE-404":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errorMessages":["Issue does not exist"]}`))

		case r.URL.Path == "/issue/AUTH-401":
			w.WriteHeader(http.StatusUnauthorized)

		case r.URL.Path == "/search" && strings.Contains(r.URL.Query().Get("jql"), "empty"):
			w.Write([]byte(`{"startAt":0,"maxResults":50,"total":0,"issues":[]}`))

		case r.URL.Path == "/search":
			w.Write([]byte(`{
				"startAt": 0,
				"maxResults": 50,
				"total": 7,
				"issues": [
					{"key": "TEST-1", "fields": {"summary": "First issue", "status": {"name": "Open"}}},
					{"key": "TEST-2", "fields": {"summary": "Second issue", "status": {"name": "Done"}, "assignee": {"displayName": "Jamie Rivera"}}}
				]
			}`))

		case r.URL.Path == "/project/TEST":
			w.Write([]byte(`{
				"key": "TEST",
				"name": "Test Project",
				"description": "Sandbox for the platform team",
				"projectTypeKey": "software",
				"lead": {"displayName": "Sam Okafor"},
				"self": "https://acme.atlassian.net/rest/api/3/project/10000"
			}`))

		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"errorMessages":["not found"]}`))
		}
	}))
}

func TestGetJiraIssueMissingArg(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleGetJiraIssue(newTestClient(srv))

	result := callTool(t, handler, map[string]any{})
	if !result.IsError {
		t.Error("missing issue_key should produce an error result")
	}
	if !strings.Contains(resultText(t, result), "issue_key is required") {
		t.Errorf("unexpected error text %q", resultText(t, result))
	}
}

func TestGetJiraIssueBadKey(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleGetJiraIssue(newTestClient(srv))

	result := callTool(t, handler, map[string]any{"issue_key": "not a key"})
	if !result.IsError {
		t.Error("malformed issue_key should produce an error result")
	}
	if !strings.Contains(resultText(t, result), "PROJ-123") {
		t.Errorf("error text %q should show the expected key shape", resultText(t, result))
	}
}

func TestGetJiraIssue(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleGetJiraIssue(newTestClient(srv))

	result := callTool(t, handler, map[string]any{"issue_key": "TEST-123"})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	for _, want := range []string{
		"TEST-123",
		"Broken login button",
		"In Progress",
		"Jamie Rivera",
		"Sam Okafor",
		"Clicking login does nothing.",
		"https://acme.atlassian.net/browse/TEST-123",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestGetJiraIssueNotFoundVsUnauthorized(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleGetJiraIssue(newTestClient(srv))

	notFound := resultText(t, callTool(t, handler, map[string]any{"issue_key": "GONE-404"}))
	unauthorized := resultText(t, callTool(t, handler, map[string]any{"issue_key": "AUTH-401"}))

	if !strings.Contains(notFound, "not found") {
		t.Errorf("404 text %q should say not found", notFound)
	}
	if !strings.Contains(unauthorized, "authentication failed") {
		t.Errorf("401 text %q should say authentication failed", unauthorized)
	}
	if notFound == unauthorized {
		t.Error("401 and 404 should surface distinct error texts")
	}
}

func TestSearchJiraIssuesMissingArg(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleSearchJiraIssues(newTestClient(srv))

	result := callTool(t, handler, map[string]any{"max_results": float64(5)})
	if !result.IsError {
		t.Error("missing jql should produce an error result")
	}
}

func TestSearchJiraIssuesNoMatches(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleSearchJiraIssues(newTestClient(srv))

	result := callTool(t, handler, map[string]any{"jql": "project = empty"})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}
	if got := resultText(t, result); got != "No issues found matching the search criteria." {
		t.Errorf("zero-match text = %q", got)
	}
}

func TestSearchJiraIssues(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleSearchJiraIssues(newTestClient(srv))

	result := callTool(t, handler, map[string]any{"jql": "project = TEST"})
	text := resultText(t, result)

	if !strings.Contains(text, "Found 2 of 7 Jira issues") {
		t.Errorf("missing result header:\n%s", text)
	}
	for _, want := range []string{"TEST-1", "First issue", "Open", "TEST-2", "Unassigned", "Jamie Rivera"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSearchJiraIssuesClampsRendering(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleSearchJiraIssues(newTestClient(srv))

	// Upstream mock ignores maxResults and always returns two issues.
	result := callTool(t, handler, map[string]any{"jql": "project = TEST", "max_results": float64(1)})
	text := resultText(t, result)

	if got := strings.Count(text, "• "); got != 1 {
		t.Errorf("rendered %d entries, want 1:\n%s", got, text)
	}
}

func TestGetJiraProject(t *testing.T) {
	srv := mockJiraServer()
	defer srv.Close()
	handler := handleGetJiraProject(newTestClient(srv))

	if result := callTool(t, handler, map[string]any{}); !result.IsError {
		t.Error("missing project_key should produce an error result")
	}

	result := callTool(t, handler, map[string]any{"project_key": "TEST"})
	text := resultText(t, result)
	for _, want := range []string{"TEST", "Test Project", "Sandbox for the platform team", "software", "Sam Okafor"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}
