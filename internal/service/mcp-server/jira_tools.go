package mcpserver

import (
	"context"
	"regexp"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"atlassian_mcp/internal/atlassian"
	"atlassian_mcp/internal/logger"
)

// defaultJiraSearchLimit caps JQL search results when the caller does not
// pass max_results.
const defaultJiraSearchLimit = 50

var issueKeyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*-[0-9]+$`)

// registerJiraTools registers all Jira-related tools with the server
func registerJiraTools(s *server.MCPServer, client *atlassian.Client) error {
	// Get Jira issue tool
	getIssueTool := mcp.NewTool("get_jira_issue",
		mcp.WithDescription("Get detailed information about a specific Jira issue by its key (e.g., PROJ-123)"),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("The Jira issue key (e.g., PROJ-123)"),
		),
	)

	// Search Jira issues tool
	searchIssuesTool := mcp.NewTool("search_jira_issues",
		mcp.WithDescription("Search for Jira issues using JQL (Jira Query Language)"),
		mcp.WithString("jql",
			mcp.Required(),
			mcp.Description("JQL query string (e.g., 'project = PROJ AND status = \"In Progress\"')"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of results to return (default: 50)"),
		),
	)

	// Get Jira project tool
	getProjectTool := mcp.NewTool("get_jira_project",
		mcp.WithDescription("Get information about a Jira project"),
		mcp.WithString("project_key",
			mcp.Required(),
			mcp.Description("The project key (e.g., PROJ)"),
		),
	)

	// Register tools with handlers
	s.AddTool(getIssueTool, handleGetJiraIssue(client))
	s.AddTool(searchIssuesTool, handleSearchJiraIssues(client))
	s.AddTool(getProjectTool, handleGetJiraProject(client))

	return nil
}

func handleGetJiraIssue(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		issueKey, ok := request.Params.Arguments["issue_key"].(string)
		if !ok || issueKey == "" {
			return mcp.NewToolResultError("Error: issue_key is required"), nil
		}
		if !issueKeyPattern.MatchString(issueKey) {
			return mcp.NewToolResultError("Error: issue_key must look like PROJ-123"), nil
		}

		issue, err := client.GetIssue(ctx, issueKey)
		if err != nil {
			logger.GetLogger().Error("get_jira_issue failed",
				zap.String("issue_key", issueKey), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatJiraIssue(issue)), nil
	}
}

func handleSearchJiraIssues(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jql, ok := request.Params.Arguments["jql"].(string)
		if !ok || jql == "" {
			return mcp.NewToolResultError("Error: jql query is required"), nil
		}

		maxResults := defaultJiraSearchLimit
		if m, ok := request.Params.Arguments["max_results"].(float64); ok && m > 0 {
			maxResults = int(m)
		}

		result, err := client.SearchIssues(ctx, jql, maxResults)
		if err != nil {
			logger.GetLogger().Error("search_jira_issues failed",
				zap.String("jql", jql), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatJiraSearchResults(result, maxResults)), nil
	}
}

func handleGetJiraProject(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectKey, ok := request.Params.Arguments["project_key"].(string)
		if !ok || projectKey == "" {
			return mcp.NewToolResultError("Error: project_key is required"), nil
		}

		project, err := client.GetProject(ctx, projectKey)
		if err != nil {
			logger.GetLogger().Error("get_jira_project failed",
				zap.String("project_key", projectKey), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatJiraProject(project)), nil
	}
}
