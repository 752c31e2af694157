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

// defaultConfluenceSearchLimit caps CQL search results when the caller does
// not pass a limit.
const defaultConfluenceSearchLimit = 25

var pageIDPattern = regexp.MustCompile(`^[0-9]+$`)

// registerConfluenceTools registers all Confluence-related tools with the server
func registerConfluenceTools(s *server.MCPServer, client *atlassian.Client) error {
	// Get Confluence page tool
	getPageTool := mcp.NewTool("get_confluence_page",
		mcp.WithDescription("Get detailed information and content from a specific Confluence page by its ID"),
		mcp.WithString("page_id",
			mcp.Required(),
			mcp.Description("The Confluence page ID (e.g., '123456789')"),
		),
	)

	// Search Confluence pages tool
	searchPagesTool := mcp.NewTool("search_confluence_pages",
		mcp.WithDescription("Search for Confluence pages using CQL (Confluence Query Language)"),
		mcp.WithString("cql",
			mcp.Required(),
			mcp.Description("CQL query string (e.g., 'space = DEV AND title ~ \"documentation\"')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 25)"),
		),
	)

	// Get Confluence space tool
	getSpaceTool := mcp.NewTool("get_confluence_space",
		mcp.WithDescription("Get information about a Confluence space"),
		mcp.WithString("space_key",
			mcp.Required(),
			mcp.Description("The Confluence space key (e.g., DEV, PROJ)"),
		),
	)

	// Register tools with handlers
	s.AddTool(getPageTool, handleGetConfluencePage(client))
	s.AddTool(searchPagesTool, handleSearchConfluencePages(client))
	s.AddTool(getSpaceTool, handleGetConfluenceSpace(client))

	return nil
}

func handleGetConfluencePage(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pageID, ok := request.Params.Arguments["page_id"].(string)
		if !ok || pageID == "" {
			return mcp.NewToolResultError("Error: page_id is required"), nil
		}
		if !pageIDPattern.MatchString(pageID) {
			return mcp.NewToolResultError("Error: page_id must be a numeric string"), nil
		}

		page, err := client.GetPage(ctx, pageID)
		if err != nil {
			logger.GetLogger().Error("get_confluence_page failed",
				zap.String("page_id", pageID), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatConfluencePage(page)), nil
	}
}

func handleSearchConfluencePages(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cql, ok := request.Params.Arguments["cql"].(string)
		if !ok || cql == "" {
			return mcp.NewToolResultError("Error: cql query is required"), nil
		}

		limit := defaultConfluenceSearchLimit
		if l, ok := request.Params.Arguments["limit"].(float64); ok && l > 0 {
			limit = int(l)
		}

		result, err := client.SearchPages(ctx, cql, limit)
		if err != nil {
			logger.GetLogger().Error("search_confluence_pages failed",
				zap.String("cql", cql), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatConfluenceSearchResults(result, limit)), nil
	}
}

func handleGetConfluenceSpace(client *atlassian.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spaceKey, ok := request.Params.Arguments["space_key"].(string)
		if !ok || spaceKey == "" {
			return mcp.NewToolResultError("Error: space_key is required"), nil
		}

		space, err := client.GetSpace(ctx, spaceKey)
		if err != nil {
			logger.GetLogger().Error("get_confluence_space failed",
				zap.String("space_key", spaceKey), zap.Error(err))
			return mcp.NewToolResultError("Error: " + err.Error()), nil
		}

		return mcp.NewToolResultText(formatConfluenceSpace(space)), nil
	}
}
