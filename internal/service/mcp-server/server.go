package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"atlassian_mcp/internal/atlassian"
)

// NewServer creates a new MCP server instance with all Atlassian tools
// registered. The client is passed explicitly into every handler; there is
// no ambient credential state.
func NewServer(client *atlassian.Client) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"atlassian-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	if err := registerJiraTools(s, client); err != nil {
		return nil, err
	}
	if err := registerConfluenceTools(s, client); err != nil {
		return nil, err
	}

	return s, nil
}

// Serve starts the MCP server on stdio
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
