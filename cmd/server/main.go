package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"atlassian_mcp/internal/atlassian"
	"atlassian_mcp/internal/config"
	"atlassian_mcp/internal/logger"
	mcpserver "atlassian_mcp/internal/service/mcp-server"
)

func main() {
	// Resolve credentials before anything else; a partial credential set is
	// a fatal configuration error.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := atlassian.NewClient(cfg)

	server, err := mcpserver.NewServer(client)
	if err != nil {
		logger.GetLogger().Fatal("failed to create server", zap.Error(err))
	}

	logger.GetLogger().Info("starting Atlassian MCP server",
		zap.String("domain", cfg.AtlassianDomain))
	if err := mcpserver.Serve(server); err != nil {
		logger.GetLogger().Fatal("server error", zap.Error(err))
	}
}
