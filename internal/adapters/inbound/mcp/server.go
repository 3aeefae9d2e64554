package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// NewHubguardMCPServer creates an MCP server with every hubguard tool and
// resource registered. projectPath is the monorepo root; configuration is
// reloaded on each call so edits to .hubguard.yaml apply immediately.
func NewHubguardMCPServer(projectPath string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.Default()
	}
	s := server.NewMCPServer(
		"hubguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
