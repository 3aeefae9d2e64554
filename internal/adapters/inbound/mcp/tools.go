package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/wiring"
)

// registerTools registers all hubguard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddTool(
		mcplib.NewTool("hubguard_validate",
			mcplib.WithDescription("Scan one hub, or every hub, for hand-rolled infrastructure and return the compliance report as JSON"),
			mcplib.WithString("hub", mcplib.Description("Hub name, e.g. content-hub. Omit to validate every hub")),
			mcplib.WithString("level", mcplib.Description("Compliance level: strict, standard, development or a custom level (default: standard)")),
		),
		handleValidate(projectPath, logger),
	)

	s.AddTool(
		mcplib.NewTool("hubguard_unified",
			mcplib.WithDescription("Grade hubs on architecture and compliance together and return the unified report as JSON"),
			mcplib.WithString("hub", mcplib.Description("Hub name. Omit to grade every hub")),
			mcplib.WithBoolean("production", mcplib.Description("Grade against the strict level")),
		),
		handleUnified(projectPath, logger),
	)

	s.AddTool(
		mcplib.NewTool("hubguard_rules",
			mcplib.WithDescription("Returns the active rule catalogue with each rule's severity, pattern and remediation message"),
		),
		handleRules(projectPath, logger),
	)
}

func targetFor(hub string) application.Target {
	if hub == "" {
		return application.Target{AllHubs: true}
	}
	return application.Target{HubName: hub}
}

func handleValidate(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		env, err := wiring.Load(projectPath, logger)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		defer env.FlushCache()
		hub, _ := request.GetArguments()["hub"].(string)
		levelName, _ := request.GetArguments()["level"].(string)
		hubs, err := env.Hubs(targetFor(hub))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		level, err := application.SelectLevel(env.Levels, levelName, false)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		rep, err := env.Compliance.Report(ctx, env.ProjectPath, hubs, level)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleUnified(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		env, err := wiring.Load(projectPath, logger)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		defer env.FlushCache()
		hub, _ := request.GetArguments()["hub"].(string)
		production, _ := request.GetArguments()["production"].(bool)
		hubs, err := env.Hubs(targetFor(hub))
		if err != nil {
			return errorResult(err.Error()), nil
		}
		level, err := application.SelectLevel(env.Levels, "", production)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		rep, err := env.UnifiedService().Run(ctx, hubs, level)
		if err != nil {
			return errorResult(fmt.Sprintf("unified validation failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleRules(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		env, err := wiring.Load(projectPath, logger)
		if err != nil {
			return errorResult(fmt.Sprintf("loading config: %v", err)), nil
		}
		return jsonResult(env.Rules.Rules())
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
