package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/wiring"
)

const hubURIPrefix = "hubguard://hubs/"

// registerResources registers all hubguard MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddResource(
		mcplib.NewResource(
			"hubguard://rules",
			"Rules",
			mcplib.WithResourceDescription("Active rule catalogue, built-in plus custom"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(projectPath, logger),
	)

	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			hubURIPrefix+"{name}",
			"Hub Assessment",
			mcplib.WithTemplateDescription("Unified architecture and compliance assessment for one hub at the standard level"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		handleHubResource(projectPath, logger),
	)
}

func handleRulesResource(projectPath string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		env, err := wiring.Load(projectPath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonContents("hubguard://rules", env.Rules.Rules())
	}
}

func handleHubResource(projectPath string, logger *slog.Logger) server.ResourceTemplateHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		name := hubNameFromRequest(request)
		if name == "" {
			return nil, fmt.Errorf("hub name is required")
		}

		env, err := wiring.Load(projectPath, logger)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		hubs, err := env.Hubs(application.Target{HubName: name})
		if err != nil {
			return nil, err
		}
		level, err := application.SelectLevel(env.Levels, "", false)
		if err != nil {
			return nil, err
		}
		rep, err := env.UnifiedService().Run(ctx, hubs, level)
		if err != nil {
			return nil, fmt.Errorf("unified validation failed: %w", err)
		}
		return jsonContents(request.Params.URI, rep.Results[0])
	}
}

// hubNameFromRequest reads the template argument, falling back to the URI
// when the transport did not populate arguments.
func hubNameFromRequest(request mcplib.ReadResourceRequest) string {
	if v, ok := request.Params.Arguments["name"]; ok {
		switch n := v.(type) {
		case string:
			return n
		case []string:
			if len(n) > 0 {
				return n[0]
			}
		}
	}
	return strings.TrimPrefix(request.Params.URI, hubURIPrefix)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
