package mcp_test

import (
	"context"
	"encoding/json"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/openkraft/hubguard/internal/adapters/inbound/mcp"
	"github.com/openkraft/hubguard/internal/domain"
)

const fixtureDir = "../../../../testdata/monorepo"

func TestNewHubguardMCPServer(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{"hubguard_validate", "hubguard_unified", "hubguard_rules"}
	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}
	assert.Len(t, tools, len(expectedTools))
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	tool, ok := s.ListTools()[name]
	require.True(t, ok, "tool %q not registered", name)

	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	return res
}

func text(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	tc, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestValidateTool_StrictFailsContentHub(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	res := callTool(t, s, "hubguard_validate", map[string]any{"hub": "content-hub", "level": "strict"})
	require.False(t, res.IsError, text(t, res))

	var rep domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rep))
	assert.Equal(t, "strict", rep.ComplianceLevel)
	require.Len(t, rep.HubResults, 1)
	assert.False(t, rep.HubResults[0].Compliant)
	assert.Len(t, rep.HubResults[0].Violations.High, 2)
}

func TestValidateTool_AllHubsByDefault(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	res := callTool(t, s, "hubguard_validate", map[string]any{})
	require.False(t, res.IsError, text(t, res))

	var rep domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rep))
	assert.Equal(t, "standard", rep.ComplianceLevel)
	assert.Equal(t, 2, rep.Summary.TotalHubs)
}

func TestValidateTool_UnknownHub(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	res := callTool(t, s, "hubguard_validate", map[string]any{"hub": "ghost-hub"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "hub not found")
}

func TestUnifiedTool_GradesHub(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	res := callTool(t, s, "hubguard_unified", map[string]any{"hub": "campaign-hub"})
	require.False(t, res.IsError, text(t, res))

	var rep domain.UnifiedReport
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rep))
	require.Len(t, rep.Results, 1)
	assert.Equal(t, domain.GradeF, rep.Results[0].Assessment.Grade)
}

func TestRulesTool_ListsCatalogue(t *testing.T) {
	s := mcpadapter.NewHubguardMCPServer(fixtureDir, nil)
	res := callTool(t, s, "hubguard_rules", nil)
	require.False(t, res.IsError)

	var rules []domain.Rule
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &rules))
	assert.Len(t, rules, domain.DefaultRuleSet().Len())
	assert.Equal(t, domain.SeverityCritical, rules[0].Severity)
}
