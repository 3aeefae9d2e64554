package tui_test

import (
	"testing"

	"github.com/openkraft/hubguard/internal/adapters/outbound/tui"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/compliance"
	"github.com/stretchr/testify/assert"
)

func TestRenderCommit_NoHubsTouched(t *testing.T) {
	rep := domain.CommitReport{StagedFiles: []string{"README.md"}, Allowed: true}
	out := tui.RenderCommit(rep, strict, tui.Options{})
	assert.Contains(t, out, "1 staged files")
	assert.Contains(t, out, "No hubs touched")
}

func TestRenderCommit_BlockedShowsActionsAndFixes(t *testing.T) {
	hr := compliance.Result("content-hub", contentSet(), strict, nil)
	rep := domain.CommitReport{
		StagedFiles:     []string{"packages/content-hub/src/api.js"},
		TouchedHubs:     []string{"content-hub"},
		HubResults:      []domain.HubScanResult{hr},
		TotalViolations: hr.Total,
	}
	out := tui.RenderCommit(rep, strict, tui.Options{})

	assert.Contains(t, out, "Commit blocked")
	assert.Contains(t, out, "Required actions")
	assert.Contains(t, out, "content-hub: reduce high violations from 2 to 0")
	assert.Contains(t, out, "Quick fixes")
	assert.Contains(t, out, "hubguard validate --hub=content-hub --strict --verbose")
}

func TestRenderCommit_Allowed(t *testing.T) {
	hr := compliance.Result("blog-hub", domain.NewViolationSet(), strict, nil)
	rep := domain.CommitReport{
		TouchedHubs: []string{"blog-hub"},
		HubResults:  []domain.HubScanResult{hr},
		Allowed:     true,
	}
	out := tui.RenderCommit(rep, strict, tui.Options{})
	assert.Contains(t, out, "Commit allowed")
	assert.NotContains(t, out, "Quick fixes")
}
