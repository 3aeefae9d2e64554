package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/hubguard/internal/domain"
)

// RenderUnified formats the combined architecture and compliance grades.
func RenderUnified(rep domain.UnifiedReport, level domain.ComplianceLevel, opts Options) string {
	var b strings.Builder

	title := headerStyle.Render("hubguard")
	subtitle := dimStyle.Render("Unified Hub Assessment · level " + rep.ComplianceLevel)
	b.WriteString(boxStyle.Render(title + "\n" + subtitle))
	b.WriteString("\n\n")

	for i, r := range rep.Results {
		renderUnifiedHub(&b, r, level, opts.Verbose)
		if i < len(rep.Results)-1 {
			b.WriteString("\n")
		}
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	s := rep.Summary
	style := passStyle
	if s.FailedHubs > 0 {
		style = failStyle
	}
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Summary"),
		style.Render(fmt.Sprintf("%d/%d hubs passed", s.PassedHubs, s.TotalHubs)))
	if s.FailedHubs > 0 {
		renderGuidePointer(&b, opts.MigrationGuide)
	}
	b.WriteString("\n")
	return b.String()
}

func renderUnifiedHub(b *strings.Builder, r domain.UnifiedHubResult, level domain.ComplianceLevel, verbose bool) {
	a := r.Assessment
	grade := lipgloss.NewStyle().Bold(true).Foreground(gradeColor(a.Grade)).Render(padRight(string(a.Grade), 3))
	fmt.Fprintf(b, "  %s %s %s  %s\n",
		hubNameStyle.Render(padRight(r.HubName, 24)), grade,
		lipgloss.NewStyle().Foreground(gradeColor(a.Grade)).Render(a.Status),
		dimStyle.Render(a.Summary))

	arch := r.Architecture
	fmt.Fprintf(b, "    %s %s %s\n", padRight("architecture", 14), coloredBar(a.ArchitectureScorePct, 20),
		dimStyle.Render(fmt.Sprintf("%d/%d", arch.Score, arch.MaxScore)))
	for _, c := range arch.Checks {
		icon := passStyle.Render("●")
		if !c.Passed {
			icon = failStyle.Render("●")
		}
		line := fmt.Sprintf("      %s %s %s", icon, padRight(c.Name, 20), dimStyle.Render(fmt.Sprintf("%d/%d", c.Score, c.Points)))
		if c.Detail != "" {
			line += "  " + faintStyle.Render(c.Detail)
		}
		b.WriteString(line + "\n")
	}

	infra := passStyle.Render("compliant")
	if !a.InfrastructureCompliant {
		infra = failStyle.Render("non-compliant")
	}
	fmt.Fprintf(b, "    %s %s\n", padRight("infrastructure", 14), infra)
	if verbose {
		renderHubResult(b, r.Infrastructure, level, true)
	}
}
