package tui

import (
	"fmt"
	"strings"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/compliance"
)

// RenderCommit formats the commit gate verdict. Blocked commits get a
// required-actions list and quick fixes.
func RenderCommit(rep domain.CommitReport, level domain.ComplianceLevel, opts Options) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("hubguard pre-commit") + "  " +
		dimStyle.Render(fmt.Sprintf("%d staged files", len(rep.StagedFiles))) + "\n")
	b.WriteString("  " + separatorLine + "\n\n")

	if len(rep.TouchedHubs) == 0 {
		b.WriteString("  " + passStyle.Render("No hubs touched, commit allowed.") + "\n\n")
		return b.String()
	}

	fmt.Fprintf(&b, "  %s %s\n\n", dimStyle.Render("affected hubs:"), strings.Join(rep.TouchedHubs, ", "))
	for _, hr := range rep.HubResults {
		renderHubResult(&b, hr, level, opts.Verbose)
	}

	b.WriteString("\n")
	if rep.Allowed {
		fmt.Fprintf(&b, "  %s\n\n", passStyle.Render(fmt.Sprintf("Commit allowed, %d violations within %s limits.", rep.TotalViolations, level.Name)))
		return b.String()
	}

	blocked := rep.BlockedHubs()
	fmt.Fprintf(&b, "  %s\n", failStyle.Bold(true).Render(fmt.Sprintf("Commit blocked: %d hubs fail %s compliance.", len(blocked), level.Name)))

	b.WriteString("\n  " + sectionHeaderStyle.Render("Required actions") + "\n")
	for _, hr := range blocked {
		for _, sev := range compliance.Exceeded(hr.Violations, level) {
			fmt.Fprintf(&b, "    • %s: reduce %s violations from %d to %d\n",
				hr.HubName, sev, hr.Violations.Count(sev), level.Allowed(sev))
		}
	}
	renderRemediation(&b, compliance.Remediation(blocked...))

	b.WriteString("\n  " + sectionHeaderStyle.Render("Quick fixes") + "\n")
	for _, hr := range blocked {
		fmt.Fprintf(&b, "    %s\n", hintStyle.Render(fmt.Sprintf("hubguard validate --hub=%s --strict --verbose", hr.HubName)))
	}
	fmt.Fprintf(&b, "    %s\n", hintStyle.Render("git commit --no-verify   (bypass, not recommended)"))
	renderGuidePointer(&b, opts.MigrationGuide)
	b.WriteString("\n")
	return b.String()
}
