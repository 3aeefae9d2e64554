package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/hubguard/internal/domain"
)

var outcomeLabels = map[domain.BuildOutcome]string{
	domain.OutcomeHalted:         "halted by compliance",
	domain.OutcomeComplianceOnly: "compliance only, build skipped",
	domain.OutcomeBuilt:          "all builds succeeded",
	domain.OutcomeBuildFailed:    "build failures",
}

// RenderBuild formats a build gate run: the compliance phase, then one line
// per build attempt.
func RenderBuild(rep domain.BuildReport, level domain.ComplianceLevel, opts Options) string {
	var b strings.Builder

	title := headerStyle.Render("hubguard build")
	mode := dimStyle.Render(fmt.Sprintf("%s mode · level %s · %d hubs", rep.Mode, rep.ComplianceLevel, rep.Summary.TotalHubs))
	b.WriteString(boxStyle.Render(title + "\n" + mode))
	b.WriteString("\n\n")

	b.WriteString("  " + sectionHeaderStyle.Render("Compliance") + "\n\n")
	for _, hr := range rep.HubResults {
		renderHubResult(&b, hr, level, opts.Verbose)
	}
	b.WriteString("\n")
	renderComplianceSummary(&b, rep.ComplianceReport)

	if len(rep.Builds.Results) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("Builds") + "\n\n")
		for _, r := range rep.Builds.Results {
			renderBuildResult(&b, r)
		}
		s := rep.Builds
		fmt.Fprintf(&b, "\n    %s\n", dimStyle.Render(fmt.Sprintf(
			"%d attempted · %d succeeded · %d failed · %d skipped · %s total",
			s.Attempted, s.Successful, s.Failed, s.Skipped, elapsed(rep.TotalBuildTime))))
	}

	b.WriteString("\n  " + separatorLine + "\n\n")
	outcome := lipgloss.NewStyle().Bold(true).Foreground(outcomeColor(rep.Outcome)).Render(outcomeLabels[rep.Outcome])
	fmt.Fprintf(&b, "  %s  %s\n", titleStyle.Render("Outcome"), outcome)

	if rep.Outcome == domain.OutcomeHalted {
		renderGuidePointer(&b, opts.MigrationGuide)
	}
	b.WriteString("\n")
	return b.String()
}

func renderBuildResult(b *strings.Builder, r domain.BuildResult) {
	name := hubNameStyle.Render(padRight(r.HubName, 28))
	switch {
	case r.Skipped:
		fmt.Fprintf(b, "    %s %s %s\n", skipStyle.Render("○"), name, skipStyle.Render(r.Error))
	case r.Success:
		fmt.Fprintf(b, "    %s %s %s\n", passStyle.Render("✓"), name, dimStyle.Render(elapsed(r.BuildTime)))
	default:
		fmt.Fprintf(b, "    %s %s %s\n", failStyle.Render("✗"), name, dimStyle.Render(elapsed(r.BuildTime)))
		for _, line := range strings.Split(strings.TrimSpace(r.Error), "\n") {
			fmt.Fprintf(b, "        %s\n", faintStyle.Render(line))
		}
	}
}

func outcomeColor(o domain.BuildOutcome) lipgloss.Color {
	switch o {
	case domain.OutcomeBuilt, domain.OutcomeComplianceOnly:
		return success
	default:
		return danger
	}
}

// elapsed renders a millisecond duration.
func elapsed(ms int64) string {
	return (time.Duration(ms) * time.Millisecond).Round(time.Millisecond).String()
}
