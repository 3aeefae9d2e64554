package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/compliance"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	info      = lipgloss.Color("#8B949E") // soft blue-gray
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	gradeColors = map[domain.Grade]lipgloss.Color{
		domain.GradeAPlus: success,
		domain.GradeA:     success,
		domain.GradeB:     lipgloss.Color("#A3E635"), // lime
		domain.GradeC:     warning,
		domain.GradeF:     danger,
	}

	severityColors = map[domain.Severity]lipgloss.Color{
		domain.SeverityCritical: danger,
		domain.SeverityHigh:     lipgloss.Color("#FB923C"), // orange
		domain.SeverityMedium:   warning,
		domain.SeverityLow:      info,
	}

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	skipStyle          = lipgloss.NewStyle().Foreground(skipColor)
	fileStyle          = lipgloss.NewStyle().Foreground(dim)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	hubNameStyle       = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
	separatorLine      = faintStyle.Render(strings.Repeat("─", 64))
)

// Options tune console output.
type Options struct {
	// Verbose lists every violation, not only those of exceeded severities.
	Verbose bool
	// MigrationGuide is the document pointed to when hubs fail.
	MigrationGuide string
}

// RenderCompliance formats a validation run. level supplies the caps shown
// next to each count.
func RenderCompliance(rep domain.ComplianceReport, level domain.ComplianceLevel, opts Options) string {
	var b strings.Builder

	title := headerStyle.Render("hubguard")
	subtitle := dimStyle.Render("Infrastructure Compliance")
	levelLine := titleStyle.Render(fmt.Sprintf("level: %s", rep.ComplianceLevel))
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + levelLine))
	b.WriteString("\n\n")

	for _, hr := range rep.HubResults {
		renderHubResult(&b, hr, level, opts.Verbose)
		b.WriteString("\n")
	}

	b.WriteString("  " + separatorLine + "\n\n")
	renderComplianceSummary(&b, rep)

	if !rep.AllCompliant() {
		var failed []domain.HubScanResult
		for _, hr := range rep.HubResults {
			if !hr.Compliant {
				failed = append(failed, hr)
			}
		}
		renderRemediation(&b, compliance.Remediation(failed...))
		renderGuidePointer(&b, opts.MigrationGuide)
	}

	b.WriteString("\n")
	return b.String()
}

func renderHubResult(b *strings.Builder, hr domain.HubScanResult, level domain.ComplianceLevel, verbose bool) {
	status := passStyle.Render("✓ compliant")
	if !hr.Compliant {
		status = failStyle.Render("✗ non-compliant")
	}
	fmt.Fprintf(b, "  %s  %s\n", hubNameStyle.Render(padRight(hr.HubName, 28)), status)

	if hr.Total == 0 {
		fmt.Fprintf(b, "    %s\n", passStyle.Render("zero violations"))
	} else {
		for _, sev := range domain.Severities {
			count, allowed := hr.Violations.Count(sev), level.Allowed(sev)
			icon := passStyle.Render("●")
			if count > allowed {
				icon = failStyle.Render("●")
			} else if count > 0 {
				icon = warnStyle.Render("●")
			}
			fmt.Fprintf(b, "    %s %s %s\n", icon, padRight(string(sev), 10),
				dimStyle.Render(fmt.Sprintf("%d / %d allowed", count, allowed)))
		}
	}

	for _, f := range hr.SkippedFiles {
		fmt.Fprintf(b, "    %s %s %s\n", skipStyle.Render("○"), fileStyle.Render(f), skipStyle.Render("unreadable, skipped"))
	}

	show := domain.Severities
	if !verbose {
		show = compliance.Exceeded(hr.Violations, level)
	}
	for _, sev := range show {
		for _, v := range hr.Violations.Bucket(sev) {
			renderViolation(b, v)
		}
	}
}

func renderViolation(b *strings.Builder, v domain.Violation) {
	loc := fmt.Sprintf("%s:%d", v.File, v.Line)
	fmt.Fprintf(b, "      %s %s  %s\n", severityTag(v.Severity), fileStyle.Render(loc), v.Code)
	fmt.Fprintf(b, "             %s\n", dimStyle.Render(v.Message))
}

func renderComplianceSummary(b *strings.Builder, rep domain.ComplianceReport) {
	s := rep.Summary
	style := passStyle
	if s.CompliantHubs < s.TotalHubs {
		style = failStyle
	}
	fmt.Fprintf(b, "  %s  %s  %s\n",
		titleStyle.Render("Summary"),
		style.Render(fmt.Sprintf("%d/%d hubs compliant", s.CompliantHubs, s.TotalHubs)),
		dimStyle.Render(fmt.Sprintf("%d violations", s.TotalViolations)),
	)
	if names := rep.CompliantHubs(); len(names) > 0 {
		fmt.Fprintf(b, "    %s %s\n", passStyle.Render("compliant:"), strings.Join(names, ", "))
	}
	if names := rep.NonCompliantHubs(); len(names) > 0 {
		fmt.Fprintf(b, "    %s %s\n", failStyle.Render("non-compliant:"), strings.Join(names, ", "))
	}
}

func renderRemediation(b *strings.Builder, remedies []compliance.Remedy) {
	if len(remedies) == 0 {
		return
	}
	b.WriteString("\n  " + sectionHeaderStyle.Render("Remediation") + "\n")
	for _, r := range remedies {
		fmt.Fprintf(b, "    %s %s\n", severityTag(r.Severity), dimStyle.Render(fmt.Sprintf("(%d)", r.Count)))
		for _, m := range r.Messages {
			fmt.Fprintf(b, "      • %s\n", m)
		}
	}
}

func renderGuidePointer(b *strings.Builder, guide string) {
	if guide == "" {
		return
	}
	b.WriteString("\n  " + hintStyle.Render("See "+guide+" for migration steps.") + "\n")
}

func severityTag(sev domain.Severity) string {
	color, ok := severityColors[sev]
	if !ok {
		color = info
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(padRight(string(sev), 8))
}

func coloredBar(pct float64, width int) string {
	filled := max(0, min(int(pct)*width/100, width))
	empty := width - filled

	color := scoreColor(pct)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

func scoreColor(pct float64) lipgloss.Color {
	switch {
	case pct >= 80:
		return success
	case pct >= 60:
		return lipgloss.Color("#A3E635") // lime
	case pct >= 40:
		return warning
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func gradeColor(grade domain.Grade) lipgloss.Color {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return fg
}
