package tui

import (
	"fmt"
	"strings"

	"github.com/openkraft/hubguard/internal/domain"
)

// RenderRules lists the active rule set grouped by severity.
func RenderRules(rules domain.RuleSet) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Rules") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", rules.Len())) + "\n")
	b.WriteString("  " + separatorLine + "\n")

	for _, sev := range domain.Severities {
		group := rules.BySeverity(sev)
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n  %s\n", severityTag(sev))
		for _, r := range group {
			fmt.Fprintf(&b, "    %s %s\n", hubNameStyle.Render(padRight(r.ID, 20)), fileStyle.Render(r.Pattern))
			fmt.Fprintf(&b, "    %s %s\n", strings.Repeat(" ", 20), dimStyle.Render(r.Message))
		}
	}
	b.WriteString("\n")
	return b.String()
}
