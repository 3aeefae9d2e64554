package scoring

import (
	"fmt"
	"math"

	"github.com/openkraft/hubguard/internal/domain"
)

var statusLabels = map[domain.Grade]string{
	domain.GradeAPlus: "EXCELLENT",
	domain.GradeA:     "GOOD",
	domain.GradeB:     "PASSING",
	domain.GradeC:     "NEEDS WORK",
	domain.GradeF:     "CRITICAL",
}

// Assess combines the architecture score and the compliance verdict into a
// graded assessment. Grades are checked top-down; the first match wins.
func Assess(arch domain.ArchitectureResult, scan domain.HubScanResult, policy domain.GradingPolicy) domain.OverallAssessment {
	pct := arch.Pct()
	passed := pct >= policy.ArchitecturePassPct && scan.Compliant
	total := scan.Violations.Total()

	var grade domain.Grade
	switch {
	case passed && pct >= policy.APlusPct && total == 0:
		grade = domain.GradeAPlus
	case passed && pct >= policy.APct:
		grade = domain.GradeA
	case passed:
		grade = domain.GradeB
	case pct >= policy.CArchitecturePct || scan.Violations.Count(domain.SeverityCritical) == 0:
		grade = domain.GradeC
	default:
		grade = domain.GradeF
	}

	return domain.OverallAssessment{
		Passed:                  passed,
		Grade:                   grade,
		Status:                  statusLabels[grade],
		ArchitectureScorePct:    pct,
		InfrastructureCompliant: scan.Compliant,
		Summary:                 fmt.Sprintf("%d%% architecture, %d violations", int(math.Round(pct)), total),
	}
}
