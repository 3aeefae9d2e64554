package scoring_test

import (
	"testing"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/scoring"
	"github.com/stretchr/testify/assert"
)

func arch(score, max int) domain.ArchitectureResult {
	return domain.ArchitectureResult{Score: score, MaxScore: max}
}

func scan(compliant bool, critical, high int) domain.HubScanResult {
	set := domain.NewViolationSet()
	for i := 0; i < critical; i++ {
		set.Add(domain.Violation{Severity: domain.SeverityCritical})
	}
	for i := 0; i < high; i++ {
		set.Add(domain.Violation{Severity: domain.SeverityHigh})
	}
	return domain.HubScanResult{Violations: set, Total: set.Total(), Compliant: compliant}
}

func TestAssess_GradeLadder(t *testing.T) {
	policy := domain.DefaultGradingPolicy()
	tests := []struct {
		name   string
		arch   domain.ArchitectureResult
		scan   domain.HubScanResult
		grade  domain.Grade
		status string
		passed bool
	}{
		{"perfect", arch(10, 10), scan(true, 0, 0), domain.GradeAPlus, "EXCELLENT", true},
		{"85 percent with violations", arch(17, 20), scan(true, 0, 3), domain.GradeA, "GOOD", true},
		{"95 percent with violations", arch(19, 20), scan(true, 0, 1), domain.GradeA, "GOOD", true},
		{"exactly 80", arch(8, 10), scan(true, 0, 0), domain.GradeA, "GOOD", true},
		{"exactly 70", arch(7, 10), scan(true, 0, 0), domain.GradeB, "PASSING", true},
		{"good architecture, non-compliant", arch(10, 10), scan(false, 0, 9), domain.GradeC, "NEEDS WORK", false},
		{"weak architecture, no critical", arch(2, 10), scan(false, 0, 9), domain.GradeC, "NEEDS WORK", false},
		{"half architecture with critical", arch(5, 10), scan(false, 2, 0), domain.GradeC, "NEEDS WORK", false},
		{"weak architecture with critical", arch(4, 10), scan(false, 1, 0), domain.GradeF, "CRITICAL", false},
		{"weak architecture, compliant", arch(6, 10), scan(true, 0, 0), domain.GradeC, "NEEDS WORK", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := scoring.Assess(tt.arch, tt.scan, policy)
			assert.Equal(t, tt.grade, a.Grade)
			assert.Equal(t, tt.status, a.Status)
			assert.Equal(t, tt.passed, a.Passed)
			assert.Equal(t, tt.scan.Compliant, a.InfrastructureCompliant)
		})
	}
}

func TestAssess_Summary(t *testing.T) {
	a := scoring.Assess(arch(17, 20), scan(true, 0, 3), domain.DefaultGradingPolicy())
	assert.InDelta(t, 85.0, a.ArchitectureScorePct, 0.001)
	assert.Equal(t, "85% architecture, 3 violations", a.Summary)
}

func TestAssess_CustomPolicy(t *testing.T) {
	policy := domain.GradingPolicy{ArchitecturePassPct: 50, APlusPct: 100, APct: 60, CArchitecturePct: 30}
	a := scoring.Assess(arch(6, 10), scan(true, 0, 0), policy)
	assert.True(t, a.Passed)
	assert.Equal(t, domain.GradeA, a.Grade)
}
