package compliance

import "github.com/openkraft/hubguard/internal/domain"

// Evaluate reports whether every bucket of set is within level's caps.
func Evaluate(set domain.ViolationSet, level domain.ComplianceLevel) bool {
	for _, sev := range domain.Severities {
		if set.Count(sev) > level.Allowed(sev) {
			return false
		}
	}
	return true
}

// Result builds the immutable verdict for one hub.
func Result(hub string, set domain.ViolationSet, level domain.ComplianceLevel, skipped []string) domain.HubScanResult {
	return domain.HubScanResult{
		HubName:      hub,
		Violations:   set,
		Total:        set.Total(),
		Compliant:    Evaluate(set, level),
		SkippedFiles: skipped,
	}
}

// Exceeded lists the severities whose counts are over level's caps.
func Exceeded(set domain.ViolationSet, level domain.ComplianceLevel) []domain.Severity {
	var over []domain.Severity
	for _, sev := range domain.Severities {
		if set.Count(sev) > level.Allowed(sev) {
			over = append(over, sev)
		}
	}
	return over
}
