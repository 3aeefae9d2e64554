package compliance

import "github.com/openkraft/hubguard/internal/domain"

// ShouldProceed decides whether the build gate may leave compliance checking.
// Production requires every hub to be compliant; otherwise only critical
// violations block.
func ShouldProceed(results []domain.HubScanResult, production bool) bool {
	for _, r := range results {
		if production && !r.Compliant {
			return false
		}
		if r.Violations.Count(domain.SeverityCritical) > 0 {
			return false
		}
	}
	return true
}

// Remedy is the remediation guidance for one severity bucket.
type Remedy struct {
	Severity domain.Severity `json:"severity"`
	Count    int             `json:"count"`
	Messages []string        `json:"messages"`
}

// Remediation groups the distinct rule messages of the given results by
// severity, most urgent first. Empty buckets are omitted.
func Remediation(results ...domain.HubScanResult) []Remedy {
	var out []Remedy
	for _, sev := range domain.Severities {
		r := Remedy{Severity: sev}
		seen := make(map[string]bool)
		for _, hr := range results {
			for _, v := range hr.Violations.Bucket(sev) {
				r.Count++
				if !seen[v.Message] {
					seen[v.Message] = true
					r.Messages = append(r.Messages, v.Message)
				}
			}
		}
		if r.Count > 0 {
			out = append(out, r)
		}
	}
	return out
}
