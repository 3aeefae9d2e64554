package domain

// Severity ranks a rule by remediation urgency.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity from most to least urgent.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity returns the severity named s, or false if s is not one.
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range Severities {
		if string(sev) == s {
			return sev, true
		}
	}
	return "", false
}

// Rank orders severities: 0 for critical up to 3 for low.
func (s Severity) Rank() int {
	for i, sev := range Severities {
		if sev == s {
			return i
		}
	}
	return len(Severities)
}

// Hub is a package directory that is scanned, built and graded on its own.
type Hub struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Violation is one occurrence of a rule matching one line in one file.
type Violation struct {
	Hub      string   `json:"hub"`
	File     string   `json:"file"`
	Line     int      `json:"line"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	RuleID   string   `json:"ruleId,omitempty"`
}

// ViolationSet buckets a hub's violations by severity.
type ViolationSet struct {
	Critical []Violation `json:"critical"`
	High     []Violation `json:"high"`
	Medium   []Violation `json:"medium"`
	Low      []Violation `json:"low"`
}

// NewViolationSet returns a set with empty, non-nil buckets so it encodes
// as [] rather than null.
func NewViolationSet() ViolationSet {
	return ViolationSet{
		Critical: []Violation{},
		High:     []Violation{},
		Medium:   []Violation{},
		Low:      []Violation{},
	}
}

// Bucket returns the violations recorded for sev.
func (s ViolationSet) Bucket(sev Severity) []Violation {
	switch sev {
	case SeverityCritical:
		return s.Critical
	case SeverityHigh:
		return s.High
	case SeverityMedium:
		return s.Medium
	case SeverityLow:
		return s.Low
	default:
		return nil
	}
}

// Add files v into the bucket matching its severity.
// Violations with an unknown severity are dropped.
func (s *ViolationSet) Add(v Violation) {
	switch v.Severity {
	case SeverityCritical:
		s.Critical = append(s.Critical, v)
	case SeverityHigh:
		s.High = append(s.High, v)
	case SeverityMedium:
		s.Medium = append(s.Medium, v)
	case SeverityLow:
		s.Low = append(s.Low, v)
	}
}

func (s ViolationSet) Count(sev Severity) int { return len(s.Bucket(sev)) }

func (s ViolationSet) Total() int {
	return len(s.Critical) + len(s.High) + len(s.Medium) + len(s.Low)
}

// HubScanResult is the verdict for one hub in one validation run.
type HubScanResult struct {
	HubName      string       `json:"hubName"`
	Violations   ViolationSet `json:"violations"`
	Total        int          `json:"total"`
	Compliant    bool         `json:"compliant"`
	SkippedFiles []string     `json:"skippedFiles,omitempty"`
}

// ArchitectureCheck is one discrete structural check of a hub.
type ArchitectureCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Score  int    `json:"score"`
	Points int    `json:"points"`
	Detail string `json:"detail,omitempty"`
}

// ArchitectureResult sums the structural checks of a hub.
type ArchitectureResult struct {
	Checks   []ArchitectureCheck `json:"checks"`
	Score    int                 `json:"score"`
	MaxScore int                 `json:"maxScore"`
	Passed   bool                `json:"passed"`
}

// Pct returns the architecture score as a percentage of the maximum.
func (r ArchitectureResult) Pct() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.MaxScore) * 100
}

type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeB     Grade = "B"
	GradeC     Grade = "C"
	GradeF     Grade = "F"
)

// OverallAssessment combines architecture and infrastructure verdicts.
type OverallAssessment struct {
	Passed                  bool    `json:"passed"`
	Grade                   Grade   `json:"grade"`
	Status                  string  `json:"status"`
	ArchitectureScorePct    float64 `json:"architectureScore"`
	InfrastructureCompliant bool    `json:"infrastructureCompliant"`
	Summary                 string  `json:"summary"`
}

// BuildResult records one hub build attempt.
type BuildResult struct {
	HubName   string `json:"hubName"`
	Success   bool   `json:"success"`
	Skipped   bool   `json:"skipped,omitempty"`
	BuildTime int64  `json:"buildTime"`
	Error     string `json:"error,omitempty"`
}
