package domain

import "time"

// ComplianceSummary is the run-level rollup of a compliance report.
type ComplianceSummary struct {
	TotalHubs       int `json:"totalHubs"`
	CompliantHubs   int `json:"compliantHubs"`
	TotalViolations int `json:"totalViolations"`
}

// ComplianceReport is the JSON artifact of one validation run.
type ComplianceReport struct {
	RunID           string            `json:"runId"`
	Timestamp       time.Time         `json:"timestamp"`
	ComplianceLevel string            `json:"complianceLevel"`
	Commit          string            `json:"commit,omitempty"`
	HubResults      []HubScanResult   `json:"hubResults"`
	Summary         ComplianceSummary `json:"summary"`
}

// NewComplianceReport builds a report and its summary from per-hub results.
func NewComplianceReport(runID string, ts time.Time, level string, results []HubScanResult) ComplianceReport {
	if results == nil {
		results = []HubScanResult{}
	}
	r := ComplianceReport{
		RunID:           runID,
		Timestamp:       ts.UTC(),
		ComplianceLevel: level,
		HubResults:      results,
	}
	r.Summary.TotalHubs = len(results)
	for _, hr := range results {
		if hr.Compliant {
			r.Summary.CompliantHubs++
		}
		r.Summary.TotalViolations += hr.Total
	}
	return r
}

// AllCompliant reports whether every hub passed.
func (r ComplianceReport) AllCompliant() bool {
	return r.Summary.CompliantHubs == r.Summary.TotalHubs
}

// CompliantHubs returns the names of passing hubs in report order.
func (r ComplianceReport) CompliantHubs() []string { return r.hubNames(true) }

// NonCompliantHubs returns the names of failing hubs in report order.
func (r ComplianceReport) NonCompliantHubs() []string { return r.hubNames(false) }

func (r ComplianceReport) hubNames(compliant bool) []string {
	var names []string
	for _, hr := range r.HubResults {
		if hr.Compliant == compliant {
			names = append(names, hr.HubName)
		}
	}
	return names
}

// BuildMode selects the build gate policy.
type BuildMode string

const (
	BuildModeProduction  BuildMode = "production"
	BuildModeDevelopment BuildMode = "development"
)

// BuildOutcome is the terminal state a build gate run reached.
type BuildOutcome string

const (
	OutcomeHalted         BuildOutcome = "halted"
	OutcomeComplianceOnly BuildOutcome = "compliance-only"
	OutcomeBuilt          BuildOutcome = "built"
	OutcomeBuildFailed    BuildOutcome = "build-failed"
)

// BuildSummary counts build attempts. Skipped hubs are not attempted.
type BuildSummary struct {
	Attempted  int           `json:"attempted"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Skipped    int           `json:"skipped"`
	Results    []BuildResult `json:"results"`
}

// Record adds one build result to the summary.
func (s *BuildSummary) Record(r BuildResult) {
	s.Results = append(s.Results, r)
	switch {
	case r.Skipped:
		s.Skipped++
	case r.Success:
		s.Attempted++
		s.Successful++
	default:
		s.Attempted++
		s.Failed++
	}
}

// BuildReport extends the compliance report with the build section.
type BuildReport struct {
	ComplianceReport
	Mode           BuildMode    `json:"mode"`
	Outcome        BuildOutcome `json:"outcome"`
	TotalBuildTime int64        `json:"totalBuildTime"`
	Builds         BuildSummary `json:"builds"`
}

// CommitReport is the verdict of the commit gate.
type CommitReport struct {
	Timestamp       time.Time       `json:"timestamp"`
	StagedFiles     []string        `json:"stagedFiles"`
	TouchedHubs     []string        `json:"touchedHubs"`
	Allowed         bool            `json:"allowed"`
	HubResults      []HubScanResult `json:"hubResults"`
	TotalViolations int             `json:"totalViolations"`
}

// BlockedHubs returns the touched hubs that failed the strict level.
func (r CommitReport) BlockedHubs() []HubScanResult {
	var blocked []HubScanResult
	for _, hr := range r.HubResults {
		if !hr.Compliant {
			blocked = append(blocked, hr)
		}
	}
	return blocked
}

// UnifiedHubResult joins the two verdicts for one hub.
type UnifiedHubResult struct {
	HubName        string             `json:"hubName"`
	Infrastructure HubScanResult      `json:"infrastructure"`
	Architecture   ArchitectureResult `json:"architecture"`
	Assessment     OverallAssessment  `json:"overall"`
}

// UnifiedSummary counts passed and failed hubs.
type UnifiedSummary struct {
	TotalHubs  int `json:"totalHubs"`
	PassedHubs int `json:"passedHubs"`
	FailedHubs int `json:"failedHubs"`
}

// UnifiedReport is the artifact of a unified run.
type UnifiedReport struct {
	Timestamp       time.Time          `json:"timestamp"`
	ComplianceLevel string             `json:"complianceLevel"`
	Summary         UnifiedSummary     `json:"summary"`
	Results         []UnifiedHubResult `json:"results"`
}

// NewUnifiedReport builds a unified report and its summary.
func NewUnifiedReport(ts time.Time, level string, results []UnifiedHubResult) UnifiedReport {
	if results == nil {
		results = []UnifiedHubResult{}
	}
	r := UnifiedReport{Timestamp: ts.UTC(), ComplianceLevel: level, Results: results}
	r.Summary.TotalHubs = len(results)
	for _, u := range results {
		if u.Assessment.Passed {
			r.Summary.PassedHubs++
		} else {
			r.Summary.FailedHubs++
		}
	}
	return r
}
