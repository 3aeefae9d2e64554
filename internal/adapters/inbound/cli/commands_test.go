package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/hubguard/internal/adapters/inbound/cli"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../../../testdata/monorepo"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_RequiresTarget(t *testing.T) {
	_, err := run(t, "validate", "--path", fixtureDir)
	assert.ErrorIs(t, err, domain.ErrNoTarget)
}

func TestValidate_UnknownHub(t *testing.T) {
	_, err := run(t, "validate", "--path", fixtureDir, "--hub", "ghost-hub")
	assert.ErrorIs(t, err, domain.ErrHubNotFound)
}

func TestValidate_HubAndAllHubsExclusive(t *testing.T) {
	_, err := run(t, "validate", "--path", fixtureDir, "--hub", "content-hub", "--all-hubs")
	assert.Error(t, err)
}

func TestValidate_LevelFlagsExclusive(t *testing.T) {
	_, err := run(t, "validate", "--path", fixtureDir, "--all-hubs", "--strict", "--development")
	assert.Error(t, err)
}

func TestValidate_AdvisoryByDefault(t *testing.T) {
	out, err := run(t, "validate", "--path", fixtureDir, "--all-hubs", "--strict")
	require.NoError(t, err)
	assert.Contains(t, out, "0/2 hubs compliant")
	assert.Contains(t, out, "src/api.js:4")
}

func TestValidate_FailOnViolations(t *testing.T) {
	_, err := run(t, "validate", "--path", fixtureDir, "--all-hubs", "--fail-on-violations")
	require.ErrorIs(t, err, domain.ErrNonCompliant)
	assert.Contains(t, err.Error(), "campaign-hub")
	assert.NotContains(t, err.Error(), "content-hub")
}

func TestValidate_JSONAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	reportPath := filepath.Join(dir, "report.json")
	metricsPath := filepath.Join(dir, "hubguard.prom")

	out, err := run(t, "validate", "--path", fixtureDir, "--hub", "content-hub", "--json",
		"--output", reportPath, "--metrics-file", metricsPath)
	require.NoError(t, err)

	var rep domain.ComplianceReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "standard", rep.ComplianceLevel)
	assert.NotEmpty(t, rep.RunID)
	assert.Equal(t, 3, rep.Summary.TotalViolations)

	_, err = os.Stat(reportPath)
	assert.NoError(t, err)
	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "hubguard_hubs_total 1")
}

func TestBuild_ProductionHalts(t *testing.T) {
	out, err := run(t, "build", "--path", fixtureDir, "--all-hubs", "--production")
	require.ErrorIs(t, err, domain.ErrBuildHalted)
	assert.Contains(t, out, "halted by compliance")
}

func TestBuild_SkipBuild(t *testing.T) {
	out, err := run(t, "build", "--path", fixtureDir, "--hub", "content-hub", "--skip-build")
	require.NoError(t, err)
	assert.Contains(t, out, "compliance only")
}

func TestPrecommit_DocsOnlyAllowed(t *testing.T) {
	out, err := run(t, "precommit", "--path", fixtureDir, "--staged", "docs/README.md")
	require.NoError(t, err)
	assert.Contains(t, out, "No hubs touched")
}

func TestPrecommit_BlocksTouchedHub(t *testing.T) {
	reportPath := filepath.Join(t.TempDir(), "commit.json")
	out, err := run(t, "precommit", "--path", fixtureDir,
		"--staged", "packages/content-hub/src/api.js,docs/README.md", "--output", reportPath)
	require.ErrorIs(t, err, domain.ErrCommitBlocked)
	assert.Contains(t, out, "Commit blocked")
	assert.Contains(t, out, "Quick fixes")

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	var rep domain.CommitReport
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.False(t, rep.Allowed)
	assert.Equal(t, []string{"content-hub"}, rep.TouchedHubs)
}

func TestUnified_JSON(t *testing.T) {
	out, err := run(t, "unified", "--path", fixtureDir, "--all-hubs", "--json")
	require.NoError(t, err)

	var rep domain.UnifiedReport
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 1, rep.Summary.PassedHubs)
	assert.Equal(t, 1, rep.Summary.FailedHubs)
}

func TestUnified_FailOnViolations(t *testing.T) {
	out, err := run(t, "unified", "--path", fixtureDir, "--all-hubs", "--fail-on-violations")
	require.ErrorIs(t, err, domain.ErrNotPassed)
	assert.Contains(t, err.Error(), "campaign-hub")
	assert.Contains(t, out, "1/2 hubs passed")
}

func TestRules_Console(t *testing.T) {
	out, err := run(t, "rules", "--path", fixtureDir)
	require.NoError(t, err)
	assert.Contains(t, out, "event-target")
	assert.Contains(t, out, "raw-fetch")
}

func TestRules_JSON(t *testing.T) {
	out, err := run(t, "rules", "--path", fixtureDir, "--json")
	require.NoError(t, err)
	var rules []domain.Rule
	require.NoError(t, json.Unmarshal([]byte(out), &rules))
	assert.Len(t, rules, domain.DefaultRuleSet().Len())
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hubguard dev")
}

func TestLogLevel_Invalid(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}
