package wiring_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/wiring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/monorepo"

func TestLoad_FixtureDefaults(t *testing.T) {
	env, err := wiring.Load(fixtureDir, nil)
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(env.ProjectPath))
	assert.Equal(t, domain.DefaultRuleSet().Len(), env.Rules.Len())
	assert.ElementsMatch(t, []string{"development", "standard", "strict"}, env.Levels.Names())

	hs, err := env.Hubs(application.Target{AllHubs: true})
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, "campaign-hub", hs[0].Name)

	assert.NotNil(t, env.BuildService())
	assert.NotNil(t, env.CommitService())
	assert.NotNil(t, env.UnifiedService())
}

func TestLoad_CustomRulesAndLevels(t *testing.T) {
	dir := t.TempDir()
	cfg := `
levels:
  relaxed:
    allowed_high: 100
rules:
  - id: jquery
    severity: medium
    literal: "$.ajax("
    message: "Use @tamyla/shared/api"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hubguard.yaml"), []byte(cfg), 0644))

	env, err := wiring.Load(dir, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultRuleSet().Len()+1, env.Rules.Len())
	_, err = env.Levels.Lookup("relaxed")
	assert.NoError(t, err)
}

func TestLoad_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hubguard.yaml"), []byte("workers: -1\n"), 0644))

	_, err := wiring.Load(dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .hubguard.yaml")
}

func TestLoad_NoHubs(t *testing.T) {
	env, err := wiring.Load(t.TempDir(), nil)
	require.NoError(t, err)
	_, err = env.Hubs(application.Target{AllHubs: true})
	assert.ErrorIs(t, err, domain.ErrNoHubs)
}

func TestLoad_ScanCachePersists(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "packages", "content-hub", "src")
	require.NoError(t, os.MkdirAll(src, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "api.js"), []byte("fetch(url)\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hubguard.yaml"), []byte("cache: true\n"), 0644))

	scan := func() domain.HubScanResult {
		env, err := wiring.Load(dir, nil)
		require.NoError(t, err)
		hs, err := env.Hubs(application.Target{AllHubs: true})
		require.NoError(t, err)
		results, err := env.Compliance.Validate(context.Background(), hs, domain.DefaultLevels()[domain.LevelStrict])
		require.NoError(t, err)
		env.FlushCache()
		return results[0]
	}

	first := scan()
	_, err := os.Stat(filepath.Join(dir, ".hubguard", "cache", "scan.json"))
	require.NoError(t, err)

	second := scan()
	assert.Equal(t, first.Violations, second.Violations)
	assert.Len(t, second.Violations.High, 1)
}
