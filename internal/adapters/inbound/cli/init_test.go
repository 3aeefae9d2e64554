package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/openkraft/hubguard/internal/adapters/inbound/cli"
	"github.com/openkraft/hubguard/internal/adapters/outbound/config"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".hubguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "packages_dir: packages")
	assert.Contains(t, string(data), "hub_suffix: -hub")
	assert.Contains(t, string(data), "# rules:")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	def := domain.DefaultConfig()
	assert.Equal(t, def.Extensions, cfg.Extensions)
	assert.Equal(t, def.Grading, cfg.Grading)
	assert.Equal(t, def.Build, cfg.Build)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hubguard.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".hubguard.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".hubguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "packages_dir:")
	assert.NotEqual(t, "old", string(data))
}
