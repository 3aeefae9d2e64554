package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/hubguard/internal/adapters/outbound/cache"
	"github.com/openkraft/hubguard/internal/domain"
)

func TestStore_SaveAndLoad(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	original := domain.NewScanCache(projectPath, "abc123")
	original.Files["content-hub/src/api.js"] = domain.CachedFile{
		Size: 42, ModTime: 7,
		Violations: []domain.Violation{{Hub: "content-hub", File: "src/api.js", Line: 4, Severity: domain.SeverityHigh}},
	}

	require.NoError(t, store.Save(original))

	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, original.ProjectPath, loaded.ProjectPath)
	assert.Equal(t, "abc123", loaded.RulesHash)
	assert.Equal(t, original.Files, loaded.Files)
}

func TestStore_LoadNonExistent(t *testing.T) {
	store := cache.New()

	loaded, err := store.Load(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_Invalidate(t *testing.T) {
	store := cache.New()
	projectPath := t.TempDir()

	require.NoError(t, store.Save(domain.NewScanCache(projectPath, "abc123")))
	_, err := os.Stat(filepath.Join(projectPath, ".hubguard", "cache", "scan.json"))
	require.NoError(t, err)

	require.NoError(t, store.Invalidate(projectPath))

	loaded, err := store.Load(projectPath)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStore_InvalidateNonExistent(t *testing.T) {
	assert.NoError(t, cache.New().Invalidate(t.TempDir()))
}

func TestStore_LoadCorrupt(t *testing.T) {
	projectPath := t.TempDir()
	dir := filepath.Join(projectPath, ".hubguard", "cache")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scan.json"), []byte("{not json"), 0644))

	_, err := cache.New().Load(projectPath)
	assert.Error(t, err)
}
