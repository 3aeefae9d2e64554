package cache_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkraft/hubguard/internal/adapters/outbound/cache"
	"github.com/openkraft/hubguard/internal/domain"
)

type stubScanner struct {
	calls atomic.Int64
	err   error
}

func (s *stubScanner) ScanFile(hub domain.Hub, rel string) ([]domain.Violation, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Violation{{Hub: hub.Name, File: rel, Line: 1, Severity: domain.SeverityHigh}}, nil
}

func writeHubFile(t *testing.T, content string) domain.Hub {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "api.js"), []byte(content), 0644))
	return domain.Hub{Name: "content-hub", Path: dir}
}

func TestScanner_HitsUnchangedFile(t *testing.T) {
	hub := writeHubFile(t, "fetch(x)\n")
	inner := &stubScanner{}
	s := cache.NewScanner(inner, domain.NewScanCache(hub.Path, "h"))

	first, err := s.ScanFile(hub, "api.js")
	require.NoError(t, err)
	second, err := s.ScanFile(hub, "api.js")
	require.NoError(t, err)

	assert.EqualValues(t, 1, inner.calls.Load())
	assert.Equal(t, 1, s.Hits())
	assert.Equal(t, first, second)
}

func TestScanner_RescansChangedFile(t *testing.T) {
	hub := writeHubFile(t, "fetch(x)\n")
	inner := &stubScanner{}
	s := cache.NewScanner(inner, domain.NewScanCache(hub.Path, "h"))

	_, err := s.ScanFile(hub, "api.js")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(hub.Path, "api.js"), []byte("fetch(x)\nfetch(y)\n"), 0644))
	_, err = s.ScanFile(hub, "api.js")
	require.NoError(t, err)

	assert.EqualValues(t, 2, inner.calls.Load())
	assert.Zero(t, s.Hits())
}

func TestScanner_ErrorsAreNotCached(t *testing.T) {
	hub := writeHubFile(t, "x\n")
	inner := &stubScanner{err: errors.New("denied")}
	c := domain.NewScanCache(hub.Path, "h")
	s := cache.NewScanner(inner, c)

	_, err := s.ScanFile(hub, "api.js")
	assert.Error(t, err)
	assert.Empty(t, c.Files)
}

func TestScanner_FlushOnlyWhenDirty(t *testing.T) {
	hub := writeHubFile(t, "fetch(x)\n")
	projectPath := t.TempDir()
	store := cache.New()
	s := cache.NewScanner(&stubScanner{}, domain.NewScanCache(projectPath, "h"))

	require.NoError(t, s.Flush(store))
	loaded, err := store.Load(projectPath)
	require.NoError(t, err)
	assert.Nil(t, loaded, "nothing scanned, nothing saved")

	_, err = s.ScanFile(hub, "api.js")
	require.NoError(t, err)
	require.NoError(t, s.Flush(store))

	loaded, err = store.Load(projectPath)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Contains(t, loaded.Files, "content-hub/api.js")
}
