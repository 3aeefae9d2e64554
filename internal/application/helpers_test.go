package application_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/openkraft/hubguard/internal/adapters/outbound/hubs"
	"github.com/openkraft/hubguard/internal/adapters/outbound/scanner"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/stretchr/testify/require"
)

const fixtureDir = "../../testdata/monorepo"

// countingScanner records how many files were scanned.
type countingScanner struct {
	inner domain.FileScanner
	calls atomic.Int64
}

func (c *countingScanner) ScanFile(hub domain.Hub, rel string) ([]domain.Violation, error) {
	c.calls.Add(1)
	return c.inner.ScanFile(hub, rel)
}

// failingScanner fails one file and delegates the rest.
type failingScanner struct {
	inner domain.FileScanner
	fail  string
}

func (f *failingScanner) ScanFile(hub domain.Hub, rel string) ([]domain.Violation, error) {
	if rel == f.fail {
		return nil, errors.New("permission denied")
	}
	return f.inner.ScanFile(hub, rel)
}

type fakeBuilder struct {
	mu     sync.Mutex
	fail   map[string]bool
	skip   map[string]bool
	called []string
}

func (b *fakeBuilder) Build(_ context.Context, hub domain.Hub) domain.BuildResult {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.called = append(b.called, hub.Name)
	switch {
	case b.skip[hub.Name]:
		return domain.BuildResult{HubName: hub.Name, Skipped: true}
	case b.fail[hub.Name]:
		return domain.BuildResult{HubName: hub.Name, BuildTime: 5, Error: "exit status 1"}
	default:
		return domain.BuildResult{HubName: hub.Name, Success: true, BuildTime: 10}
	}
}

type fakeWriter struct {
	path   string
	report any
}

func (w *fakeWriter) Write(path string, report any) error {
	w.path, w.report = path, report
	return nil
}

type fakeLister struct {
	files []string
	err   error
}

func (l fakeLister) StagedFiles(string) ([]string, error) { return l.files, l.err }

type fakeRevisions struct{}

func (fakeRevisions) CommitHash(string) (string, error) { return "abc123", nil }

func newScanner(t *testing.T) *countingScanner {
	t.Helper()
	return &countingScanner{inner: scanner.NewLineScanner(domain.DefaultRuleSet())}
}

func newComplianceService(t *testing.T, fs domain.FileScanner) *application.ComplianceService {
	t.Helper()
	cfg := domain.DefaultConfig()
	filter, err := scanner.NewPathFilter(cfg.ExcludePaths...)
	require.NoError(t, err)
	return application.NewComplianceService(
		hubs.New(cfg.PackagesDir, cfg.HubSuffix),
		scanner.NewWalker(filter, fixtureDir, cfg.Extensions),
		fs,
		nil,
		4,
		nil,
	)
}

func levels() domain.Levels {
	return domain.DefaultConfig().AllLevels()
}

func mustLevel(t *testing.T, name string) domain.ComplianceLevel {
	t.Helper()
	l, err := levels().Lookup(name)
	require.NoError(t, err)
	return l
}

func mustHubs(t *testing.T, svc *application.ComplianceService, target application.Target) []domain.Hub {
	t.Helper()
	hs, err := svc.ResolveHubs(fixtureDir, target)
	require.NoError(t, err)
	return hs
}
