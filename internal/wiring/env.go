// Package wiring assembles the outbound adapters and application services
// for one project root. Both inbound adapters (CLI and MCP) start here.
package wiring

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/openkraft/hubguard/internal/adapters/outbound/builder"
	"github.com/openkraft/hubguard/internal/adapters/outbound/cache"
	"github.com/openkraft/hubguard/internal/adapters/outbound/config"
	"github.com/openkraft/hubguard/internal/adapters/outbound/gitinfo"
	"github.com/openkraft/hubguard/internal/adapters/outbound/hubs"
	"github.com/openkraft/hubguard/internal/adapters/outbound/report"
	"github.com/openkraft/hubguard/internal/adapters/outbound/scanner"
	"github.com/openkraft/hubguard/internal/application"
	"github.com/openkraft/hubguard/internal/domain"
)

// Env is the wired environment for a project root.
type Env struct {
	ProjectPath string
	Config      domain.ProjectConfig
	Rules       domain.RuleSet
	Levels      domain.Levels
	Filter      *scanner.PathFilter
	Git         *gitinfo.GitInfoAdapter
	Reports     *report.FileWriter
	Compliance  *application.ComplianceService
	Logger      *slog.Logger

	scanCache *cache.Scanner
	cacheDB   *cache.Store
}

// Load reads the project configuration under path and wires the compliance
// pipeline. Configuration errors are returned before anything is scanned.
func Load(path string, logger *slog.Logger) (*Env, error) {
	if logger == nil {
		logger = slog.Default()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.New().Load(abs)
	if err != nil {
		return nil, err
	}
	rules, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}
	filter, err := scanner.NewPathFilter(cfg.ExcludePaths...)
	if err != nil {
		return nil, fmt.Errorf("exclude_paths: %w", err)
	}

	var fileScanner domain.FileScanner = scanner.NewLineScanner(rules)
	var scanCache *cache.Scanner
	store := cache.New()
	if cfg.Cache {
		scanCache = newCachingScanner(store, fileScanner, abs, rules.Fingerprint(), logger)
		fileScanner = scanCache
	}

	git := gitinfo.New()
	env := &Env{
		ProjectPath: abs,
		Config:      cfg,
		Rules:       rules,
		Levels:      cfg.AllLevels(),
		Filter:      filter,
		Git:         git,
		Reports:     report.New(),
		Logger:      logger,
		scanCache:   scanCache,
		cacheDB:     store,
	}
	env.Compliance = application.NewComplianceService(
		hubs.New(cfg.PackagesDir, cfg.HubSuffix),
		scanner.NewWalker(filter, abs, cfg.Extensions),
		fileScanner,
		git,
		cfg.EffectiveWorkers(),
		logger,
	)
	logger.Debug("environment loaded", "path", abs, "rules", rules.Len(), "workers", cfg.EffectiveWorkers())
	return env, nil
}

func newCachingScanner(store *cache.Store, inner domain.FileScanner, projectPath, rulesHash string, logger *slog.Logger) *cache.Scanner {
	c, err := store.Load(projectPath)
	switch {
	case err != nil:
		logger.Warn("scan cache unreadable, starting fresh", "error", err)
		c = nil
	case c != nil && c.IsInvalidated(rulesHash):
		logger.Debug("rule set changed, scan cache discarded")
		c = nil
	}
	if c == nil {
		c = domain.NewScanCache(projectPath, rulesHash)
	}
	return cache.NewScanner(inner, c)
}

// FlushCache persists scan results when caching is enabled. Failures are
// logged, never fatal.
func (e *Env) FlushCache() {
	if e.scanCache == nil {
		return
	}
	if err := e.scanCache.Flush(e.cacheDB); err != nil {
		e.Logger.Warn("saving scan cache", "error", err)
		return
	}
	e.Logger.Debug("scan cache saved", "hits", e.scanCache.Hits())
}

// BuildService wires the build gate with the configured build command.
func (e *Env) BuildService() *application.BuildService {
	b := builder.New(e.Config.Build.Command, e.Config.Build.Script, e.Logger)
	return application.NewBuildService(e.Compliance, b, e.Reports, e.Levels, e.Logger)
}

// CommitService wires the commit gate against the project's git index.
func (e *Env) CommitService() *application.CommitService {
	return application.NewCommitService(e.Compliance, e.Git, e.Levels, e.Config.PackagesDir, e.Config.HubSuffix, e.Logger)
}

// UnifiedService wires the unified grader.
func (e *Env) UnifiedService() *application.UnifiedService {
	return application.NewUnifiedService(e.Compliance, e.Config, e.Logger)
}

// Hubs resolves the run target relative to the project root.
func (e *Env) Hubs(t application.Target) ([]domain.Hub, error) {
	return e.Compliance.ResolveHubs(e.ProjectPath, t)
}
