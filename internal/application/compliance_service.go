package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/compliance"
	"golang.org/x/sync/errgroup"
)

// Target selects the hubs a run covers.
type Target struct {
	HubName string
	AllHubs bool
}

// ComplianceService orchestrates the validation pipeline:
// locate hubs → walk sources → scan files → aggregate → evaluate.
type ComplianceService struct {
	locator   domain.HubLocator
	walker    domain.SourceWalker
	scanner   domain.FileScanner
	revisions domain.RevisionReader
	workers   int
	logger    *slog.Logger
	now       domain.Clock
	newRunID  func() string
}

// NewComplianceService wires the pipeline. revisions may be nil, in which
// case reports carry no commit.
func NewComplianceService(
	locator domain.HubLocator,
	walker domain.SourceWalker,
	scanner domain.FileScanner,
	revisions domain.RevisionReader,
	workers int,
	logger *slog.Logger,
) *ComplianceService {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}
	return &ComplianceService{
		locator:   locator,
		walker:    walker,
		scanner:   scanner,
		revisions: revisions,
		workers:   workers,
		logger:    logger,
		now:       time.Now,
		newRunID:  uuid.NewString,
	}
}

// ResolveHubs turns a target into hub directories. It fails before any
// scanning when no target is given or the named hub does not exist.
func (s *ComplianceService) ResolveHubs(projectPath string, t Target) ([]domain.Hub, error) {
	switch {
	case t.HubName != "":
		hub, err := s.locator.Find(projectPath, t.HubName)
		if err != nil {
			return nil, err
		}
		return []domain.Hub{hub}, nil
	case t.AllHubs:
		return s.locator.All(projectPath)
	default:
		return nil, domain.ErrNoTarget
	}
}

// FindHub resolves a single hub by name.
func (s *ComplianceService) FindHub(projectPath, name string) (domain.Hub, error) {
	return s.locator.Find(projectPath, name)
}

// ScanHub walks and scans one hub. Files that cannot be read are logged,
// listed in skipped, and contribute no violations.
func (s *ComplianceService) ScanHub(ctx context.Context, hub domain.Hub) (domain.ViolationSet, []string, error) {
	files, err := s.walker.Walk(hub)
	if err != nil {
		return domain.ViolationSet{}, nil, fmt.Errorf("walking hub %s: %w", hub.Name, err)
	}

	perFile := make([][]domain.Violation, len(files))
	unreadable := make([]bool, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vs, err := s.scanner.ScanFile(hub, rel)
			if err != nil {
				s.logger.Warn("skipping unreadable file", "hub", hub.Name, "file", rel, "error", err)
				unreadable[i] = true
				return nil
			}
			perFile[i] = vs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.ViolationSet{}, nil, err
	}

	var skipped []string
	for i, bad := range unreadable {
		if bad {
			skipped = append(skipped, files[i])
		}
	}

	s.logger.Debug("hub scanned", "hub", hub.Name, "files", len(files), "skipped", len(skipped))
	return compliance.Aggregate(hub.Name, perFile), skipped, nil
}

// Validate scans hubs concurrently and evaluates each against level.
// Results keep the order of hubs.
func (s *ComplianceService) Validate(ctx context.Context, hubs []domain.Hub, level domain.ComplianceLevel) ([]domain.HubScanResult, error) {
	results := make([]domain.HubScanResult, len(hubs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, hub := range hubs {
		g.Go(func() error {
			set, skipped, err := s.ScanHub(ctx, hub)
			if err != nil {
				return err
			}
			results[i] = compliance.Result(hub.Name, set, level, skipped)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		s.logger.Info("hub evaluated", "hub", r.HubName, "level", level.Name,
			"violations", r.Total, "compliant", r.Compliant)
	}
	return results, nil
}

// Report validates hubs and wraps the results in a run report.
func (s *ComplianceService) Report(ctx context.Context, projectPath string, hubs []domain.Hub, level domain.ComplianceLevel) (domain.ComplianceReport, error) {
	results, err := s.Validate(ctx, hubs, level)
	if err != nil {
		return domain.ComplianceReport{}, err
	}
	rep := domain.NewComplianceReport(s.newRunID(), s.now(), level.Name, results)
	if s.revisions != nil {
		if hash, err := s.revisions.CommitHash(projectPath); err == nil {
			rep.Commit = hash
		} else {
			s.logger.Debug("no commit for report", "error", err)
		}
	}
	return rep, nil
}

// SelectLevel picks the compliance level for a run. An explicitly named
// level wins; otherwise production selects strict and the default is
// standard.
func SelectLevel(levels domain.Levels, explicit string, production bool) (domain.ComplianceLevel, error) {
	name := explicit
	if name == "" {
		name = domain.LevelStandard
		if production {
			name = domain.LevelStrict
		}
	}
	return levels.Lookup(name)
}
