package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openkraft/hubguard/internal/domain"
)

// CommitService decides whether staged changes may be committed. Touched
// hubs are always held to the strict level.
type CommitService struct {
	compliance  *ComplianceService
	lister      domain.StagedFileLister
	levels      domain.Levels
	packagesDir string
	hubSuffix   string
	logger      *slog.Logger
	now         domain.Clock
}

func NewCommitService(
	compliance *ComplianceService,
	lister domain.StagedFileLister,
	levels domain.Levels,
	packagesDir, hubSuffix string,
	logger *slog.Logger,
) *CommitService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommitService{
		compliance:  compliance,
		lister:      lister,
		levels:      levels,
		packagesDir: packagesDir,
		hubSuffix:   hubSuffix,
		logger:      logger,
		now:         time.Now,
	}
}

// Check evaluates the staged paths. When staged is nil the lister is asked.
// A commit touching no hub is allowed without scanning anything. The error
// is ErrCommitBlocked when a touched hub fails.
func (s *CommitService) Check(ctx context.Context, projectPath string, staged []string) (domain.CommitReport, error) {
	if staged == nil {
		var err error
		staged, err = s.lister.StagedFiles(projectPath)
		if err != nil {
			return domain.CommitReport{}, fmt.Errorf("listing staged files: %w", err)
		}
	}

	touched := domain.TouchedHubs(staged, s.packagesDir, s.hubSuffix)
	rep := domain.CommitReport{
		Timestamp:   s.now().UTC(),
		StagedFiles: nonNil(staged),
		TouchedHubs: touched,
		Allowed:     true,
		HubResults:  []domain.HubScanResult{},
	}
	if len(touched) == 0 {
		s.logger.Info("no hubs touched, commit allowed", "staged", len(staged))
		return rep, nil
	}

	var hubs []domain.Hub
	for _, name := range touched {
		hub, err := s.compliance.FindHub(projectPath, name)
		if errors.Is(err, domain.ErrHubNotFound) {
			s.logger.Warn("touched hub no longer exists, skipping", "hub", name)
			continue
		}
		if err != nil {
			return rep, err
		}
		hubs = append(hubs, hub)
	}

	strict, err := s.levels.Lookup(domain.LevelStrict)
	if err != nil {
		return rep, err
	}
	results, err := s.compliance.Validate(ctx, hubs, strict)
	if err != nil {
		return rep, err
	}
	rep.HubResults = results
	for _, r := range results {
		rep.TotalViolations += r.Total
		if !r.Compliant {
			rep.Allowed = false
		}
	}
	if !rep.Allowed {
		return rep, domain.ErrCommitBlocked
	}
	return rep, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
