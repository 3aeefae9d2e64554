package application

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/scoring"
)

// UnifiedService grades each hub on compliance and architecture together.
type UnifiedService struct {
	compliance *ComplianceService
	cfg        domain.ProjectConfig
	logger     *slog.Logger
	now        domain.Clock
}

func NewUnifiedService(compliance *ComplianceService, cfg domain.ProjectConfig, logger *slog.Logger) *UnifiedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UnifiedService{compliance: compliance, cfg: cfg, logger: logger, now: time.Now}
}

// Run validates hubs at level and scores their architecture.
func (s *UnifiedService) Run(ctx context.Context, hubs []domain.Hub, level domain.ComplianceLevel) (domain.UnifiedReport, error) {
	scans, err := s.compliance.Validate(ctx, hubs, level)
	if err != nil {
		return domain.UnifiedReport{}, err
	}

	results := make([]domain.UnifiedHubResult, len(hubs))
	for i, hub := range hubs {
		arch := scoring.ScoreArchitecture(os.DirFS(hub.Path), hub.Name, s.cfg)
		assessment := scoring.Assess(arch, scans[i], s.cfg.Grading)
		s.logger.Info("hub graded", "hub", hub.Name, "grade", assessment.Grade,
			"architecture_pct", assessment.ArchitectureScorePct, "compliant", assessment.InfrastructureCompliant)

		results[i] = domain.UnifiedHubResult{
			HubName:        hub.Name,
			Infrastructure: scans[i],
			Architecture:   arch,
			Assessment:     assessment,
		}
	}
	return domain.NewUnifiedReport(s.now(), level.Name, results), nil
}
