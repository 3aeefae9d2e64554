package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openkraft/hubguard/internal/domain"
	"github.com/openkraft/hubguard/internal/domain/compliance"
)

type buildState string

const (
	stateIdle               buildState = "idle"
	stateComplianceChecking buildState = "compliance-checking"
	stateHalted             buildState = "halted"
	stateBuilding           buildState = "building"
	stateReported           buildState = "reported"
)

// BuildOptions configure one build gate run.
type BuildOptions struct {
	Production bool
	SkipBuild  bool
	Output     string
}

// BuildService gates hub builds on compliance:
// Idle → ComplianceChecking → Halted | Building → Reported.
type BuildService struct {
	compliance *ComplianceService
	builder    domain.BuildInvoker
	writer     domain.ReportWriter
	levels     domain.Levels
	logger     *slog.Logger
}

func NewBuildService(
	compliance *ComplianceService,
	builder domain.BuildInvoker,
	writer domain.ReportWriter,
	levels domain.Levels,
	logger *slog.Logger,
) *BuildService {
	if logger == nil {
		logger = slog.Default()
	}
	return &BuildService{
		compliance: compliance,
		builder:    builder,
		writer:     writer,
		levels:     levels,
		logger:     logger,
	}
}

// Run drives the gate for hubs. The report is always returned and, when
// opts.Output is set, always written, whichever path the run took. The
// error is ErrBuildHalted or ErrBuildFailed for gated failures.
func (s *BuildService) Run(ctx context.Context, projectPath string, hubs []domain.Hub, opts BuildOptions) (domain.BuildReport, error) {
	state := stateIdle
	transition := func(next buildState) {
		s.logger.Debug("build gate", "from", state, "to", next)
		state = next
	}

	mode := domain.BuildModeDevelopment
	if opts.Production {
		mode = domain.BuildModeProduction
	}

	transition(stateComplianceChecking)
	level, err := SelectLevel(s.levels, "", opts.Production)
	if err != nil {
		return domain.BuildReport{}, err
	}
	cr, err := s.compliance.Report(ctx, projectPath, hubs, level)
	if err != nil {
		return domain.BuildReport{}, err
	}

	rep := domain.BuildReport{
		ComplianceReport: cr,
		Mode:             mode,
		Builds:           domain.BuildSummary{Results: []domain.BuildResult{}},
	}

	var gateErr error
	switch {
	case !compliance.ShouldProceed(cr.HubResults, opts.Production):
		transition(stateHalted)
		rep.Outcome = domain.OutcomeHalted
		gateErr = domain.ErrBuildHalted
	case opts.SkipBuild:
		rep.Outcome = domain.OutcomeComplianceOnly
	default:
		transition(stateBuilding)
		gateErr = s.buildAll(ctx, hubs, opts.Production, &rep)
	}

	transition(stateReported)
	if opts.Output != "" {
		if err := s.writer.Write(opts.Output, rep); err != nil {
			return rep, errors.Join(gateErr, fmt.Errorf("writing report: %w", err))
		}
		s.logger.Info("report written", "path", opts.Output)
	}
	return rep, gateErr
}

// buildAll invokes builds sequentially in hub order. In production the
// first failure cancels the remaining builds.
func (s *BuildService) buildAll(ctx context.Context, hubs []domain.Hub, production bool, rep *domain.BuildReport) error {
	rep.Outcome = domain.OutcomeBuilt
	for _, hub := range hubs {
		if err := ctx.Err(); err != nil {
			rep.Outcome = domain.OutcomeBuildFailed
			return err
		}
		res := s.builder.Build(ctx, hub)
		rep.Builds.Record(res)
		rep.TotalBuildTime += res.BuildTime

		if res.Skipped || res.Success {
			continue
		}
		rep.Outcome = domain.OutcomeBuildFailed
		if production {
			s.logger.Warn("aborting remaining builds", "failed_hub", hub.Name)
			return fmt.Errorf("%w: %s", domain.ErrBuildFailed, hub.Name)
		}
	}
	return nil
}
