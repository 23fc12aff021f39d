// Package app exposes the analyses as application services.
package app

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"setlstat/domain/core"
	"setlstat/domain/report"
	"setlstat/internal"
	"setlstat/internal/analysis"
	"setlstat/internal/config"
	"setlstat/internal/errors"
	"setlstat/ports"
)

// AnalysisService runs analyses and persists their reports.
type AnalysisService struct {
	pipeline *analysis.Pipeline
	reports  ports.ReportRepository
	logger   *internal.Logger
	cfg      config.AnalysisConfig
}

// NewAnalysisService creates an analysis service. reports may be nil when
// persistence is not wanted.
func NewAnalysisService(records ports.RecordRepository, rng ports.RNGPort, reports ports.ReportRepository, logger *internal.Logger, cfg config.AnalysisConfig) *AnalysisService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		pipeline: analysis.NewPipeline(records, rng, logger, cfg),
		reports:  reports,
		logger:   logger,
		cfg:      cfg,
	}
}

// RunSpotPreference runs a spot preference analysis and saves its report.
func (s *AnalysisService) RunSpotPreference(ctx context.Context, req analysis.SpotPreferenceRequest) (*report.Report, error) {
	rep, err := s.pipeline.SpotPreference(ctx, req)
	if err != nil {
		return nil, s.classify("spot preference analysis failed", err)
	}
	return rep, s.save(ctx, rep)
}

// classify separates data problems, which the caller can fix by widening
// the selection, from engine failures.
func (s *AnalysisService) classify(message string, err error) error {
	if core.IsDataError(err) {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}
	return errors.AnalysisError(message, err)
}

// RunAttractionIntra runs an intra-specific attraction analysis and saves
// its report.
func (s *AnalysisService) RunAttractionIntra(ctx context.Context, req analysis.AttractionIntraRequest) (*report.Report, error) {
	rep, err := s.pipeline.AttractionIntra(ctx, req)
	if err != nil {
		return nil, s.classify("intra-specific attraction analysis failed", err)
	}
	return rep, s.save(ctx, rep)
}

// RunAttractionInter runs an inter-specific attraction analysis and saves
// its report.
func (s *AnalysisService) RunAttractionInter(ctx context.Context, req analysis.AttractionInterRequest) (*report.Report, error) {
	rep, err := s.pipeline.AttractionInter(ctx, req)
	if err != nil {
		return nil, s.classify("inter-specific attraction analysis failed", err)
	}
	return rep, s.save(ctx, rep)
}

// Job is one analysis of a batch run. Exactly one request must be set.
type Job struct {
	SpotPreference  *analysis.SpotPreferenceRequest
	AttractionIntra *analysis.AttractionIntraRequest
	AttractionInter *analysis.AttractionInterRequest
}

// RunBatch executes analyses concurrently, at most MaxParallel at a time.
// The first failing analysis cancels the rest; results are returned in job
// order.
func (s *AnalysisService) RunBatch(ctx context.Context, jobs []Job) ([]*report.Report, error) {
	results := make([]*report.Report, len(jobs))
	sem := semaphore.NewWeighted(int64(s.cfg.MaxParallel))

	g, ctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			rep, err := s.run(ctx, job)
			if err != nil {
				return err
			}
			results[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *AnalysisService) run(ctx context.Context, job Job) (*report.Report, error) {
	switch {
	case job.SpotPreference != nil:
		return s.RunSpotPreference(ctx, *job.SpotPreference)
	case job.AttractionIntra != nil:
		return s.RunAttractionIntra(ctx, *job.AttractionIntra)
	case job.AttractionInter != nil:
		return s.RunAttractionInter(ctx, *job.AttractionInter)
	default:
		return nil, errors.InvalidInput("batch job carries no analysis request")
	}
}

func (s *AnalysisService) save(ctx context.Context, rep *report.Report) error {
	if s.reports == nil {
		return nil
	}
	data, err := rep.JSON()
	if err != nil {
		return errors.Wrap(err, "failed to encode analysis report")
	}
	if err := s.reports.Save(ctx, data, rep.Analysis); err != nil {
		return errors.Wrap(err, "failed to persist analysis report")
	}
	s.logger.Debug("saved %s report %s", rep.Analysis, rep.AnalysisID)
	return nil
}
