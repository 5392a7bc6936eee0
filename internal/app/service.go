// Package service runs one clustering job end to end: read the dataset,
// cluster it, write the result and its optional plot and metrics.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/forel/internal/adapters/csvio"
	"github.com/okian/forel/internal/adapters/plot"
	"github.com/okian/forel/internal/config"
	"github.com/okian/forel/internal/domain/forel"
	"github.com/okian/forel/pkg/logger"
	"github.com/okian/forel/pkg/metrics"
)

// Report summarizes a finished run.
type Report struct {
	RunID       string
	Points      int
	MinClusters int
	Result      forel.Result
	Duration    time.Duration
}

// Service wires the dataset codec, the engine and the exporters.
type Service struct {
	cfg    *config.Config
	engine *forel.Engine
	logger logger.Logger
	now    func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the run configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Without WithConfig the defaults of config.New apply.
func New(opts ...Option) *Service {
	s := &Service{
		cfg:    config.New(),
		logger: logger.Nop(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.engine = forel.New(
		forel.WithEpsilon(s.cfg.Epsilon),
		forel.WithMaxIterations(s.cfg.MaxIterations),
		forel.WithMaxAttempts(s.cfg.MaxAttempts),
		forel.WithInitialRadius(s.cfg.InitialRadius),
		forel.WithLogger(s.logger.Named("engine")),
	)

	return s
}

// Run executes one job. Outputs are written only after clustering succeeds;
// metrics are exported whatever the outcome.
func (s *Service) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := s.logger.With(logger.String("run_id", report.RunID))
	start := s.now()

	err := s.run(ctx, log, &report)
	report.Duration = s.now().Sub(start)

	kind := Classify(err)
	metrics.RecordRun(string(kind))
	metrics.RecordRunDuration(float64(report.Duration.Microseconds()) / 1000)
	if err != nil {
		metrics.RecordError("run", string(kind))
		log.Error(ctx, "clustering run failed", logger.String("kind", string(kind)), logger.Error(err))
	} else {
		log.Info(ctx, "clustering run finished",
			logger.Int("points", report.Points),
			logger.Int("clusters", len(report.Result.Clusters)),
			logger.Int("attempts", report.Result.Attempts),
			logger.Float64("radius", report.Result.Radius),
			logger.Duration("duration", report.Duration),
		)
	}

	if s.cfg.MetricsPath != "" {
		if merr := metrics.WriteTextfile(s.cfg.MetricsPath); merr != nil {
			log.Warn(ctx, "failed to export metrics", logger.String("path", s.cfg.MetricsPath), logger.Error(merr))
		}
	}

	return report, err
}

func (s *Service) run(ctx context.Context, log logger.Logger, report *Report) error {
	log.Info(ctx, "reading dataset", logger.String("path", s.cfg.InputPath))
	ds, err := csvio.ReadFile(s.cfg.InputPath)
	if err != nil {
		return err
	}
	report.Points = len(ds.Points)
	report.MinClusters = ds.MinClusters
	metrics.UpdatePointCount(len(ds.Points))

	res, err := s.engine.Run(ctx, ds.Points, ds.MinClusters)
	if err != nil {
		return fmt.Errorf("cluster %s: %w", s.cfg.InputPath, err)
	}
	report.Result = res

	metrics.UpdateClusterCount(len(res.Clusters))
	metrics.UpdateFinalRadius(res.Radius)
	for _, c := range res.Clusters {
		metrics.RecordClusterSize(len(c.Members))
	}

	if err := csvio.WriteFile(s.cfg.OutputPath, res.Clusters, s.cfg.OutputPrecision); err != nil {
		return err
	}
	log.Info(ctx, "clusters written", logger.String("path", s.cfg.OutputPath))

	if s.cfg.PlotPath != "" {
		if err := plot.WriteFile(s.cfg.PlotPath, res.Clusters,
			plot.WithTitle(fmt.Sprintf("FOREL: %d clusters, radius %.4g", len(res.Clusters), res.Radius)),
		); err != nil {
			return err
		}
		log.Info(ctx, "plot written", logger.String("path", s.cfg.PlotPath))
	}

	return nil
}
