// Package service serves dashboard views over the record store's case list.
package service

import (
	"context"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"sherialink/internal/dashboard/aggregate"
	"sherialink/internal/domain"
	"sherialink/internal/platform/metrics"
	"sherialink/internal/upstream"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// CaseSource reads the collections the dashboard is built from.
type CaseSource interface {
	ListCases(ctx context.Context) ([]domain.CaseReport, error)
	ListProfiles(ctx context.Context) ([]domain.ProfileRecord, error)
	ListMediations(ctx context.Context) ([]domain.MediationRecord, error)
}

// SnapshotCache holds the most recent case list.
type SnapshotCache interface {
	Get(ctx context.Context) ([]domain.CaseReport, bool, error)
	Set(ctx context.Context, records []domain.CaseReport) error
	Invalidate(ctx context.Context) error
}

// Overview is the dashboard landing view.
type Overview struct {
	Summary        aggregate.SummaryReport `json:"summary"`
	ProfileCount   int                     `json:"profileCount"`
	MediationCount int                     `json:"mediationCount"`
}

// Service fetches snapshots and hands them to the aggregation engine.
type Service struct {
	source  CaseSource
	cache   SnapshotCache
	engine  *aggregate.Engine
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	// generation counts invalidations. A fetch that overlaps one must not
	// leave its snapshot behind.
	generation atomic.Uint64
}

type Option func(*Service)

// WithCache replaces the default no-op snapshot cache.
func WithCache(c SnapshotCache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithEngine(e *aggregate.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func New(source CaseSource, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		source: source,
		cache:  NoopCache{},
		engine: aggregate.NewEngine(),
		logger: logger,
		tracer: otel.Tracer("sherialink/dashboard"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary validates f and summarizes the current case snapshot.
func (s *Service) Summary(ctx context.Context, f aggregate.FilterSpec) (aggregate.SummaryReport, error) {
	if err := f.Validate(); err != nil {
		return aggregate.SummaryReport{}, err
	}
	records, err := s.fetchCases(ctx)
	if err != nil {
		return aggregate.SummaryReport{}, err
	}
	return s.engine.Summarize(records, f), nil
}

// Cases returns the snapshot records matching f, in record store order.
func (s *Service) Cases(ctx context.Context, f aggregate.FilterSpec) ([]domain.CaseReport, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	records, err := s.fetchCases(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.FilterRecords(records, f), nil
}

func (s *Service) Counties(ctx context.Context) ([]string, error) {
	records, err := s.fetchCases(ctx)
	if err != nil {
		return nil, err
	}
	return aggregate.Counties(records), nil
}

// Overview fetches cases, profiles and mediations concurrently. The first
// failure cancels the other fetches and is returned.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		records    []domain.CaseReport
		profiles   []domain.ProfileRecord
		mediations []domain.MediationRecord
	)

	g.Go(func() error {
		var err error
		records, err = s.fetchCases(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.source.ListProfiles(gctx)
		return upstream.ToDomain(err)
	})
	g.Go(func() error {
		var err error
		mediations, err = s.source.ListMediations(gctx)
		return upstream.ToDomain(err)
	})

	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	return Overview{
		Summary:        s.engine.Summarize(records, aggregate.FilterSpec{}),
		ProfileCount:   len(profiles),
		MediationCount: len(mediations),
	}, nil
}

// Invalidate drops the case snapshot. Intake and status updates call it after
// a successful write.
func (s *Service) Invalidate(ctx context.Context) error {
	s.generation.Add(1)
	return s.cache.Invalidate(ctx)
}

// fetchCases serves the snapshot from cache when possible. Cache failures are
// logged and bypassed; record store failures are returned as domain errors.
func (s *Service) fetchCases(ctx context.Context) ([]domain.CaseReport, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.fetchCases")
	defer span.End()

	records, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.metrics.IncrementCacheLookup("error")
		s.logger.WarnContext(ctx, "case snapshot cache read failed", "error", err)
	case ok:
		s.metrics.IncrementCacheLookup("hit")
		span.SetAttributes(attribute.Bool("cache.hit", true), attribute.Int("cases.count", len(records)))
		return records, nil
	default:
		s.metrics.IncrementCacheLookup("miss")
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	generation := s.generation.Load()
	records, err = s.source.ListCases(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list cases")
		return nil, upstream.ToDomain(err)
	}
	span.SetAttributes(attribute.Int("cases.count", len(records)))

	s.storeSnapshot(ctx, generation, records)
	return records, nil
}

// storeSnapshot writes records unless an invalidation happened since they were
// read. One that lands between the check and the write is undone afterwards.
func (s *Service) storeSnapshot(ctx context.Context, generation uint64, records []domain.CaseReport) {
	if s.generation.Load() != generation {
		return
	}
	if err := s.cache.Set(ctx, records); err != nil {
		s.logger.WarnContext(ctx, "case snapshot cache write failed", "error", err)
		return
	}
	if s.generation.Load() != generation {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.WarnContext(ctx, "failed to drop stale case snapshot", "error", err)
		}
	}
}
