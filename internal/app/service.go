// Package service wires the record store to the insights engine and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/moviemonday/internal/adapters/repository"
	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/connections"
	"github.com/okian/moviemonday/internal/domain/facts"
	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/internal/domain/query"
	"github.com/okian/moviemonday/pkg/logger"
	"github.com/okian/moviemonday/pkg/metrics"
)

// Default configuration values.
const (
	defaultChartLimit = 10
)

// Engine operation names used for latency metrics.
const (
	opAggregate   = "aggregate"
	opQuery       = "query"
	opConnections = "connections"
	opFacts       = "facts"
)

// Service implements the API dependencies for the insights engine.
type Service struct {
	mu sync.RWMutex

	store repository.Store

	// Configuration
	recordsPath string
	maxFacts    int
	chartLimit  int
	readOnly    bool

	// State
	started bool

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		maxFacts:   facts.DefaultMaxFacts,
		chartLimit: defaultChartLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// Start loads the configured records file, if any.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting insights service...")

	if s.recordsPath != "" {
		start := time.Now()
		n, err := repository.LoadFile(ctx, s.store, s.recordsPath)
		if err != nil {
			s.logger.Error(ctx, "failed to load weekly records",
				logger.String("path", s.recordsPath),
				logger.Error(err),
			)
			return fmt.Errorf("start: %w", err)
		}
		s.logger.Info(ctx, "weekly records loaded",
			logger.String("path", s.recordsPath),
			logger.Int("records", n),
			logger.Duration("took", time.Since(start)),
		)
	}

	s.started = true
	s.logger.Info(ctx, "insights service started",
		logger.Int("records", s.store.Count(ctx)),
		logger.Int("maxFacts", s.maxFacts),
		logger.Bool("readOnly", s.readOnly),
	)
	return nil
}

// Stop marks the service stopped. Stored records are kept.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "insights service stopped")
}

// Ingest upserts records and returns their ids.
func (s *Service) Ingest(ctx context.Context, records []model.WeeklyRecord) ([]model.ID, error) {
	if s.readOnly {
		metrics.RecordRejected(len(records))
		return nil, ErrReadOnly
	}
	ids, err := s.store.Put(ctx, records...)
	if err != nil {
		s.log().Warn(ctx, "rejected weekly records",
			logger.Int("records", len(records)),
			logger.Error(err),
		)
		return nil, err
	}
	s.log().Debug(ctx, "ingested weekly records", logger.Int("records", len(ids)))
	return ids, nil
}

// Records returns every stored record in ingest order.
func (s *Service) Records(ctx context.Context) []model.WeeklyRecord {
	return s.store.All(ctx)
}

// Record returns one stored record.
func (s *Service) Record(ctx context.Context, id model.ID) (model.WeeklyRecord, error) {
	return s.store.Get(ctx, id)
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) int {
	return s.store.Count(ctx)
}

// Aggregate computes all six frequency tables over the stored records.
func (s *Service) Aggregate(ctx context.Context) aggregate.Result {
	defer observe(opAggregate, time.Now())
	return aggregate.Aggregate(s.store.All(ctx))
}

// Table returns one frequency table.
func (s *Service) Table(ctx context.Context, category aggregate.Category) ([]model.AggregateStat, error) {
	return s.Aggregate(ctx).Table(category)
}

// Chart returns chart points for one category. limit <= 0 uses the
// configured chart limit.
func (s *Service) Chart(ctx context.Context, category aggregate.Category, metric aggregate.Metric, limit int) ([]model.ChartPoint, error) {
	stats, err := s.Table(ctx, category)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.chartLimit
	}
	return aggregate.Chart(stats, metric, limit), nil
}

// WinRates returns the win-rate view for one category.
func (s *Service) WinRates(ctx context.Context, category aggregate.Category, minTotal int) ([]model.RateStat, error) {
	stats, err := s.Table(ctx, category)
	if err != nil {
		return nil, err
	}
	return aggregate.WinRates(stats, minTotal), nil
}

// Losing returns the most-losing entries for one category. limit <= 0 uses
// the configured chart limit.
func (s *Service) Losing(ctx context.Context, category aggregate.Category, limit int) ([]model.AggregateStat, error) {
	stats, err := s.Table(ctx, category)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.chartLimit
	}
	return aggregate.TopLosing(stats, limit), nil
}

// MoviesBy runs a drill-down query and returns its display title with the
// matching selections.
func (s *Service) MoviesBy(ctx context.Context, entityType query.EntityType, name string, outcome query.Outcome) (string, []model.MovieSelection, error) {
	defer observe(opQuery, time.Now())
	movies, err := query.MoviesBy(entityType, name, s.store.All(ctx), outcome)
	if err != nil {
		metrics.RecordQueryError(string(entityType))
		return "", nil, err
	}
	return query.Title(entityType, name, outcome), movies, nil
}

// Connections finds what the selections of one week have in common.
func (s *Service) Connections(ctx context.Context, id model.ID) (connections.Result, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return connections.Result{}, err
	}
	defer observe(opConnections, time.Now())
	conns := connections.Find(r.Selections)
	if conns.Empty() {
		s.log().Debug(ctx, "week has no shared connections",
			logger.String("record", id.String()),
			logger.Int("selections", len(r.Selections)),
		)
	}
	return conns, nil
}

// Facts returns the top facts for one week, judged against every earlier
// week. n <= 0 uses the configured number of facts.
func (s *Service) Facts(ctx context.Context, id model.ID, n int) ([]model.Fact, error) {
	snap := s.store.Snapshot()
	current, err := snap.Get(id)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.maxFacts
	}

	defer observe(opFacts, time.Now())
	history := facts.HistoryFor(snap.Records, current)
	shown, generated := facts.Generate(current, history, n)
	metrics.RecordFacts(generated, len(shown))
	s.log().Debug(ctx, "generated facts",
		logger.String("record", id.String()),
		logger.Int("generated", generated),
		logger.Int("shown", len(shown)),
		logger.Int("historyWeeks", history.Weeks),
	)
	return shown, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	count := s.store.Count(ctx)
	metrics.UpdateRecordsStored(count)
	return map[string]interface{}{
		"started":    s.started,
		"records":    count,
		"maxFacts":   s.maxFacts,
		"chartLimit": s.chartLimit,
		"readOnly":   s.readOnly,
	}
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

func observe(operation string, start time.Time) {
	metrics.RecordEngineLatency(operation, float64(time.Since(start).Microseconds())/1000)
}
