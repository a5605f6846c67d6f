// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/okian/moviemonday/internal/adapters/http/swagger"
	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/connections"
	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/internal/domain/query"
)

// Default limits.
const (
	defaultMaxBodyBytes int64 = 8 << 20
)

// WeeksDependencies covers reads and writes of weekly records.
type WeeksDependencies interface {
	Records(ctx context.Context) []model.WeeklyRecord
	Record(ctx context.Context, id model.ID) (model.WeeklyRecord, error)
	Ingest(ctx context.Context, records []model.WeeklyRecord) ([]model.ID, error)
	Connections(ctx context.Context, id model.ID) (connections.Result, error)
	Facts(ctx context.Context, id model.ID, n int) ([]model.Fact, error)
}

// AnalyticsDependencies covers the cross-week views.
type AnalyticsDependencies interface {
	Aggregate(ctx context.Context) aggregate.Result
	Chart(ctx context.Context, category aggregate.Category, metric aggregate.Metric, limit int) ([]model.ChartPoint, error)
	WinRates(ctx context.Context, category aggregate.Category, minTotal int) ([]model.RateStat, error)
	Losing(ctx context.Context, category aggregate.Category, limit int) ([]model.AggregateStat, error)
	MoviesBy(ctx context.Context, entityType query.EntityType, name string, outcome query.Outcome) (string, []model.MovieSelection, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	WeeksDependencies
	AnalyticsDependencies
	RecordCounter
	StatsProvider
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithMaxBodyBytes caps the size of request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithReadOnly rejects POST /weeks.
func WithReadOnly(readOnly bool) Option {
	return func(s *Server) {
		s.readOnly = readOnly
	}
}

// Server wires HTTP routes for the insights API.
type Server struct {
	maxBodyBytes int64
	readOnly     bool

	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	weeksHandler     *WeeksHandler
	analyticsHandler *AnalyticsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{maxBodyBytes: defaultMaxBodyBytes}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler(deps)
	s.statsHandler = NewStatsHandler(deps)
	s.weeksHandler = NewWeeksHandler(deps, s.maxBodyBytes, s.readOnly)
	s.analyticsHandler = NewAnalyticsHandler(deps)
	return s
}

// Routes returns the router with every endpoint registered.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)
	r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	swagger.Register(r)

	r.Route("/weeks", func(r chi.Router) {
		r.Get("/", MetricsMiddleware(s.weeksHandler.HandleList, "weeks"))
		r.Post("/", MetricsMiddleware(s.weeksHandler.HandleCreate, "weeks"))
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", MetricsMiddleware(s.weeksHandler.HandleGet, "week"))
			r.Get("/connections", MetricsMiddleware(s.weeksHandler.HandleConnections, "connections"))
			r.Get("/facts", MetricsMiddleware(s.weeksHandler.HandleFacts, "facts"))
		})
	})

	r.Route("/analytics", func(r chi.Router) {
		r.Get("/aggregate", MetricsMiddleware(s.analyticsHandler.HandleAggregate, "aggregate"))
		r.Get("/charts/{category}", MetricsMiddleware(s.analyticsHandler.HandleChart, "charts"))
		r.Get("/win-rates/{category}", MetricsMiddleware(s.analyticsHandler.HandleWinRates, "win_rates"))
		r.Get("/losing/{category}", MetricsMiddleware(s.analyticsHandler.HandleLosing, "losing"))
		r.Get("/movies", MetricsMiddleware(s.analyticsHandler.HandleMovies, "movies"))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, nil)
	})
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure writes err with the status its kind maps to.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}
