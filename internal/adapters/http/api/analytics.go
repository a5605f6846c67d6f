package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/internal/domain/query"
)

// AnalyticsHandler serves the cross-week aggregate views and drill-downs.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

type moviesResponse struct {
	Title  string                 `json:"title"`
	Movies []model.MovieSelection `json:"movies"`
}

// HandleAggregate handles GET /analytics/aggregate.
func (h *AnalyticsHandler) HandleAggregate(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Aggregate(r.Context()))
}

// HandleChart handles GET /analytics/charts/{category}?metric=&limit=.
func (h *AnalyticsHandler) HandleChart(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeFailure(w, err)
		return
	}
	req := chartRequest{Category: categoryParam(r), Metric: lowerParam(r, "metric"), Limit: limit}
	if err := validateRequest(req); err != nil {
		writeFailure(w, err)
		return
	}
	category, err := aggregate.ParseCategory(req.Category)
	if err != nil {
		writeFailure(w, err)
		return
	}
	metric, err := aggregate.ParseMetric(req.Metric)
	if err != nil {
		writeFailure(w, err)
		return
	}
	points, err := h.deps.Chart(r.Context(), category, metric, req.Limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

// HandleWinRates handles GET /analytics/win-rates/{category}?min=N.
func (h *AnalyticsHandler) HandleWinRates(w http.ResponseWriter, r *http.Request) {
	minTotal, err := intParam(r, "min")
	if err != nil {
		writeFailure(w, err)
		return
	}
	req := rateRequest{Category: categoryParam(r), Min: minTotal}
	if err := validateRequest(req); err != nil {
		writeFailure(w, err)
		return
	}
	category, err := aggregate.ParseCategory(req.Category)
	if err != nil {
		writeFailure(w, err)
		return
	}
	rates, err := h.deps.WinRates(r.Context(), category, req.Min)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

// HandleLosing handles GET /analytics/losing/{category}?limit=N.
func (h *AnalyticsHandler) HandleLosing(w http.ResponseWriter, r *http.Request) {
	limit, err := intParam(r, "limit")
	if err != nil {
		writeFailure(w, err)
		return
	}
	req := losingRequest{Category: categoryParam(r), Limit: limit}
	if err := validateRequest(req); err != nil {
		writeFailure(w, err)
		return
	}
	category, err := aggregate.ParseCategory(req.Category)
	if err != nil {
		writeFailure(w, err)
		return
	}
	stats, err := h.deps.Losing(r.Context(), category, req.Limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// HandleMovies handles GET /analytics/movies?type=&name=&winner=.
func (h *AnalyticsHandler) HandleMovies(w http.ResponseWriter, r *http.Request) {
	req := moviesRequest{
		Type:   lowerParam(r, "type"),
		Name:   strings.TrimSpace(r.URL.Query().Get("name")),
		Winner: lowerParam(r, "winner"),
	}
	if err := validateRequest(req); err != nil {
		writeFailure(w, err)
		return
	}
	title, movies, err := h.deps.MoviesBy(r.Context(), query.EntityType(req.Type), req.Name, query.OutcomeOf(req.winner()))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moviesResponse{Title: title, Movies: movies})
}

func categoryParam(r *http.Request) string {
	return strings.ToLower(strings.TrimSpace(chi.URLParam(r, "category")))
}
