package api

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/moviemonday/pkg/metrics"
)

// RecordCounter reports how many weekly records are held.
type RecordCounter interface {
	Count(ctx context.Context) int
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	records RecordCounter
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(records RecordCounter) *HealthHandler {
	return &HealthHandler{
		records: records,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Records: h.records.Count(r.Context())})
}

// HandleMetrics serves the Prometheus exposition from the custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
