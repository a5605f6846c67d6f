package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/okian/moviemonday/internal/domain/model"
)

// WeeksHandler serves the weekly records and the per-week engine views.
type WeeksHandler struct {
	deps         WeeksDependencies
	maxBodyBytes int64
	readOnly     bool
}

// NewWeeksHandler creates a new weeks handler.
func NewWeeksHandler(deps WeeksDependencies, maxBodyBytes int64, readOnly bool) *WeeksHandler {
	return &WeeksHandler{deps: deps, maxBodyBytes: maxBodyBytes, readOnly: readOnly}
}

type ingestResponse struct {
	IDs   []model.ID `json:"ids"`
	Count int        `json:"count"`
}

// HandleList handles GET /weeks.
func (h *WeeksHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Records(r.Context()))
}

// HandleCreate handles POST /weeks with a JSON array or a single record.
func (h *WeeksHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_weeks"
	if h.readOnly {
		writeFailure(w, fmt.Errorf("%s: %w", op, ErrReadOnly))
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		writeFailure(w, fmt.Errorf("%s: %w: %w", op, ErrBadRequest, err))
		return
	}
	records, err := model.DecodeRecords(body)
	if err != nil {
		writeFailure(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	ids, err := h.deps.Ingest(r.Context(), records)
	if err != nil {
		writeFailure(w, fmt.Errorf("%s: %w", op, err))
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{IDs: ids, Count: len(ids)})
}

// HandleGet handles GET /weeks/{id}.
func (h *WeeksHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := h.deps.Record(r.Context(), weekID(r))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HandleConnections handles GET /weeks/{id}/connections.
func (h *WeeksHandler) HandleConnections(w http.ResponseWriter, r *http.Request) {
	conns, err := h.deps.Connections(r.Context(), weekID(r))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conns)
}

// HandleFacts handles GET /weeks/{id}/facts?max=N.
func (h *WeeksHandler) HandleFacts(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "max")
	if err != nil {
		writeFailure(w, err)
		return
	}
	req := factsRequest{ID: string(weekID(r)), Max: n}
	if err := validateRequest(req); err != nil {
		writeFailure(w, err)
		return
	}
	facts, err := h.deps.Facts(r.Context(), model.ID(req.ID), req.Max)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, facts)
}

func weekID(r *http.Request) model.ID {
	return model.ID(strings.TrimSpace(chi.URLParam(r, "id")))
}
