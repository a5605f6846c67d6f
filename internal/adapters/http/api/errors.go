package api

import (
	"errors"
	"net/http"

	"github.com/okian/moviemonday/internal/adapters/repository"
	service "github.com/okian/moviemonday/internal/app"
	"github.com/okian/moviemonday/internal/domain/aggregate"
	"github.com/okian/moviemonday/internal/domain/model"
	"github.com/okian/moviemonday/internal/domain/query"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrReadOnly   = errors.New("ingestion is disabled")
)

// Error codes written in the body of failed responses.
const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeReadOnly   = "read_only"
	codeTooLarge   = "too_large"
	codeInternal   = "internal_error"
)

// classify maps an error onto an HTTP status and response code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, codeTooLarge
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, model.ErrDecode),
		errors.Is(err, repository.ErrInvalidRecord),
		errors.Is(err, aggregate.ErrUnknownCategory),
		errors.Is(err, aggregate.ErrUnknownMetric),
		errors.Is(err, query.ErrInvalidEntityType):
		return http.StatusBadRequest, codeBadRequest
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, ErrReadOnly), errors.Is(err, service.ErrReadOnly):
		return http.StatusForbidden, codeReadOnly
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
