package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func requestValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// factsRequest is GET /weeks/{id}/facts.
type factsRequest struct {
	ID  string `validate:"required"`
	Max int    `validate:"min=0,max=100"`
}

// chartRequest is GET /analytics/charts/{category}.
type chartRequest struct {
	Category string `validate:"required"`
	Metric   string `validate:"omitempty,oneof=total wins losses rate"`
	Limit    int    `validate:"min=0,max=1000"`
}

// rateRequest is GET /analytics/win-rates/{category}.
type rateRequest struct {
	Category string `validate:"required"`
	Min      int    `validate:"min=0"`
}

// losingRequest is GET /analytics/losing/{category}.
type losingRequest struct {
	Category string `validate:"required"`
	Limit    int    `validate:"min=0,max=1000"`
}

// moviesRequest is GET /analytics/movies.
type moviesRequest struct {
	Type   string `validate:"required,oneof=actor director genre cocktail meal dessert"`
	Name   string `validate:"required"`
	Winner string `validate:"omitempty,oneof=true false"`
}

// winner returns the optional outcome flag.
func (m moviesRequest) winner() *bool {
	if m.Winner == "" {
		return nil
	}
	b := m.Winner == "true"
	return &b
}

// validateRequest checks req and turns field failures into one readable
// ErrBadRequest.
func validateRequest(req any) error {
	err := requestValidator().Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrBadRequest, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// intParam reads an optional integer query parameter; absent means 0.
func intParam(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrBadRequest, name)
	}
	return n, nil
}

func lowerParam(r *http.Request, name string) string {
	return strings.ToLower(strings.TrimSpace(r.URL.Query().Get(name)))
}
