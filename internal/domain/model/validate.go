package model

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func recordValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the structural invariants a stored record must hold: a
// known status and at most one winning selection.
func (r WeeklyRecord) Validate() error {
	if err := recordValidator().Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Status)
		}
		return err
	}
	winners := 0
	for _, s := range r.Selections {
		if s.IsWinner {
			winners++
		}
	}
	if winners > 1 {
		return fmt.Errorf("%w: record %s has %d", ErrMultipleWinners, r.ID, winners)
	}
	return nil
}
