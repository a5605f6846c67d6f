package aggregate

import (
	"errors"
	"fmt"
)

// Sentinel errors for table and view selection.
var (
	ErrUnknownCategory = errors.New("unknown aggregate category")
	ErrUnknownMetric   = errors.New("unknown chart metric")
)

func unknownCategory(c string) error {
	return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
}
