package query

import "errors"

// ErrInvalidEntityType reports a drill-down on an entity type the engine
// does not know. It signals a contract mismatch with the caller, not bad data.
var ErrInvalidEntityType = errors.New("invalid entity type")
