package service

import "errors"

// Sentinel errors returned by the service.
var (
	ErrReadOnly = errors.New("service is read-only")
)
