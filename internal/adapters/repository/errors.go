package repository

import "errors"

// Sentinel kinds for record store errors.
var (
	ErrNotFound      = errors.New("weekly record not found")
	ErrInvalidRecord = errors.New("invalid weekly record")
	ErrLoad          = errors.New("load weekly records")
)
