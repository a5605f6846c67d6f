package model

import "errors"

// Sentinel errors for record decoding and validation.
var (
	ErrDecode          = errors.New("decode weekly records")
	ErrInvalidStatus   = errors.New("invalid record status")
	ErrMultipleWinners = errors.New("more than one winner in a week")
)
