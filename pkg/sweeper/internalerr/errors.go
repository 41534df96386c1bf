package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrDuplicate     = errors.New("duplicate entry")
	ErrOutOfBounds   = errors.New("out of bounds")
	ErrInvalidConfig = errors.New("invalid configuration")
)
