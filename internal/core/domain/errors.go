package domain

import "errors"

var (
	// ErrNotFound is returned when a snapshot or one of its steps does not exist.
	ErrNotFound = errors.New("domain: not found")
	// ErrInvalidArgument marks input rejected at the boundary.
	ErrInvalidArgument = errors.New("domain: invalid argument")
)
