package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a write would violate email uniqueness.
	ErrDuplicateEmail = errors.New("email already in use")
)
