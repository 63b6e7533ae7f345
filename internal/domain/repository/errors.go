package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique constraint or a conditional write fails.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable marks infrastructure failures the client may retry.
	ErrUnavailable = errors.New("storage unavailable")
)
