package persistence

import "errors"

var (
	// ErrNotFound is returned when a referenced event does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicateID is returned when an inserted event reuses an identifier.
	ErrDuplicateID = errors.New("persistence: duplicate event id")
)
