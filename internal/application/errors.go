package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrDuplicateEvent is returned when a create or edit would leave two
	// events sharing subject, start, and end.
	ErrDuplicateEvent = errors.New("application: duplicate event")
	// ErrEventNotFound is returned when no event matches an edit locator.
	ErrEventNotFound = errors.New("application: event not found")
	// ErrAmbiguousTarget is returned when an edit locator matches events
	// spanning more than one series, or more than one event under "this"
	// scope.
	ErrAmbiguousTarget = errors.New("application: ambiguous edit target")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface, listing the offending fields.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
