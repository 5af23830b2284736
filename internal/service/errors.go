package service

import (
	"errors"
	"fmt"

	"taskpad/internal/store"
)

// Sentinel errors surfaced by the façade. Store-level absence is
// reported through store.ErrNotFound; use IsNotFound to test for it.
var (
	// ErrValidation marks bad user input (missing required field,
	// length limit).
	ErrValidation = errors.New("validation failed")

	// ErrHasDependents is returned when a guarded delete runs with the
	// abort policy while dependent records still exist.
	ErrHasDependents = errors.New("has dependent records")
)

// validationErr wraps ErrValidation with a field-specific reason.
func validationErr(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrValidation)
}

// IsNotFound reports whether err represents an expected-absence
// failure from the store.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
