package domain

import (
	"fmt"

	"hbnb/pkg/serrors"
)

// ValidationError reports the first field-level constraint an entity violates.
// It matches serrors.ErrValidation through errors.Is and errors.As.
type ValidationError struct {
	// Field is the attribute name as used in patches (e.g. "first_name").
	Field string
	// Reason describes the violated constraint (e.g. "is required").
	Reason string
}

func invalid(field, reasonFmt string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(reasonFmt, args...)}
}

// Error implements the error interface.
func (e *ValidationError) Error() string { return e.Field + " " + e.Reason }

// Unwrap exposes the semantic kind so callers can match on it.
func (e *ValidationError) Unwrap() error { return serrors.ErrValidation }
