package models

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the referenced item does not exist.
var ErrNotFound = errors.New("item not found")

// ErrStoreUnavailable indicates the persistent store could not be read or
// written. Callers keep serving their last-known-good state when they see it.
var ErrStoreUnavailable = errors.New("item store unavailable")

// ValidationError describes a rejected field value. Nothing is persisted
// when validation fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
