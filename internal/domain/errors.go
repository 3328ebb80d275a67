package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation is returned when a ProductSpec fails validation.
// It is wrapped by ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError lists the ProductSpec fields that are missing or invalid.
// Field names use the form/JSON names (title, details, audience, tone, length, keywords).
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing or invalid fields: %s", ErrValidation, strings.Join(e.Fields, ", "))
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
