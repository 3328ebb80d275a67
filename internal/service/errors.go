package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/prodwriter/internal/domain"
)

// DescriptionServiceError wraps errors from the description service with context.
type DescriptionServiceError struct {
	// Operation is the step that failed (e.g. "build_prompt", "generate")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DescriptionServiceError.
func (e *DescriptionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("description service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("description service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DescriptionServiceError) Unwrap() error {
	return e.Err
}

// NewDescriptionServiceError creates a new DescriptionServiceError.
// Validation errors are returned as they are so callers can inspect the fields.
func NewDescriptionServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	return &DescriptionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
