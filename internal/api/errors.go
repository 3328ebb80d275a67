package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/prodwriter/internal/api/shared"
	"github.com/phrazzld/prodwriter/internal/domain"
	"github.com/phrazzld/prodwriter/internal/generation"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, shared.ErrInvalidJSON):
		return http.StatusBadRequest

	// Cancellation surfaces as ErrGenerationFailed too; check it first.
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that leaks no
// internal detail. Validation errors name the offending fields.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return "Missing or invalid fields: " + strings.Join(vErr.Fields, ", ")

	case errors.Is(err, shared.ErrInvalidJSON):
		return "Invalid request format"

	case errors.Is(err, context.DeadlineExceeded):
		return "The text generation service did not respond in time"

	case errors.Is(err, generation.ErrGenerationFailed):
		return "The text generation service is unavailable, please try again later"

	default:
		return "An unexpected error occurred"
	}
}
