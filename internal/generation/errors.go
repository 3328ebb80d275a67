package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when no attempt succeeded, either because the
	// retry budget was exhausted or because the caller's context ended. It wraps the
	// last attempt error.
	ErrGenerationFailed = errors.New("failed to generate text")

	// ErrInvalidResponse is returned by a Model when the service reply cannot be read.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when a model or client is constructed with bad
	// settings. It is never retried.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
