// Package service contains the application use case: turning a ProductSpec
// into a generated product description.
//
// DescriptionService orchestrates the domain, prompt, generation and render
// packages. It depends on the generation.Generator interface, never on a
// concrete provider, so delivery mechanisms (the JSON API and the web form)
// and tests can supply any backend.
//
// Error handling:
//   - Validation failures are returned unwrapped as *domain.ValidationError
//     and no generation call is made.
//   - Generation failures are wrapped in DescriptionServiceError and still
//     satisfy errors.Is(err, generation.ErrGenerationFailed).
//   - An empty or blocked result is not an error.
package service
