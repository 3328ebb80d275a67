package generation

import (
	"context"
	"strings"
)

// Result is the outcome of a generation call that reached the service.
// An empty Text means the service answered without usable output, for example
// because its safety filters withheld the response.
type Result struct {
	// Text is the first textual response, or empty.
	Text string

	// FinishReason is the provider's reason for ending generation, if reported.
	FinishReason string

	// Blocked is set when the provider withheld output on safety grounds.
	Blocked bool

	// Attempts is how many calls were made to obtain this result. Set by Client.
	Attempts int
}

// Empty reports whether the result carries no usable text.
func (r Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Model sends a single-turn prompt to a generative-text service, once.
// Implementations must not retry; Client owns the retry policy.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (Result, error)

	// Name identifies the provider and model, e.g. "gemini/gemini-1.5-flash".
	Name() string
}

// Generator is the capability the rest of the application depends on:
// generate text for a prompt, or fail.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}
