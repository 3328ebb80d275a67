package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/phrazzld/prodwriter/internal/domain"
	"github.com/phrazzld/prodwriter/internal/generation"
	"github.com/phrazzld/prodwriter/internal/metrics"
	"github.com/phrazzld/prodwriter/internal/prompt"
	"github.com/phrazzld/prodwriter/internal/redact"
	"github.com/phrazzld/prodwriter/internal/render"
)

// PromptBuilder turns a validated ProductSpec into prompt text.
type PromptBuilder interface {
	Build(spec domain.ProductSpec) (string, error)
}

// DescriptionService generates product descriptions.
type DescriptionService interface {
	// Generate validates spec, prompts the model and returns the description.
	// A Description with empty Text means the model produced nothing usable.
	Generate(ctx context.Context, spec domain.ProductSpec) (*domain.Description, error)
}

type named interface {
	Name() string
}

type descriptionServiceImpl struct {
	generator generation.Generator
	builder   PromptBuilder
	logger    *slog.Logger
	model     string
}

// NewDescriptionService creates a DescriptionService. A nil builder selects the
// built-in prompt; a nil logger selects slog.Default().
func NewDescriptionService(
	generator generation.Generator,
	builder PromptBuilder,
	logger *slog.Logger,
) (DescriptionService, error) {
	if generator == nil {
		return nil, &DescriptionServiceError{
			Operation: "create_service",
			Message:   "generator cannot be nil",
		}
	}
	if builder == nil {
		builder = prompt.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	model := "unknown"
	if n, ok := generator.(named); ok {
		model = n.Name()
	}

	return &descriptionServiceImpl{
		generator: generator,
		builder:   builder,
		logger:    logger.With("component", "description_service"),
		model:     model,
	}, nil
}

// Generate implements DescriptionService.
func (s *descriptionServiceImpl) Generate(
	ctx context.Context,
	spec domain.ProductSpec,
) (*domain.Description, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		s.logger.InfoContext(ctx, "rejected incomplete product spec", "error", err)
		metrics.ObserveDescription(metrics.OutcomeValidation, 0, 0)
		return nil, err
	}

	text, err := s.builder.Build(spec)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build prompt", "error", err)
		metrics.ObserveDescription(metrics.OutcomeFailed, 0, 0)
		return nil, NewDescriptionServiceError("build_prompt", "failed to build prompt", err)
	}

	result, err := s.generator.Generate(ctx, text)
	if err != nil {
		s.logger.ErrorContext(ctx, "description generation failed",
			"error", redact.Secrets(err.Error()),
			"title", spec.Title)
		metrics.ObserveDescription(metrics.OutcomeFailed, 0, 0)
		return nil, NewDescriptionServiceError("generate", "text generation failed", err)
	}

	desc := domain.NewDescription(result.Text, text, s.model, result.Attempts, result.Blocked)

	switch {
	case result.Blocked:
		s.logger.WarnContext(ctx, "description withheld by safety filters",
			"description_id", desc.ID,
			"finish_reason", result.FinishReason)
		metrics.ObserveDescription(metrics.OutcomeBlocked, result.Attempts, 0)
		return desc, nil
	case desc.Empty():
		s.logger.WarnContext(ctx, "model returned no text",
			"description_id", desc.ID,
			"finish_reason", result.FinishReason)
		metrics.ObserveDescription(metrics.OutcomeEmpty, result.Attempts, 0)
		return desc, nil
	}

	html, err := render.Markdown(desc.Text)
	if err != nil {
		// The plain text is still usable.
		s.logger.WarnContext(ctx, "failed to render description markdown",
			"description_id", desc.ID,
			"error", err)
	}
	desc.HTML = string(html)

	words := len(strings.Fields(desc.Text))
	s.logger.InfoContext(ctx, "description generated",
		"description_id", desc.ID,
		"model", desc.Model,
		"attempts", desc.Attempts,
		"words", words)
	metrics.ObserveDescription(metrics.OutcomeSuccess, desc.Attempts, words)

	return desc, nil
}
