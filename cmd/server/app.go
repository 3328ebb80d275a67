package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/prodwriter/internal/config"
	"github.com/phrazzld/prodwriter/internal/generation"
	"github.com/phrazzld/prodwriter/internal/metrics"
	"github.com/phrazzld/prodwriter/internal/platform/gemini"
	"github.com/phrazzld/prodwriter/internal/platform/openai"
	"github.com/phrazzld/prodwriter/internal/prompt"
	"github.com/phrazzld/prodwriter/internal/service"
)

// application holds the shared dependencies of the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	generator          *generation.Client
	descriptionService service.DescriptionService
}

// newApplication creates the configured LLM model and wires the application around it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	model, err := newModel(ctx, cfg.LLM, logger.With("component", "llm_model"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM model: %w", err)
	}
	return newApplicationWithModel(cfg, logger, model)
}

// newApplicationWithModel wires the application around an existing model.
func newApplicationWithModel(cfg *config.Config, logger *slog.Logger, model generation.Model) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.generator, err = generation.NewClient(
		model,
		cfg.LLM.RetryPolicy(),
		logger.With("component", "generation_client"),
		generation.WithAttemptObserver(metrics.AttemptObserver(model.Name())),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	builder, err := prompt.NewBuilder(cfg.LLM.PromptTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	app.descriptionService, err = service.NewDescriptionService(app.generator, builder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create description service: %w", err)
	}

	logger.Info("Application initialized successfully", "model", model.Name())
	return app, nil
}

// newModel selects the text-generation backend named by cfg.Provider.
func newModel(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Model, error) {
	switch cfg.Provider {
	case "gemini":
		return gemini.NewModel(ctx, logger, cfg)
	case "openai":
		return openai.NewModel(logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Run serves HTTP until the process is signalled or ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
