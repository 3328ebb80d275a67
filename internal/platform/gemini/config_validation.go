package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/prodwriter/internal/config"
	"github.com/phrazzld/prodwriter/internal/generation"
)

// validateConfig checks the settings the Gemini model cannot work without.
// The config loader validates the same fields; this guards direct construction.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.MaxOutputTokens <= 0 {
		return fmt.Errorf("%w: max output tokens must be positive, got %d",
			generation.ErrInvalidConfig, cfg.MaxOutputTokens)
	}

	if cfg.Temperature < 0 {
		return fmt.Errorf("%w: temperature cannot be negative", generation.ErrInvalidConfig)
	}

	if cfg.TopK < 0 {
		logger.WarnContext(ctx, "Negative top_k ignored", "top_k", cfg.TopK)
	}

	logger.DebugContext(ctx, "Gemini configuration validated", "model", cfg.ModelName)
	return nil
}
