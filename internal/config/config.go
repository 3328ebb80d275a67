package config

import (
	"time"

	"github.com/phrazzld/prodwriter/internal/generation"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`

	// RequestTimeoutSeconds cancels a request (and its retries) after this long.
	// Zero disables the timeout.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gte=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// Provider selects the text-generation backend.
	Provider string `mapstructure:"provider" validate:"required,oneof=gemini openai"`

	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Provider gemini"`
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Provider openai"`

	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`

	ModelName       string  `mapstructure:"model_name" validate:"required"`
	Temperature     float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	TopK            int     `mapstructure:"top_k" validate:"gte=0"`
	MaxOutputTokens int     `mapstructure:"max_output_tokens" validate:"gt=0"`
	SafetyThreshold string  `mapstructure:"safety_threshold" validate:"required,oneof=BLOCK_NONE BLOCK_ONLY_HIGH BLOCK_MEDIUM_AND_ABOVE BLOCK_LOW_AND_ABOVE"`

	// PromptTemplatePath points at a text/template file replacing the built-in prompt.
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`

	MaxAttempts           int `mapstructure:"max_attempts" validate:"gte=1,lte=20"`
	RetryBaseDelaySeconds int `mapstructure:"retry_base_delay_seconds" validate:"gte=1"`
	RetryMaxDelaySeconds  int `mapstructure:"retry_max_delay_seconds" validate:"gtefield=RetryBaseDelaySeconds"`
}

// RetryPolicy converts the retry settings into a generation.RetryPolicy.
func (c LLMConfig) RetryPolicy() generation.RetryPolicy {
	return generation.RetryPolicy{
		MaxAttempts: c.MaxAttempts,
		BaseDelay:   time.Duration(c.RetryBaseDelaySeconds) * time.Second,
		MaxDelay:    time.Duration(c.RetryMaxDelaySeconds) * time.Second,
	}
}
