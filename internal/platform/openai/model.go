// Package openai implements generation.Model on the OpenAI chat-completions API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/phrazzld/prodwriter/internal/config"
	"github.com/phrazzld/prodwriter/internal/generation"
)

// finishReasonContentFilter is reported when OpenAI's moderation withheld output.
const finishReasonContentFilter = "content_filter"

// Model sends a single user message per call. SDK retries are disabled;
// generation.Client is the only retry layer.
type Model struct {
	logger      *slog.Logger
	client      openaisdk.Client
	model       string
	temperature float64
	maxTokens   int64
}

var _ generation.Model = (*Model)(nil)

// NewModel builds a Model from the LLM configuration. Extra request options
// (an HTTP client in tests) are applied after the configured ones.
func NewModel(logger *slog.Logger, cfg config.LLMConfig, opts ...option.RequestOption) (*Model, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.MaxOutputTokens <= 0 {
		return nil, fmt.Errorf("%w: max output tokens must be positive, got %d",
			generation.ErrInvalidConfig, cfg.MaxOutputTokens)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.BaseURL))
	}
	reqOpts = append(reqOpts, opts...)

	return &Model{
		logger:      logger,
		client:      openaisdk.NewClient(reqOpts...),
		model:       cfg.ModelName,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxOutputTokens),
	}, nil
}

// WithHTTPClient routes API calls through hc.
func WithHTTPClient(hc *http.Client) option.RequestOption {
	return option.WithHTTPClient(hc)
}

// Name returns "openai/<model>".
func (m *Model) Name() string {
	return "openai/" + m.model
}

// GenerateText requests one chat completion for prompt.
func (m *Model) GenerateText(ctx context.Context, prompt string) (generation.Result, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(m.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.UserMessage(prompt),
		},
		Temperature:         openaisdk.Float(m.temperature),
		MaxCompletionTokens: openaisdk.Int(m.maxTokens),
	})
	if err != nil {
		var apiErr *openaisdk.Error
		if errors.As(err, &apiErr) {
			return generation.Result{}, fmt.Errorf("openai API error %d: %w", apiErr.StatusCode, err)
		}
		return generation.Result{}, fmt.Errorf("openai request failed: %w", err)
	}
	if resp == nil {
		return generation.Result{}, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if len(resp.Choices) == 0 {
		m.logger.WarnContext(ctx, "OpenAI returned no choices")
		return generation.Result{}, nil
	}

	choice := resp.Choices[0]
	result := generation.Result{
		FinishReason: choice.FinishReason,
		Blocked:      choice.FinishReason == finishReasonContentFilter,
	}
	if result.Blocked {
		m.logger.WarnContext(ctx, "Response withheld by content filter")
		return result, nil
	}

	result.Text = choice.Message.Content
	return result, nil
}
