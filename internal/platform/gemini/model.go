package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/prodwriter/internal/config"
	"github.com/phrazzld/prodwriter/internal/generation"
	"google.golang.org/genai"
)

// DefaultSafetyThreshold blocks harmful content of medium probability and above.
const DefaultSafetyThreshold = string(genai.HarmBlockThresholdBlockMediumAndAbove)

// safetyCategories are the harm categories filtered on every request.
var safetyCategories = []genai.HarmCategory{
	genai.HarmCategoryHarassment,
	genai.HarmCategoryHateSpeech,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
}

// Model implements generation.Model using the Gemini generateContent endpoint.
type Model struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	// genConfig is built once and shared; the SDK only reads it.
	genConfig *genai.GenerateContentConfig
}

var _ generation.Model = (*Model)(nil)

// Option customises a Model.
type Option func(*genai.ClientConfig)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(cc *genai.ClientConfig) {
		cc.HTTPClient = hc
	}
}

// NewModel creates a Gemini model from the LLM configuration. The API key is
// taken from cfg only; the process environment is not consulted here.
func NewModel(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig, opts ...Option) (*Model, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if err := validateConfig(ctx, logger, cfg); err != nil {
		return nil, err
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions.BaseURL = cfg.BaseURL
	}
	for _, opt := range opts {
		opt(clientConfig)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Gemini model initialized",
		"model", cfg.ModelName,
		"max_output_tokens", cfg.MaxOutputTokens,
		"safety_threshold", cfg.SafetyThreshold)

	return &Model{
		logger:    logger,
		client:    client,
		model:     cfg.ModelName,
		genConfig: generationConfig(cfg),
	}, nil
}

// generationConfig maps the LLM settings onto a request config.
// A top-k of zero leaves the field unset so the service default applies.
func generationConfig(cfg config.LLMConfig) *genai.GenerateContentConfig {
	threshold := cfg.SafetyThreshold
	if threshold == "" {
		threshold = DefaultSafetyThreshold
	}

	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(cfg.Temperature)),
		MaxOutputTokens: int32(cfg.MaxOutputTokens),
	}
	if cfg.TopK > 0 {
		gc.TopK = genai.Ptr(float32(cfg.TopK))
	}

	for _, category := range safetyCategories {
		gc.SafetySettings = append(gc.SafetySettings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThreshold(threshold),
		})
	}
	return gc
}

// Name returns "gemini/<model>".
func (m *Model) Name() string {
	return "gemini/" + m.model
}

// GenerateText sends prompt as a single user turn and returns the first
// candidate's text.
func (m *Model) GenerateText(ctx context.Context, prompt string) (generation.Result, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), m.genConfig)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return generation.Result{}, fmt.Errorf("gemini API error %d %s: %w", apiErr.Code, apiErr.Status, err)
		}
		return generation.Result{}, fmt.Errorf("gemini request failed: %w", err)
	}

	return m.parseResponse(ctx, resp)
}

func (m *Model) parseResponse(ctx context.Context, resp *genai.GenerateContentResponse) (generation.Result, error) {
	if resp == nil {
		return generation.Result{}, fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		m.logger.WarnContext(ctx, "Prompt blocked by safety filters",
			"block_reason", resp.PromptFeedback.BlockReason)
		return generation.Result{
			FinishReason: string(resp.PromptFeedback.BlockReason),
			Blocked:      true,
		}, nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		m.logger.WarnContext(ctx, "Gemini returned no candidates")
		return generation.Result{}, nil
	}

	candidate := resp.Candidates[0]
	result := generation.Result{
		FinishReason: string(candidate.FinishReason),
		Blocked:      candidate.FinishReason == genai.FinishReasonSafety,
	}
	if result.Blocked {
		m.logger.WarnContext(ctx, "Response blocked by safety filters")
		return result, nil
	}

	if candidate.Content != nil {
		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			sb.WriteString(part.Text)
		}
		result.Text = sb.String()
	}

	return result, nil
}
