package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
)

// Client implements Generator by calling a Model under a RetryPolicy.
//
// Per call the client moves Idle -> Attempting -> Success, or
// Attempting -> RetryWait -> Attempting until the policy is exhausted.
// Any attempt error is retried except ErrInvalidConfig and context errors.
// An empty or blocked Result is a success and is not retried.
type Client struct {
	model  Model
	policy RetryPolicy
	logger *slog.Logger

	// observe, when set, is told the outcome of every attempt.
	observe func(outcome string, elapsed time.Duration)
}

// Option customises a Client.
type Option func(*Client)

// WithAttemptObserver registers fn to be called after each attempt with
// "success", "empty" or "error" and the attempt's duration.
func WithAttemptObserver(fn func(outcome string, elapsed time.Duration)) Option {
	return func(c *Client) {
		c.observe = fn
	}
}

// NewClient creates a Client. It fails with ErrInvalidConfig if model or logger
// is nil or the policy is invalid.
func NewClient(model Model, policy RetryPolicy, logger *slog.Logger, opts ...Option) (*Client, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: model cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger cannot be nil", ErrInvalidConfig)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		model:  model,
		policy: policy,
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the underlying model's name.
func (c *Client) Name() string {
	return c.model.Name()
}

// Generate sends prompt to the model, retrying failed attempts with backoff.
//
// On success it returns the Result, which may be empty. When every attempt fails
// it returns an error wrapping both ErrGenerationFailed and the last attempt
// error. Cancelling ctx stops any pending wait.
func (c *Client) Generate(ctx context.Context, prompt string) (Result, error) {
	attempts := 0

	result, err := retry.DoValue(ctx, c.policy.Backoff(), func(ctx context.Context) (Result, error) {
		attempts++
		c.logger.DebugContext(ctx, "calling language model",
			"model", c.model.Name(),
			"attempt", attempts,
			"max_attempts", c.policy.MaxAttempts)

		start := time.Now()
		res, err := c.model.GenerateText(ctx, prompt)
		elapsed := time.Since(start)

		if err != nil {
			c.record("error", elapsed)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, fmt.Errorf("%w: %w", ctxErr, err)
			}
			if errors.Is(err, ErrInvalidConfig) {
				return Result{}, err
			}
			c.logger.WarnContext(ctx, "language model call failed",
				"model", c.model.Name(),
				"attempt", attempts,
				"error", err)
			return Result{}, retry.RetryableError(err)
		}

		if res.Empty() {
			c.record("empty", elapsed)
		} else {
			c.record("success", elapsed)
		}
		return res, nil
	})

	if err != nil {
		c.logger.ErrorContext(ctx, "text generation failed",
			"model", c.model.Name(),
			"attempts", attempts,
			"error", err)
		return Result{}, fmt.Errorf("%w after %d attempt(s): %w", ErrGenerationFailed, attempts, err)
	}

	result.Attempts = attempts
	if result.Empty() {
		c.logger.InfoContext(ctx, "language model returned no text",
			"model", c.model.Name(),
			"attempts", attempts,
			"blocked", result.Blocked,
			"finish_reason", result.FinishReason)
	}
	return result, nil
}

func (c *Client) record(outcome string, elapsed time.Duration) {
	if c.observe != nil {
		c.observe(outcome, elapsed)
	}
}
