package generation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sethvargo/go-retry"
)

// Default retry settings: six attempts, waits starting at one second and never
// longer than a minute.
const (
	DefaultMaxAttempts = 6
	DefaultBaseDelay   = time.Second
	DefaultMaxDelay    = 60 * time.Second
)

// RetryPolicy bounds how often and how patiently a Client retries.
//
// Before retry n (n = 1 for the second attempt) the Client waits a random
// duration drawn uniformly from [BaseDelay, min(MaxDelay, BaseDelay*2^(n-1))].
// Waits therefore grow exponentially in expectation and never exceed MaxDelay.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy returns the policy used in production.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Validate checks that the policy can produce a schedule.
func (p RetryPolicy) Validate() error {
	if p.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", ErrInvalidConfig, p.MaxAttempts)
	}
	if p.BaseDelay <= 0 {
		return fmt.Errorf("%w: base delay must be positive, got %s", ErrInvalidConfig, p.BaseDelay)
	}
	if p.MaxDelay < p.BaseDelay {
		return fmt.Errorf("%w: max delay %s is below base delay %s", ErrInvalidConfig, p.MaxDelay, p.BaseDelay)
	}
	return nil
}

// Backoff returns a fresh wait schedule for one call. It yields at most
// MaxAttempts-1 waits and then stops. Each call gets its own schedule; schedules
// must not be shared between calls.
func (p RetryPolicy) Backoff() retry.Backoff {
	b := retry.NewExponential(p.BaseDelay)
	b = withRandomWait(p.BaseDelay, b)
	b = retry.WithCappedDuration(p.MaxDelay, b)
	return retry.WithMaxRetries(uint64(p.MaxAttempts-1), b)
}

// withRandomWait replaces each exponential step with a uniform draw between
// floor and that step.
func withRandomWait(floor time.Duration, next retry.Backoff) retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		ceiling, stop := next.Next()
		if stop {
			return 0, true
		}
		if ceiling <= floor {
			return floor, false
		}
		return floor + rand.N(ceiling-floor+1), false
	})
}
