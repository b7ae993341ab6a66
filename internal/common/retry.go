package common

import (
	"context"
	"math"
	"time"
)

// RetryConfig controls synchronous retry with exponential backoff.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetry is the attempt policy shared by every I/O-owning step.
var DefaultRetry = RetryConfig{
	MaxRetries:      2, // 3 attempts total
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

// Retry runs fn until it succeeds, returns a non-retryable error, or all
// attempts are exhausted. retryable decides whether a failure is worth
// another attempt; backoff between attempts grows exponentially and is
// capped at MaxInterval.
func Retry(ctx context.Context, cfg RetryConfig, retryable func(error) bool, fn func() error) error {
	var attempt int

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err := fn()
		if err == nil {
			return nil
		}
		if !retryable(err) || attempt >= cfg.MaxRetries {
			return err
		}

		delay := cfg.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if cfg.MaxInterval > 0 && delay > cfg.MaxInterval {
			delay = cfg.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}
