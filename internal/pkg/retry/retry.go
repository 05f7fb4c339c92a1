// Package retry re-runs an operation with exponential backoff while its error is retryable.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"marketplace/internal/pkg/errs"
)

// Func is one attempt of a retried operation.
type Func func(ctx context.Context) error

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	Jitter      bool
	// Retryable decides whether an attempt's error warrants another attempt.
	Retryable func(error) bool
	// OnRetry, when set, is called before sleeping between attempts.
	OnRetry func(operation string, attempt int, err error)
}

// DefaultConfig retries optimistic-concurrency conflicts up to three attempts in total.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		Multiplier:  2.0,
		Jitter:      true,
		Retryable:   IsConflict,
	}
}

// IsConflict reports whether err is an errs.ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, errs.ErrConflict)
}

type Retrier struct {
	config Config
	logger *slog.Logger
}

func New(config Config, logger *slog.Logger) *Retrier {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.Multiplier < 1 {
		config.Multiplier = 1
	}
	if config.Retryable == nil {
		config.Retryable = IsConflict
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrier{
		config: config,
		logger: logger.With("component", "retry"),
	}
}

func NewWithDefaults(logger *slog.Logger) *Retrier {
	return New(DefaultConfig(), logger)
}

// Do runs fn until it succeeds, fails with a non-retryable error, or MaxAttempts is reached.
// When attempts run out the last error is returned wrapped, so errors.Is still matches it.
func (r *Retrier) Do(ctx context.Context, operation string, fn Func) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				r.logger.InfoContext(ctx, "operation succeeded after retries",
					"operation", operation, "attempts", attempt)
			}
			return nil
		}

		lastErr = err
		if !r.config.Retryable(err) {
			return err
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		delay := r.delay(attempt)
		r.logger.DebugContext(ctx, "operation failed, retrying",
			"operation", operation, "attempt", attempt, "delay", delay, "error", err)
		if r.config.OnRetry != nil {
			r.config.OnRetry(operation, attempt, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.logger.WarnContext(ctx, "operation failed after all retries",
		"operation", operation, "attempts", r.config.MaxAttempts, "error", lastErr)
	return fmt.Errorf("%s: gave up after %d attempts: %w", operation, r.config.MaxAttempts, lastErr)
}

func (r *Retrier) delay(attempt int) time.Duration {
	d := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))
	if r.config.MaxDelay > 0 && d > float64(r.config.MaxDelay) {
		d = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		d += d * 0.1 * rand.Float64()
	}
	return time.Duration(d)
}
