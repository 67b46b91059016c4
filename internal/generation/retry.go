package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// RetryPolicy controls CallWithRetry. A call is attempted MaxRetries+1 times.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// Backoff returns the wait before retry number attempt (0-based):
// BaseDelay * 2^attempt scaled by a random factor in [0.5, 1.0).
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	backoff := float64(p.BaseDelay) * math.Pow(2, float64(attempt))
	jitterFactor := 0.5 + rand.Float64()*0.5
	return time.Duration(backoff * jitterFactor)
}

// CallWithRetry runs fn until it succeeds, fails with an error that does not
// wrap ErrTransientFailure, or the retries run out. Context cancellation
// during a backoff wait ends the loop with ErrTransientFailure.
func CallWithRetry(
	ctx context.Context,
	policy RetryPolicy,
	logger *slog.Logger,
	fn func(ctx context.Context) error,
) error {
	if logger == nil {
		logger = slog.Default()
	}
	maxRetries := policy.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.InfoContext(ctx, "generation call succeeded after retry",
					slog.Int("attempt", attempt+1))
			}
			return nil
		}
		lastErr = err

		if !errors.Is(err, ErrTransientFailure) {
			return err
		}
		if attempt == maxRetries {
			break
		}

		delay := policy.Backoff(attempt)
		logger.WarnContext(ctx, "transient generation failure, retrying",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", maxRetries+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}

	return fmt.Errorf("exceeded maximum retry attempts (%d): %w", maxRetries, lastErr)
}
