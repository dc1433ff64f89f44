package fs

import (
	"context"
	"fmt"
	"time"

	"github.com/juju/clock"
)

const maxRetries = 5

var (
	// retryBase is the first backoff delay; it doubles on every attempt.
	retryBase = 100 * time.Millisecond
	// retryClock paces the backoff.
	retryClock clock.Clock = clock.WallClock
)

// retry runs fn until it succeeds, fails with a non-transient error, ctx is
// done or maxRetries attempts were made. Errors are wrapped with op.
func retry(ctx context.Context, op string, fn func() error) error {
	var err error
	delay := retryBase

	for attempt := 1; ; attempt++ {
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}

		if err = fn(); err == nil {
			return nil
		}
		if !isTransient(err) {
			return fmt.Errorf("%s failed permanently: %w", op, err)
		}
		if attempt == maxRetries {
			return fmt.Errorf("%s failed after %d retries: %w", op, maxRetries, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-retryClock.After(delay):
		}
		delay *= 2
	}
}
