// Package retry provides a small exponential-backoff helper for idempotent
// calls against external services.
package retry

import (
	"context"
	"errors"
	"time"
)

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying. Do stops immediately and
// returns the wrapped error unchanged.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// Do invokes fn up to attempts times, doubling the delay between attempts.
// The last error is returned when every attempt fails. A Permanent error or
// context cancellation aborts the loop early.
func Do(ctx context.Context, attempts int, initialDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	delay := initialDelay
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		var pe *permanentError
		if errors.As(err, &pe) {
			return pe.err
		}
		if attempt == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
