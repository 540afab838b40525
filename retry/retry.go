// Package retry provides a bounded retry loop with per-attempt delays.
package retry

import (
	"context"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(attempt int, err error)

// Policy describes how an operation is retried.
// The number of attempts is len(Delays)+1: one initial attempt plus one
// retry per delay.
type Policy struct {
	// Delays are the waits before each retry.
	Delays []time.Duration

	// Retryable reports whether err is worth another attempt.
	// A nil Retryable retries every error. Cancellation of the caller's
	// context always stops the loop; a deadline hit inside a single attempt,
	// such as an HTTP client timeout, does not.
	Retryable func(err error) bool

	// Log, if set, is called before each retry with the upcoming attempt
	// number and the error that caused it.
	Log LogFunc
}

// DefaultDelays returns the backoff delays for three total attempts: 500ms, 1s.
func DefaultDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second}
}

// Attempts returns the total number of attempts the policy allows.
func (p Policy) Attempts() int {
	return len(p.Delays) + 1
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// policy's attempts are exhausted. The error from the last attempt is
// returned on exhaustion.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	retryable := p.Retryable
	if retryable == nil {
		retryable = func(error) bool { return true }
	}

	var lastErr error
	for attempt := 0; attempt < p.Attempts(); attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= p.Attempts()-1 || !retryable(err) {
			break
		}

		if err := ctx.Err(); err != nil {
			return zero, err
		}

		if p.Log != nil {
			p.Log(attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.Delays[attempt]):
		}
	}

	return zero, lastErr
}
