// Package retry provides a single retry-with-backoff combinator shared by the
// YouTube client and the extraction driver.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/googleapis/gax-go/v2"
)

// Policy describes how an operation is retried.
type Policy struct {
	// Attempts is the total number of calls, including the first. Values
	// below 1 are treated as 1.
	Attempts int
	// Delay is the pause before the second attempt.
	Delay time.Duration
	// Multiplier grows the pause between attempts. Values <= 1 keep the
	// pause fixed at Delay.
	Multiplier float64
	// MaxDelay caps exponential pauses. Zero means no cap beyond 30s.
	MaxDelay time.Duration
	// Retryable decides whether err is worth another attempt. A nil
	// Retryable retries every error.
	Retryable func(error) bool
}

// Fixed returns a policy that makes up to attempts calls with a constant
// delay between them.
func Fixed(attempts int, delay time.Duration, retryable func(error) bool) Policy {
	return Policy{Attempts: attempts, Delay: delay, Retryable: retryable}
}

// Exponential returns a policy with jittered exponential backoff.
func Exponential(attempts int, initial, maxDelay time.Duration, retryable func(error) bool) Policy {
	return Policy{Attempts: attempts, Delay: initial, Multiplier: 2, MaxDelay: maxDelay, Retryable: retryable}
}

// ExhaustedError is returned when every attempt failed with a retryable error.
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// Do calls op until it succeeds, returns a non-retryable error, the attempts
// are used up, or ctx is done. A non-retryable error is returned unwrapped.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := DoValue(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	pause := p.pauser()

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return zero, fmt.Errorf("%w (last error: %v)", err, lastErr)
			}
			return zero, err
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if attempt == attempts {
			break
		}

		if err := gax.Sleep(ctx, pause()); err != nil {
			return zero, fmt.Errorf("%w (last error: %v)", err, lastErr)
		}
	}

	if attempts == 1 {
		return zero, lastErr
	}
	return zero, &ExhaustedError{Attempts: attempts, Last: lastErr}
}

func (p Policy) pauser() func() time.Duration {
	if p.Multiplier <= 1 {
		return func() time.Duration { return p.Delay }
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 30 * time.Second
	}
	backoff := &gax.Backoff{Initial: p.Delay, Max: maxDelay, Multiplier: p.Multiplier}
	return backoff.Pause
}

// IsExhausted reports whether err came from running out of attempts.
func IsExhausted(err error) bool {
	var exhausted *ExhaustedError
	return errors.As(err, &exhausted)
}
