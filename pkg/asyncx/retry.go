package asyncx

import (
	"context"
	"time"
)

// ─── Retry ───────────────────────────────────────────────────────────────────

// BackoffFunc returns the wait after the failed attempt with the given
// zero-based index.
type BackoffFunc func(attempt int) time.Duration

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryPolicy bounds how Retry re-invokes a failing call.
type RetryPolicy struct {
	// MaxAttempts is the total number of calls, including the first.
	MaxAttempts int

	Backoff BackoffFunc

	// Retryable decides whether err warrants another attempt. A nil
	// Retryable retries every error.
	Retryable func(err error) bool

	// Sleep defaults to SleepContext. Tests swap it to record waits.
	Sleep SleepFunc

	// OnRetry is called before each wait.
	OnRetry func(attempt int, wait time.Duration, err error)
}

// ExponentialBackoff returns min(max, base * 2^attempt).
func ExponentialBackoff(base, max time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		d := base
		for i := 0; i < attempt && d < max; i++ {
			d *= 2
		}
		if d > max {
			return max
		}
		return d
	}
}

// SleepContext waits for d or returns ctx.Err() if ctx ends first.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Retry calls fn until it succeeds, returns a non-retryable error, or the
// policy runs out of attempts. The last error is returned unchanged.
func Retry[T any](ctx context.Context, p RetryPolicy, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return zero, err
			}
			return zero, ctxErr
		}

		var val T
		val, err = fn(ctx)
		if err == nil {
			return val, nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return zero, err
		}
		if attempt == attempts-1 {
			break
		}

		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempt)
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, wait, err)
		}
		if sleepErr := sleep(ctx, wait); sleepErr != nil {
			return zero, err
		}
	}
	return zero, err
}
