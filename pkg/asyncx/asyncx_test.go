package asyncx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")
var errFatal = errors.New("fatal")

type recorder struct {
	waits []time.Duration
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return nil
}

func TestExponentialBackoff(t *testing.T) {
	b := asyncx.ExponentialBackoff(4*time.Second, 60*time.Second)

	assert.Equal(t, 4*time.Second, b(0))
	assert.Equal(t, 8*time.Second, b(1))
	assert.Equal(t, 16*time.Second, b(2))
	assert.Equal(t, 32*time.Second, b(3))
	assert.Equal(t, 60*time.Second, b(4))
	assert.Equal(t, 60*time.Second, b(10))
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	rec := &recorder{}
	calls := 0

	out, err := asyncx.Retry(context.Background(), asyncx.RetryPolicy{
		MaxAttempts: 5,
		Backoff:     asyncx.ExponentialBackoff(4*time.Second, 60*time.Second),
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		Sleep:       rec.sleep,
	}, func(context.Context) (string, error) {
		calls++
		if calls < 5 {
			return "", errTransient
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, 5, calls)
	assert.Equal(t, []time.Duration{4 * time.Second, 8 * time.Second, 16 * time.Second, 32 * time.Second}, rec.waits)
}

func TestRetry_ExhaustionReturnsLastError(t *testing.T) {
	rec := &recorder{}
	calls := 0

	_, err := asyncx.Retry(context.Background(), asyncx.RetryPolicy{
		MaxAttempts: 5,
		Backoff:     asyncx.ExponentialBackoff(4*time.Second, 60*time.Second),
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		Sleep:       rec.sleep,
	}, func(context.Context) (int, error) {
		calls++
		return 0, errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 5, calls)
	assert.Len(t, rec.waits, 4)
}

func TestRetry_NonRetryableAbortsImmediately(t *testing.T) {
	rec := &recorder{}
	calls := 0

	_, err := asyncx.Retry(context.Background(), asyncx.RetryPolicy{
		MaxAttempts: 5,
		Retryable:   func(err error) bool { return errors.Is(err, errTransient) },
		Sleep:       rec.sleep,
	}, func(context.Context) (int, error) {
		calls++
		return 0, errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.waits)
}

func TestRetry_CancelledDuringWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := asyncx.Retry(ctx, asyncx.RetryPolicy{MaxAttempts: 3}, func(context.Context) (int, error) {
		return 0, errTransient
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RecoversPanic(t *testing.T) {
	fut := asyncx.Run(func() (int, error) {
		panic("kaboom")
	})

	_, err := fut.Await()
	var pe *asyncx.PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "kaboom", pe.Value)
	assert.NotEmpty(t, pe.Stack)
}

func TestWithTimeout_BoundsStuckCall(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	_, err := asyncx.WithTimeout(context.Background(), 20*time.Millisecond, func(context.Context) (int, error) {
		<-block
		return 1, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFuture_AwaitContext(t *testing.T) {
	release := make(chan struct{})
	fut := asyncx.Run(func() (int, error) {
		<-release
		return 7, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := fut.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	v, err := fut.AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}
