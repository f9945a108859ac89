// Package asyncx provides the small set of concurrency helpers the
// service relies on: futures, panic-safe execution, timeouts and a
// policy-driven retry loop.
//
// # Futures
//
// [Run] starts work in a goroutine and returns a [Future]. [Future.Await]
// blocks until the result is ready and caches it. A panic inside the
// function resolves the future with a [*PanicError] instead of crashing
// the process.
//
//	fut := asyncx.Run(func() (string, error) {
//	    return renderer.Render(ctx, url)
//	})
//	html, err := fut.Await()
//
// # Retry
//
// [Retry] re-invokes a call under a [RetryPolicy]. The policy decides how
// many attempts are made, which errors are worth retrying and how long to
// wait between attempts.
//
//	out, err := asyncx.Retry(ctx, asyncx.RetryPolicy{
//	    MaxAttempts: 5,
//	    Backoff:     asyncx.ExponentialBackoff(4*time.Second, time.Minute),
//	    Retryable:   isRateLimited,
//	}, call)
//
// The Sleep hook makes backoff observable in tests without real waits.
//
// # Timeouts
//
// [WithTimeout] bounds a call even when the callee ignores its context.
package asyncx
