package asyncx

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"
)

// ─── Future ──────────────────────────────────────────────────────────────────

type result[T any] struct {
	value T
	err   error
}

// Future represents a value that will be available asynchronously.
// Create one with Run and retrieve its value with Await.
type Future[T any] struct {
	ch   chan result[T]
	res  *result[T]
	mu   sync.Mutex
	done chan struct{}
}

// Run executes fn in a goroutine and returns a Future for its result.
// A panic inside fn resolves the Future with a *PanicError.
func Run[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{ch: make(chan result[T], 1), done: make(chan struct{})}
	go func() {
		var r result[T]
		r.err = Safe(func() error {
			var err error
			r.value, err = fn()
			return err
		})
		f.ch <- r
		close(f.done)
	}()
	return f
}

// Await blocks until the Future completes. Subsequent calls return the
// cached result.
func (f *Future[T]) Await() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.res == nil {
		r := <-f.ch
		f.res = &r
	}
	return f.res.value, f.res.err
}

// AwaitContext is Await bounded by ctx.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.Await()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the Future has resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// ─── Panics ──────────────────────────────────────────────────────────────────

// PanicError carries a recovered panic value and the stack at the point
// of recovery.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Safe calls fn and converts a panic into a *PanicError.
func Safe(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}

// ─── Timeout ─────────────────────────────────────────────────────────────────

// WithTimeout runs fn with a deadline of d. It returns
// context.DeadlineExceeded when fn does not finish in time, even if fn
// ignores its context.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	ch := make(chan result[T], 1)
	go func() {
		var r result[T]
		r.err = Safe(func() error {
			var err error
			r.value, err = fn(ctx)
			return err
		})
		ch <- r
	}()

	select {
	case r := <-ch:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
