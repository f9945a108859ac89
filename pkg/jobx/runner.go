package jobx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"golang.org/x/sync/semaphore"
)

// RunnerOptions configures a Runner.
type RunnerOptions struct {
	// MaxConcurrent caps executions running at once. Zero means unlimited.
	MaxConcurrent   int64
	ShutdownTimeout time.Duration
}

// RunnerOption is a functional option for NewRunner.
type RunnerOption func(*RunnerOptions)

func WithMaxConcurrent(n int64) RunnerOption {
	return func(o *RunnerOptions) {
		if n >= 0 {
			o.MaxConcurrent = n
		}
	}
}

func WithShutdownTimeout(d time.Duration) RunnerOption {
	return func(o *RunnerOptions) {
		if d > 0 {
			o.ShutdownTimeout = d
		}
	}
}

// Runner launches one detached execution per job and tracks them so a
// shutdown can wait for in-flight work. Executions are never cancelled.
type Runner struct {
	opts    RunnerOptions
	sem     *semaphore.Weighted
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	active  atomic.Int64
	waiting atomic.Int64
}

// NewRunner creates a Runner.
func NewRunner(options ...RunnerOption) *Runner {
	opts := RunnerOptions{ShutdownTimeout: 30 * time.Second}
	for _, o := range options {
		o(&opts)
	}
	r := &Runner{opts: opts}
	if opts.MaxConcurrent > 0 {
		r.sem = semaphore.NewWeighted(opts.MaxConcurrent)
	}
	return r
}

// Go starts fn for jobID without waiting for it. When the runner is at
// capacity fn starts once a slot frees.
func (r *Runner) Go(jobID string, fn func(ctx context.Context)) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return jobxErrors.New(ErrRunnerClosed).WithDetail("job_id", jobID)
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()

		ctx := context.Background()
		if r.sem != nil {
			r.waiting.Add(1)
			err := r.sem.Acquire(ctx, 1)
			r.waiting.Add(-1)
			if err != nil {
				logx.WithError(err).WithField("job_id", jobID).Error("jobx: could not acquire execution slot")
				return
			}
			defer r.sem.Release(1)
		}

		r.active.Add(1)
		defer r.active.Add(-1)

		if err := asyncx.Safe(func() error { fn(ctx); return nil }); err != nil {
			logx.WithError(err).WithField("job_id", jobID).Error("jobx: execution panicked")
		}
	}()
	return nil
}

// Active is the number of executions currently running.
func (r *Runner) Active() int64 { return r.active.Load() }

// Waiting is the number of executions blocked on a free slot.
func (r *Runner) Waiting() int64 { return r.waiting.Load() }

// Shutdown stops accepting work and waits for running executions, up to
// the configured timeout or until ctx is done.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	logx.Infof("jobx: waiting for %d running job(s)", r.Active()+r.Waiting())

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(r.opts.ShutdownTimeout)
	defer timer.Stop()

	select {
	case <-done:
		logx.Info("jobx: all jobs finished")
		return nil
	case <-timer.C:
	case <-ctx.Done():
	}
	logx.Warn("jobx: shutdown timed out, some jobs may not have completed")
	return jobxErrors.New(ErrShutdownTimeout).WithDetail("active", r.Active())
}
