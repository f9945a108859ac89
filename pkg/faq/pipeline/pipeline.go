// Package pipeline runs the capture, extract and synthesize stages in
// order for one request.
package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/capture"
	"github.com/Abraxas-365/faqgen/pkg/faq/extract"
	"github.com/Abraxas-365/faqgen/pkg/faq/synth"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
)

const (
	ProgressCaptured  = 25
	ProgressExtracted = 50

	MessageExtracting   = "Extracting structured data..."
	MessageSynthesizing = "Generating FAQ..."
)

// Reporter receives progress after each stage that succeeds.
type Reporter func(ctx context.Context, progress int, message string)

// Options tunes delays and the extract retry policy.
type Options struct {
	StageDelay    time.Duration
	RetryAttempts int
	RetryBase     time.Duration
	RetryMax      time.Duration

	// Sleep is used for stage delays and retry waits.
	Sleep asyncx.SleepFunc
}

type Option func(*Options)

func WithStageDelay(d time.Duration) Option {
	return func(o *Options) {
		if d >= 0 {
			o.StageDelay = d
		}
	}
}

// WithRetry sets the total number of extract attempts and the backoff
// bounds used between rate-limited attempts.
func WithRetry(attempts int, base, max time.Duration) Option {
	return func(o *Options) {
		if attempts > 0 {
			o.RetryAttempts = attempts
		}
		if base > 0 {
			o.RetryBase = base
		}
		if max > 0 {
			o.RetryMax = max
		}
	}
}

func WithSleep(fn asyncx.SleepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Sleep = fn
		}
	}
}

func defaultOptions() Options {
	return Options{
		StageDelay:    3 * time.Second,
		RetryAttempts: 5,
		RetryBase:     4 * time.Second,
		RetryMax:      60 * time.Second,
		Sleep:         asyncx.SleepContext,
	}
}

// Pipeline sequences the stages. It holds no per-job state and is safe
// for concurrent use.
type Pipeline struct {
	capture *capture.Stage
	extract *extract.Stage
	synth   *synth.Stage
	opts    Options
}

func New(c *capture.Stage, e *extract.Stage, s *synth.Stage, opts ...Option) *Pipeline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline{capture: c, extract: e, synth: s, opts: o}
}

// RetryPolicy is the policy applied around the extract stage: only
// rate-limited failures are retried.
func (p *Pipeline) RetryPolicy(ctx context.Context) asyncx.RetryPolicy {
	log := logx.WithContext(ctx)
	return asyncx.RetryPolicy{
		MaxAttempts: p.opts.RetryAttempts,
		Backoff:     asyncx.ExponentialBackoff(p.opts.RetryBase, p.opts.RetryMax),
		Retryable:   faq.IsRateLimited,
		Sleep:       p.opts.Sleep,
		OnRetry: func(attempt int, wait time.Duration, err error) {
			log.WithError(err).Warnf("extract: rate limited, retrying in %s (attempt %d/%d)",
				wait, attempt+1, p.opts.RetryAttempts)
		},
	}
}

// Run executes all stages against ws. Every returned error is a
// *faq.Failure. report may be nil.
func (p *Pipeline) Run(ctx context.Context, req faq.Request, ws *fsx.Workspace, report Reporter) (*faq.Result, error) {
	if report == nil {
		report = func(context.Context, int, string) {}
	}
	log := logx.WithContext(ctx)

	log.Info("[1/3] Saving rendered HTML")
	pages, err := p.capture.Run(ctx, req, ws)
	if err != nil {
		return nil, err
	}
	report(ctx, ProgressCaptured, MessageExtracting)
	if err := p.pause(ctx, faq.StageExtract); err != nil {
		return nil, err
	}

	log.Info("[2/3] Extracting structured data")
	record, err := asyncx.Retry(ctx, p.RetryPolicy(ctx), func(ctx context.Context) (json.RawMessage, error) {
		return p.extract.Run(ctx, req, ws, pages)
	})
	if err != nil {
		return nil, err
	}
	report(ctx, ProgressExtracted, MessageSynthesizing)
	if err := p.pause(ctx, faq.StageSynthesize); err != nil {
		return nil, err
	}

	log.Info("[3/3] Generating FAQ")
	doc, err := p.synth.Run(ctx, req, ws, record)
	if err != nil {
		return nil, err
	}

	result := faq.NewResult(req, doc.Markdown)
	return &result, nil
}

func (p *Pipeline) pause(ctx context.Context, next faq.Stage) error {
	if err := p.opts.Sleep(ctx, p.opts.StageDelay); err != nil {
		return faq.Fail(next, faq.KindInternalFault, "interrupted before stage start", err)
	}
	return nil
}
