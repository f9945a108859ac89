package faqsrv

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/pipeline"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/kernel"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/google/uuid"
)

const (
	MessageStarting  = "Starting FAQ generation..."
	MessageCapturing = "Starting capture..."
	MessageCompleted = "FAQ generation completed successfully."
	MessageFailed    = "FAQ generation failed. Please check the URL and try again."

	ProgressStarted = 5
)

// Pipeline is the work executed for each job.
type Pipeline interface {
	Run(ctx context.Context, req faq.Request, ws *fsx.Workspace, report pipeline.Reporter) (*faq.Result, error)
}

type Options struct {
	// KeepArtifacts leaves jobs/<id> in the file system after the run.
	KeepArtifacts bool
	Now           func() time.Time
	NewID         func() string
}

type Option func(*Options)

func WithKeepArtifacts(keep bool) Option {
	return func(o *Options) { o.KeepArtifacts = keep }
}

func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(o *Options) {
		if fn != nil {
			o.NewID = fn
		}
	}
}

// Orchestrator accepts requests and runs each one as a detached job.
type Orchestrator struct {
	store    jobx.Store
	runner   *jobx.Runner
	pipeline Pipeline
	fs       fsx.FileSystem
	notifier faq.Notifier
	opts     Options
}

// NewOrchestrator wires the orchestrator. notifier may be nil.
func NewOrchestrator(store jobx.Store, runner *jobx.Runner, p Pipeline, fs fsx.FileSystem, notifier faq.Notifier, opts ...Option) *Orchestrator {
	o := Options{Now: time.Now, NewID: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}
	return &Orchestrator{
		store:    store,
		runner:   runner,
		pipeline: p,
		fs:       fs,
		notifier: notifier,
		opts:     o,
	}
}

// Submit stores a queued job for req and starts it without waiting.
// Invalid requests are rejected before an id is allocated.
func (o *Orchestrator) Submit(ctx context.Context, req faq.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	id := o.opts.NewID()
	job := jobx.NewJob(id, o.opts.Now())
	job.Message = MessageStarting

	if err := o.store.Put(ctx, job); err != nil {
		return "", err
	}

	if err := o.runner.Go(id, func(ctx context.Context) {
		o.execute(ctx, job.Clone(), req)
	}); err != nil {
		if delErr := o.store.Delete(ctx, id); delErr != nil {
			logx.ForJob(kernel.NewJobID(id)).WithError(delErr).Warn("orchestrator: could not remove unstarted job")
		}
		return "", err
	}

	logx.WithContext(ctx).WithFields(logx.Fields{
		"job_id":    id,
		"url":       req.URL,
		"platform":  req.PlatformInput,
		"language":  req.Language,
		"faq_count": req.FAQCount,
	}).Info("orchestrator: job submitted")
	return id, nil
}

// execute owns job for the rest of its life. The deferred finish is the
// single place a terminal state is written.
func (o *Orchestrator) execute(ctx context.Context, job *jobx.Job, req faq.Request) {
	jobID := kernel.NewJobID(job.ID)
	ctx = kernel.WithJobID(ctx, jobID)
	ws := fsx.NewWorkspace(o.fs, path.Join("jobs", job.ID))

	var (
		result *faq.Result
		runErr error
	)
	defer func() {
		if r := recover(); r != nil {
			runErr = &asyncx.PanicError{Value: r}
		}
		o.finish(ctx, job, req, ws, result, runErr)
	}()

	if err := job.Start(ProgressStarted, MessageCapturing, o.opts.Now()); err != nil {
		runErr = err
		return
	}
	o.save(ctx, job)

	report := func(ctx context.Context, progress int, message string) {
		if err := job.Advance(progress, message, o.opts.Now()); err != nil {
			logx.WithContext(ctx).WithError(err).Warn("orchestrator: progress not recorded")
			return
		}
		o.save(ctx, job)
	}

	result, runErr = o.pipeline.Run(ctx, req, ws, report)
	if runErr == nil && result == nil {
		runErr = errors.New("pipeline returned no result")
	}
}

func (o *Orchestrator) finish(ctx context.Context, job *jobx.Job, req faq.Request, ws *fsx.Workspace, result *faq.Result, runErr error) {
	log := logx.WithContext(ctx)
	now := o.opts.Now()

	if runErr == nil {
		if err := job.Complete(result, MessageCompleted, now); err != nil {
			runErr = err
		}
	}
	if runErr != nil {
		if faq.KindOf(runErr) == faq.KindInternalFault {
			log.WithError(runErr).Error("orchestrator: internal fault during FAQ generation")
		} else {
			log.WithError(runErr).WithField("kind", faq.KindOf(runErr)).Warn("orchestrator: FAQ generation failed")
		}
		if err := job.Fail(faq.Diagnostic(runErr), MessageFailed, now); err != nil {
			log.WithError(err).Error("orchestrator: job already terminal")
		}
	} else {
		log.Info("orchestrator: FAQ generation completed")
	}
	o.save(ctx, job)

	if o.notifier != nil && req.NotifyEmail != "" {
		if err := o.notifier.NotifyJob(ctx, req.NotifyEmail, job.Clone()); err != nil {
			log.WithError(err).Warn("orchestrator: completion e-mail not sent")
		}
	}

	if !o.opts.KeepArtifacts {
		if err := ws.Cleanup(ctx); err != nil {
			log.WithError(err).Warn("orchestrator: artifact cleanup failed")
		}
	}
}

func (o *Orchestrator) save(ctx context.Context, job *jobx.Job) {
	if err := o.store.Put(ctx, job.Clone()); err != nil {
		logx.WithContext(ctx).WithError(err).
			WithFields(logx.Fields{"status": job.Status, "progress": job.Progress}).
			Error("orchestrator: could not persist job state")
	}
}

// Delete removes a finished job record. Queued and running jobs belong
// to their execution until its terminal write, so they are refused.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	job, err := o.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !job.Status.IsTerminal() {
		return jobx.Active(job)
	}
	if err := o.store.Delete(ctx, id); err != nil {
		return errx.Wrap(err, "failed to delete job", errx.TypeInternal)
	}
	logx.WithContext(ctx).WithField("job_id", id).Info("orchestrator: job deleted")
	return nil
}
