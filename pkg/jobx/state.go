package jobx

import (
	"encoding/json"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/ptrx"
)

// Messages written on transitions that do not carry their own.
const (
	MessageQueued = "Job queued."
)

// NewJob returns a queued job created at now.
func NewJob(id string, now time.Time) *Job {
	return &Job{
		ID:        id,
		Status:    StatusQueued,
		Message:   MessageQueued,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (j *Job) transitionError(to Status) *errx.Error {
	return jobxErrors.New(ErrInvalidTransition).
		WithDetail("job_id", j.ID).
		WithDetail("from", j.Status).
		WithDetail("to", to)
}

// advance moves progress forward only; it never regresses.
func (j *Job) advance(progress int, message string, now time.Time) {
	if progress > 100 {
		progress = 100
	}
	if progress > j.Progress {
		j.Progress = progress
	}
	j.Message = message
	j.UpdatedAt = now
}

// Start moves a queued job to running.
func (j *Job) Start(progress int, message string, now time.Time) error {
	if j.Status != StatusQueued {
		return j.transitionError(StatusRunning)
	}
	j.Status = StatusRunning
	j.advance(progress, message, now)
	return nil
}

// Advance records progress on a running job.
func (j *Job) Advance(progress int, message string, now time.Time) error {
	if j.Status != StatusRunning {
		return j.transitionError(StatusRunning)
	}
	j.advance(progress, message, now)
	return nil
}

// Complete stores data and marks the job completed.
func (j *Job) Complete(data any, message string, now time.Time) error {
	if j.Status.IsTerminal() {
		return j.transitionError(StatusCompleted)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return jobxErrors.NewWithCause(ErrEncodeData, err).WithDetail("job_id", j.ID)
	}
	j.Status = StatusCompleted
	j.Data = raw
	j.Error = nil
	j.advance(100, message, now)
	return nil
}

// Fail marks the job failed with a short diagnostic. Progress goes to
// 100 because the work has finished.
func (j *Job) Fail(detail, message string, now time.Time) error {
	if j.Status.IsTerminal() {
		return j.transitionError(StatusFailed)
	}
	if detail == "" {
		detail = "job failed"
	}
	j.Status = StatusFailed
	j.Data = nil
	j.Error = ptrx.String(detail)
	j.advance(100, message, now)
	return nil
}
