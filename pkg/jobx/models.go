package jobx

import (
	"encoding/json"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/ptrx"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

func (s Status) String() string { return string(s) }

// Job is the persisted state of one asynchronous unit of work. Data is
// set only when completed, Error only when failed.
type Job struct {
	ID        string          `json:"job_id"`
	Status    Status          `json:"status"`
	Message   string          `json:"message"`
	Progress  int             `json:"progress"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Data      json.RawMessage `json:"data"`
	Error     *string         `json:"error"`
}

// Clone returns a deep copy so callers can mutate without touching
// a stored instance.
func (j *Job) Clone() *Job {
	if j == nil {
		return nil
	}
	c := *j
	if j.Data != nil {
		c.Data = append(json.RawMessage(nil), j.Data...)
	}
	if j.Error != nil {
		c.Error = ptrx.String(*j.Error)
	}
	return &c
}

// DecodeData unmarshals the completed payload into v.
func (j *Job) DecodeData(v any) error {
	if len(j.Data) == 0 {
		return jobxErrors.NewWithMessage(ErrInvalidTransition, "job has no data").
			WithDetail("job_id", j.ID).
			WithDetail("status", j.Status)
	}
	return json.Unmarshal(j.Data, v)
}
