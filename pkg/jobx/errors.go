package jobx

import (
	"net/http"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

var jobxErrors = errx.NewRegistry("JOBX")

var (
	ErrJobNotFound       = jobxErrors.Register("JOB_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Invalid job ID")
	ErrInvalidTransition = jobxErrors.Register("INVALID_TRANSITION", errx.TypeConflict, http.StatusConflict, "Job cannot move to the requested state")
	ErrJobActive         = jobxErrors.Register("JOB_ACTIVE", errx.TypeConflict, http.StatusConflict, "Job is still in progress")
	ErrEncodeData        = jobxErrors.Register("ENCODE_DATA", errx.TypeInternal, http.StatusInternalServerError, "Failed to encode job data")
	ErrStoreUnavailable  = jobxErrors.Register("STORE_UNAVAILABLE", errx.TypeUnavailable, http.StatusServiceUnavailable, "Job store unavailable")
	ErrRunnerClosed      = jobxErrors.Register("RUNNER_CLOSED", errx.TypeUnavailable, http.StatusServiceUnavailable, "Job runner is shutting down")
	ErrShutdownTimeout   = jobxErrors.Register("SHUTDOWN_TIMEOUT", errx.TypeInternal, http.StatusInternalServerError, "Graceful shutdown timed out")
)

// NotFound builds the error stores return for absent or expired ids.
func NotFound(id string) *errx.Error {
	return jobxErrors.New(ErrJobNotFound).WithDetail("job_id", id)
}

// IsNotFound reports whether err means the job does not exist.
func IsNotFound(err error) bool {
	return errx.HasCode(err, ErrJobNotFound)
}

// Active is returned when an operation needs a finished job.
func Active(job *Job) *errx.Error {
	return jobxErrors.New(ErrJobActive).
		WithDetail("job_id", job.ID).
		WithDetail("status", job.Status)
}

// StoreError wraps a backend failure.
func StoreError(err error, op, id string) *errx.Error {
	return jobxErrors.NewWithCause(ErrStoreUnavailable, err).
		WithDetail("op", op).
		WithDetail("job_id", id)
}
