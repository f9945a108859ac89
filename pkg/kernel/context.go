package kernel

import "context"

// ============================================================================
// Context Keys
// ============================================================================

type ContextKey string

const (
	// RequestIDKey holds the X-Request-ID of the inbound HTTP request
	RequestIDKey ContextKey = "request_id"

	// JobIDKey holds the JobID a pipeline execution is working on
	JobIDKey ContextKey = "job_id"

	// SubjectKey holds the authenticated subject of an admin request
	SubjectKey ContextKey = "subject"
)

// WithJobID returns a child context carrying id
func WithJobID(ctx context.Context, id JobID) context.Context {
	return context.WithValue(ctx, JobIDKey, id)
}

// JobIDFrom extracts the JobID stored by WithJobID
func JobIDFrom(ctx context.Context) (JobID, bool) {
	id, ok := ctx.Value(JobIDKey).(JobID)
	return id, ok && !id.IsEmpty()
}

// WithRequestID returns a child context carrying the request id
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
