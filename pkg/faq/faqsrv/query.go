package faqsrv

import (
	"context"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
)

// QueryService reads job state. It never writes.
type QueryService struct {
	store jobx.Store
}

func NewQueryService(store jobx.Store) *QueryService {
	return &QueryService{store: store}
}

// GetStatus returns the stored job. Unknown and expired ids give an
// error satisfying jobx.IsNotFound; a running job is returned as is.
func (s *QueryService) GetStatus(ctx context.Context, id string) (*jobx.Job, error) {
	if id == "" {
		return nil, jobx.NotFound(id)
	}
	return s.store.Get(ctx, id)
}

// GetResult returns the decoded payload of a completed job. ok is false
// while the job is not completed.
func (s *QueryService) GetResult(ctx context.Context, id string) (job *jobx.Job, result *faq.Result, ok bool, err error) {
	job, err = s.GetStatus(ctx, id)
	if err != nil {
		return nil, nil, false, err
	}
	if job.Status != jobx.StatusCompleted {
		return job, nil, false, nil
	}
	var r faq.Result
	if err := job.DecodeData(&r); err != nil {
		return job, nil, false, err
	}
	return job, &r, true, nil
}

// Ping checks the store when it is backed by a remote service.
func (s *QueryService) Ping(ctx context.Context) error {
	if p, ok := s.store.(jobx.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
