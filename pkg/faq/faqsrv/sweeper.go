package faqsrv

import (
	"context"

	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"
)

const DefaultSweepSchedule = "@every 15m"

// Sweeper periodically purges expired job records from stores without
// native expiry.
type Sweeper struct {
	purger   jobx.Purger
	schedule string
	cron     *cron.Cron
	group    singleflight.Group
}

// NewSweeper returns nil when store expires entries on its own.
func NewSweeper(store jobx.Store, schedule string) *Sweeper {
	purger, ok := store.(jobx.Purger)
	if !ok {
		return nil
	}
	if schedule == "" {
		schedule = DefaultSweepSchedule
	}
	return &Sweeper{purger: purger, schedule: schedule, cron: cron.New()}
}

// Sweep runs one purge. Concurrent calls share a single run.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	v, err, _ := s.group.Do("sweep", func() (any, error) {
		return s.purger.PurgeExpired(ctx)
	})
	if err != nil {
		return 0, errx.Wrap(err, "failed to purge expired jobs", errx.TypeInternal)
	}
	n := v.(int64)
	if n > 0 {
		logx.WithContext(ctx).Infof("sweeper: purged %d expired jobs", n)
	}
	return n, nil
}

// Start schedules Sweep. Stop must be called to release the scheduler.
func (s *Sweeper) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.Sweep(ctx); err != nil {
			logx.WithError(err).Error("sweeper: purge failed")
		}
	}); err != nil {
		return errx.Wrap(err, "invalid sweep schedule", errx.TypeValidation).WithDetail("schedule", s.schedule)
	}
	s.cron.Start()
	logx.Infof("sweeper: scheduled with %q", s.schedule)
	return nil
}

// Stop halts the scheduler and waits for a running sweep.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
