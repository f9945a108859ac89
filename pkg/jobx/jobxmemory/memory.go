package jobxmemory

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/jobx"
)

type entry struct {
	job       *jobx.Job
	expiresAt time.Time
}

// MemoryStore keeps job records in process memory. Records do not survive
// a restart. Expired records are dropped lazily on Get and by PurgeExpired.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	opts    jobx.StoreOptions
}

var (
	_ jobx.Store  = (*MemoryStore)(nil)
	_ jobx.Purger = (*MemoryStore)(nil)
)

func NewMemoryStore(opts ...jobx.StoreOption) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		opts:    jobx.ApplyStoreOptions(opts...),
	}
}

func (s *MemoryStore) Put(_ context.Context, job *jobx.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[job.ID] = entry{
		job:       job.Clone(),
		expiresAt: s.opts.Now().Add(s.opts.TTL),
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*jobx.Job, error) {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return nil, jobx.NotFound(id)
	}
	if !s.opts.Now().Before(e.expiresAt) {
		s.mu.Lock()
		if cur, still := s.entries[id]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, id)
		}
		s.mu.Unlock()
		return nil, jobx.NotFound(id)
	}
	return e.job.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// PurgeExpired removes every expired record and reports how many went.
func (s *MemoryStore) PurgeExpired(_ context.Context) (int64, error) {
	now := s.opts.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for id, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, id)
			n++
		}
	}
	return n, nil
}

// Len is the number of records held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
