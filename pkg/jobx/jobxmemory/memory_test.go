package jobxmemory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_LazyExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := jobxmemory.NewMemoryStore(jobx.WithClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, jobx.NewJob("a", clock.Now())))

	clock.Add(23 * time.Hour)
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	clock.Add(time.Hour)
	_, err = store.Get(ctx, "a")
	assert.True(t, jobx.IsNotFound(err))
	assert.Zero(t, store.Len())
}

func TestMemoryStore_TTLMeasuredFromLastWrite(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := jobxmemory.NewMemoryStore(jobx.WithClock(clock.Now))
	ctx := context.Background()

	job := jobx.NewJob("a", clock.Now())
	require.NoError(t, store.Put(ctx, job))

	clock.Add(20 * time.Hour)
	require.NoError(t, job.Start(5, "starting capture", clock.Now()))
	require.NoError(t, store.Put(ctx, job))

	clock.Add(20 * time.Hour)
	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, jobx.StatusRunning, got.Status)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	store := jobxmemory.NewMemoryStore()
	ctx := context.Background()

	job := jobx.NewJob("a", time.Now())
	require.NoError(t, store.Put(ctx, job))
	job.Message = "mutated after put"

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, jobx.MessageQueued, got.Message)

	got.Message = "mutated after get"
	again, _ := store.Get(ctx, "a")
	assert.Equal(t, jobx.MessageQueued, again.Message)
}

func TestMemoryStore_PurgeExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := jobxmemory.NewMemoryStore(jobx.WithClock(clock.Now), jobx.WithTTL(time.Hour))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, jobx.NewJob("old", clock.Now())))
	clock.Add(30 * time.Minute)
	require.NoError(t, store.Put(ctx, jobx.NewJob("new", clock.Now())))
	clock.Add(45 * time.Minute)

	n, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_ConcurrentReadsAndWrites(t *testing.T) {
	store := jobxmemory.NewMemoryStore()
	ctx := context.Background()
	job := jobx.NewJob("a", time.Now())
	require.NoError(t, job.Start(1, "go", time.Now()))
	require.NoError(t, store.Put(ctx, job))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 2; i <= 100; i++ {
			_ = job.Advance(i, "tick", time.Now())
			_ = store.Put(ctx, job)
		}
	}()
	go func() {
		defer wg.Done()
		last := 0
		for i := 0; i < 100; i++ {
			got, err := store.Get(ctx, "a")
			if err == nil {
				assert.GreaterOrEqual(t, got.Progress, last)
				last = got.Progress
			}
		}
	}()
	wg.Wait()
}
