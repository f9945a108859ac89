package jobxredis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements jobx.Store with one string key per job. Expiry is
// delegated to Redis: every Put resets the key TTL.
type RedisStore struct {
	rdb  redis.UniversalClient
	opts jobx.StoreOptions
}

var _ jobx.Store = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed job store.
func NewRedisStore(rdb redis.UniversalClient, opts ...jobx.StoreOption) *RedisStore {
	return &RedisStore{rdb: rdb, opts: jobx.ApplyStoreOptions(opts...)}
}

// Put overwrites the record and its expiry.
func (s *RedisStore) Put(ctx context.Context, job *jobx.Job) error {
	data, err := json.Marshal(job)
	if err != nil {
		return redisErrors.NewWithCause(ErrMarshal, err).WithDetail("job_id", job.ID)
	}

	if err := s.rdb.Set(ctx, s.opts.Key(job.ID), data, s.opts.TTL).Err(); err != nil {
		return jobx.StoreError(redisErrors.NewWithCause(ErrPut, err), "put", job.ID)
	}
	return nil
}

// Get reads a record. Missing and expired keys are both redis.Nil.
func (s *RedisStore) Get(ctx context.Context, id string) (*jobx.Job, error) {
	data, err := s.rdb.Get(ctx, s.opts.Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, jobx.NotFound(id)
		}
		return nil, jobx.StoreError(redisErrors.NewWithCause(ErrGet, err), "get", id)
	}

	var job jobx.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, redisErrors.NewWithCause(ErrUnmarshal, err).WithDetail("job_id", id)
	}
	return &job, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.opts.Key(id)).Err(); err != nil {
		return jobx.StoreError(redisErrors.NewWithCause(ErrDelete, err), "delete", id)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
