package jobx

import (
	"context"
	"time"
)

// DefaultTTL is how long a record survives after its most recent write.
const DefaultTTL = 24 * time.Hour

// DefaultKeyPrefix namespaces job records in shared key/value backends.
const DefaultKeyPrefix = "faq_job:"

// Store persists job records with a per-entry expiry of now+TTL set on
// every Put. Get returns an error satisfying IsNotFound for ids that were
// never written or have expired.
type Store interface {
	Put(ctx context.Context, job *Job) error
	Get(ctx context.Context, id string) (*Job, error)
	Delete(ctx context.Context, id string) error
}

// Purger is implemented by stores that need expired entries removed
// proactively. Stores with native expiry do not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StoreOptions are shared by every Store implementation.
type StoreOptions struct {
	TTL       time.Duration
	KeyPrefix string
	Now       func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*StoreOptions)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) StoreOption {
	return func(o *StoreOptions) {
		if ttl > 0 {
			o.TTL = ttl
		}
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(o *StoreOptions) {
		o.KeyPrefix = prefix
	}
}

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) StoreOption {
	return func(o *StoreOptions) {
		if now != nil {
			o.Now = now
		}
	}
}

// ApplyStoreOptions resolves opts on top of the defaults.
func ApplyStoreOptions(opts ...StoreOption) StoreOptions {
	o := StoreOptions{
		TTL:       DefaultTTL,
		KeyPrefix: DefaultKeyPrefix,
		Now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Key returns the namespaced key for id.
func (o StoreOptions) Key(id string) string {
	return o.KeyPrefix + id
}
