package cachemanager

import (
	"context"
	"sync/atomic"
	"time"
)

// LoadFunc produces the value for input on a cache miss.
type LoadFunc[I, V any] func(ctx context.Context, input I) (V, error)

// Stats counts lookups served from the store and lookups that had to load.
type Stats struct {
	Hits   uint64
	Misses uint64
}

// ReadThroughCache fronts a CacheManager with a loader. A miss runs load and
// stores the result under key; a failed load is returned and nothing is
// stored, so the next lookup retries.
type ReadThroughCache[K ~string, V any, I any] struct {
	store  CacheManager[K, V]
	load   LoadFunc[I, V]
	bypass bool

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewReadThroughCache wraps store. With bypass set every lookup loads and
// the store is never written, which is how renders are forced fresh in tests
// and when caching is disabled.
func NewReadThroughCache[K ~string, V any, I any](store CacheManager[K, V], load LoadFunc[I, V], bypass bool) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{store: store, load: load, bypass: bypass}
}

// Get returns the cached value for key, loading it from input on a miss.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.fetch(ctx, key, input, ttl, func() (V, bool) {
		return r.store.Get(ctx, key)
	})
}

// GetWithRefresh is Get, but a hit also pushes the entry's expiry out by ttl.
// Renders still on screen then never age out between resizes.
func (r *ReadThroughCache[K, V, I]) GetWithRefresh(ctx context.Context, key K, input I, ttl time.Duration) (V, error) {
	return r.fetch(ctx, key, input, ttl, func() (V, bool) {
		return r.store.GetWithRefresh(ctx, key, ttl)
	})
}

// Forget drops keys so their next lookup loads again.
func (r *ReadThroughCache[K, V, I]) Forget(ctx context.Context, keys ...K) {
	r.store.Delete(ctx, keys...)
}

// Stats reports hit and miss counts since creation.
func (r *ReadThroughCache[K, V, I]) Stats() Stats {
	return Stats{Hits: r.hits.Load(), Misses: r.misses.Load()}
}

func (r *ReadThroughCache[K, V, I]) fetch(ctx context.Context, key K, input I, ttl time.Duration, lookup func() (V, bool)) (V, error) {
	if !r.bypass {
		if v, ok := lookup(); ok {
			r.hits.Add(1)
			return v, nil
		}
	}
	r.misses.Add(1)

	v, err := r.load(ctx, input)
	if err != nil || r.bypass {
		return v, err
	}
	r.store.Set(ctx, key, v, ttl)
	return v, nil
}
