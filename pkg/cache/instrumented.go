package cache

import (
	"context"
	"time"

	"github.com/matzehuels/schreier/pkg/observability"
)

// instrumented reports hits, misses and writes through the observability
// hook registry without changing behavior.
type instrumented struct {
	inner Cache
}

// NewInstrumented wraps a cache with observability reporting. Consumers that
// want hit rates install hooks via the observability package; the default
// hooks are no-ops.
func NewInstrumented(inner Cache) Cache {
	return &instrumented{inner: inner}
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, found, err := c.inner.Get(ctx, key)
	if err == nil {
		if found {
			observability.Cache().OnCacheHit(ctx, key)
		} else {
			observability.Cache().OnCacheMiss(ctx, key)
		}
	}
	return data, found, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return err
}

func (c *instrumented) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, key)
}

func (c *instrumented) Close() error {
	return c.inner.Close()
}

// Ensure instrumented implements Cache.
var _ Cache = (*instrumented)(nil)
