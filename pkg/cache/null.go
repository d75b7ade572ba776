package cache

import (
	"context"
	"time"
)

// NullCache stores nothing: every Get misses and every Set is dropped. The
// pipeline uses it when caching is disabled.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a NullCache as a Cache.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(ctx context.Context, _ string) ([]byte, bool, error) {
	return nil, false, ctx.Err()
}

func (NullCache) Set(ctx context.Context, _ string, _ []byte, _ time.Duration) error {
	return ctx.Err()
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }
