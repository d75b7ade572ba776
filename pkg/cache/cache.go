// Package cache stores rendered artifacts keyed by scene content.
//
// A scene is fingerprinted with [Hash] over its JSON document; [ArtifactKey]
// combines that fingerprint with the output format and the render options, so
// re-running the pipeline on an unchanged graph skips template and Graphviz
// work entirely.
//
// Two implementations are provided: [FileCache] for CLI use and [NullCache]
// when caching is disabled.
package cache

import (
	"context"
	"errors"
	"time"
)

// TTLArtifact is how long rendered artifacts stay valid. Artifacts are keyed
// by content, so the TTL only bounds disk usage.
const TTLArtifact = 7 * 24 * time.Hour

// ErrCacheMiss is returned by helpers that require a hit.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte store with optional expiry.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use by distinct keys.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// MustGet is Get with a miss turned into [ErrCacheMiss].
func MustGet(ctx context.Context, c Cache, key string) ([]byte, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCacheMiss
	}
	return data, nil
}
