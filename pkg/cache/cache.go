// Package cache provides artifact caching for the render server.
//
// Rendering is pure, so a finished artifact can be cached indefinitely
// under a hash of its request. Backends:
//
//   - [FileCache]: JSON entries under a hashed directory layout, for
//     single-instance deployments
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is the interface for cache backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache is a no-op cache that never stores anything.
// Useful for testing or when caching should be disabled.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close does nothing.
func (c *NullCache) Close() error {
	return nil
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
