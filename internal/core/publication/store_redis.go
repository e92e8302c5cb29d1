// Copyright (c) 2026 Libretto. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package publication

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/libretto/internal/platform/constants"
)

// RedisManifestCache implements [ManifestCache] using Redis.
//
// The cached value is the canonical serialized manifest, exactly as the
// manifest endpoint serves it, so cache hits skip both the database and the
// re-encode.
type RedisManifestCache struct {
	client *redis.Client
}

// NewRedisManifestCache creates a new Redis-backed manifest cache.
func NewRedisManifestCache(client *redis.Client) *RedisManifestCache {
	return &RedisManifestCache{client: client}
}

/*
Get retrieves a cached manifest document by publication id.

Description: A cache miss is not an error; it returns (nil, nil) so the
caller falls through to the repository.

Parameters:
  - context: context.Context
  - id: string (Publication UUID)

Returns:
  - []byte: Serialized manifest, or nil on a miss
  - error: Connectivity errors
*/
func (cache *RedisManifestCache) Get(context context.Context, id string) ([]byte, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixManifest + id

	manifest, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_manifest_get_failed: %w", err)
	}

	return manifest, nil
}

/*
Set stores a serialized manifest with a bounded TTL.

Parameters:
  - context: context.Context
  - id: string (Publication UUID)
  - manifest: []byte (Canonical serialized manifest)
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (cache *RedisManifestCache) Set(context context.Context, id string, manifest []byte, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixManifest + id

	if err := cache.client.Set(context, key, manifest, ttl).Err(); err != nil {
		return fmt.Errorf("redis_manifest_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate drops the cached manifest after a write or delete.

Parameters:
  - context: context.Context
  - id: string (Publication UUID)

Returns:
  - error: Deletion failures
*/
func (cache *RedisManifestCache) Invalidate(context context.Context, id string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixManifest + id

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_manifest_invalidate_failed: %w", err)
	}

	return nil
}
