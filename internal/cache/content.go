// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// content.go provides a Valkey-backed cache for serialized public API
// responses. Published content changes rarely, so list and detail
// responses are cached as JSON and invalidated per entity kind whenever
// an admin write touches that kind.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// contentKeyPrefix is the Valkey key prefix for cached responses.
	contentKeyPrefix = "content:"

	// DefaultContentTTL is how long a cached response stays fresh.
	DefaultContentTTL = 5 * time.Minute
)

// ContentCache manages serialized API responses in Valkey.
type ContentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContentCache creates a content cache backed by the given Valkey client.
func NewContentCache(client *redis.Client, ttl time.Duration) *ContentCache {
	if ttl == 0 {
		ttl = DefaultContentTTL
	}
	return &ContentCache{client: client, ttl: ttl}
}

// Key builds a cache key from an entity kind and a request-specific part,
// e.g. Key("blog", "list:published") or Key("courses", "slug:go-basics").
func Key(kind, part string) string {
	return fmt.Sprintf("%s:%s", kind, part)
}

// Get retrieves a cached response. Returns false on miss.
func (cc *ContentCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, contentKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("content cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized response with the configured TTL.
func (cc *ContentCache) Set(ctx context.Context, key string, payload []byte) {
	if err := cc.client.Set(ctx, contentKeyPrefix+key, payload, cc.ttl).Err(); err != nil {
		slog.Warn("content cache set error", "key", key, "error", err)
	}
}

// InvalidateKind removes every cached response for an entity kind by
// scanning for its prefix. Called after any admin write to that kind.
func (cc *ContentCache) InvalidateKind(ctx context.Context, kind string) {
	prefix := contentKeyPrefix + kind + ":"
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("content cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("content cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("content cache invalidated", "kind", kind, "deleted", deleted)
	}
}
