package redis

import (
	"context"
	"fmt"
	"time"
)

// Cache stores JSON values under CacheName::key with the TTL configured for CacheName
type Cache struct {
	client    *Client
	cacheName string
	ttl       time.Duration
}

// NewCache creates a cache namespace on top of client
func NewCache(client *Client, cacheName string) *Cache {
	return &Cache{
		client:    client,
		cacheName: cacheName,
		ttl:       client.config.TTLFor(cacheName),
	}
}

// BuildCacheKey constructs the full cache key using the CacheName::cacheKey format
func BuildCacheKey(cacheName, key string) string {
	if cacheName == "" {
		return key
	}
	return cacheName + "::" + key
}

// Get loads the value cached under key into dest and reports whether it was present
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	return c.client.GetJSON(ctx, BuildCacheKey(c.cacheName, key), dest)
}

// Set stores value under key
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if err := c.client.SetJSON(ctx, BuildCacheKey(c.cacheName, key), value, c.ttl); err != nil {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

// Delete evicts key
func (c *Cache) Delete(ctx context.Context, key string) error {
	return c.client.Delete(ctx, BuildCacheKey(c.cacheName, key))
}
