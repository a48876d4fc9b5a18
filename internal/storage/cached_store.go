package storage

import (
	"context"
	"mindful/internal/providers"
	"mindful/internal/storage/interfaces"
)

const cacheKeyPrefix = "kv:"

// CachedStore is a write-through, read-through cache in front of a Store.
// It assumes it is the only writer of the underlying store.
type CachedStore struct {
	inner interfaces.Store
	cache providers.CacheProviderInterface
}

func NewCachedStore(inner interfaces.Store, cache providers.CacheProviderInterface) *CachedStore {
	return &CachedStore{inner: inner, cache: cache}
}

func (c *CachedStore) Get(ctx context.Context, keys ...string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	missing := make([]string, 0, len(keys))
	for _, k := range keys {
		if v, ok := c.cache.Get(cacheKeyPrefix + k); ok {
			out[k] = v
			continue
		}
		missing = append(missing, k)
	}
	if len(missing) == 0 {
		return out, nil
	}

	fetched, err := c.inner.Get(ctx, missing...)
	if err != nil {
		return nil, err
	}
	for k, v := range fetched {
		c.cache.Set(cacheKeyPrefix+k, v)
		out[k] = v
	}
	return out, nil
}

func (c *CachedStore) Set(ctx context.Context, items map[string][]byte) error {
	if err := c.inner.Set(ctx, items); err != nil {
		// The inner write may have partially applied.
		for k := range items {
			c.cache.Del(cacheKeyPrefix + k)
		}
		return err
	}
	for k, v := range items {
		c.cache.Set(cacheKeyPrefix+k, v)
	}
	return nil
}

func (c *CachedStore) Close() error {
	return c.inner.Close()
}

// Restore and Persist forward to the inner store when it buffers writes.
func (c *CachedStore) Restore() error {
	if p, ok := c.inner.(interfaces.Persister); ok {
		return p.Restore()
	}
	return nil
}

func (c *CachedStore) Persist() error {
	if p, ok := c.inner.(interfaces.Persister); ok {
		return p.Persist()
	}
	return nil
}
