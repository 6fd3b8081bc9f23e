package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheEntry is a cached settings value and the time it was loaded.
type CacheEntry struct {
	Value     SiteSettings `json:"value"`
	FetchedAt time.Time    `json:"fetchedAt"`
}

// IsStale reports whether the entry is older than ttl at now. A zero ttl
// makes every entry stale.
func (e CacheEntry) IsStale(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) >= ttl
}

// SettingsCache stores a single settings entry. Get returns nil without
// error when nothing is cached. Entries never expire in the cache itself so
// a stale value stays available as a fallback.
type SettingsCache interface {
	Get(ctx context.Context) (*CacheEntry, error)
	Set(ctx context.Context, entry CacheEntry) error
}

type MemorySettingsCache struct {
	mu    sync.RWMutex
	entry *CacheEntry
}

func NewMemorySettingsCache() *MemorySettingsCache {
	return &MemorySettingsCache{}
}

func (c *MemorySettingsCache) Get(_ context.Context) (*CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.entry == nil {
		return nil, nil
	}
	e := *c.entry
	return &e, nil
}

func (c *MemorySettingsCache) Set(_ context.Context, entry CacheEntry) error {
	c.mu.Lock()
	c.entry = &entry
	c.mu.Unlock()
	return nil
}

const siteSettingsCacheKey = "site:settings"

// RedisSettingsCache shares the entry between instances as JSON.
type RedisSettingsCache struct {
	Client *redis.Client
	Key    string
}

func NewRedisSettingsCache(rdb *redis.Client) *RedisSettingsCache {
	return &RedisSettingsCache{Client: rdb, Key: siteSettingsCacheKey}
}

func (c *RedisSettingsCache) Get(ctx context.Context) (*CacheEntry, error) {
	raw, err := c.Client.Get(ctx, c.Key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *RedisSettingsCache) Set(ctx context.Context, entry CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.Key, raw, 0).Err()
}
