package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// CacheTTL bounds how stale a memoized report may be. Stale-within-TTL
	// reads are accepted; the cache is a latency optimization only.
	CacheTTL = 60 * time.Second

	memoryCacheCap = 200
)

// Cache memoizes computed reports per (owner, period) key.
type Cache interface {
	Get(userID uint, period string) (*Report, bool)
	Set(userID uint, period string, report *Report)
}

func cacheKey(userID uint, period string) string {
	return fmt.Sprintf("analytics:%d:%s", userID, period)
}

type memoryEntry struct {
	report   *Report
	storedAt time.Time
}

// MemoryCache is a process-local report cache: 60s TTL, capped at 200
// entries, evicted in insertion order when full.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	cap     int
	entries map[string]memoryEntry
	order   []string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		ttl:     CacheTTL,
		cap:     memoryCacheCap,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Get(userID uint, period string) (*Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(userID, period)
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Since(entry.storedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.report, true
}

func (c *MemoryCache) Set(userID uint, period string, report *Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(userID, period)
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.cap {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = memoryEntry{report: report, storedAt: time.Now()}
}

// RedisCache stores JSON-encoded reports with the same TTL so horizontally
// scaled instances share one memoized result.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: CacheTTL}
}

func (c *RedisCache) Get(userID uint, period string) (*Report, bool) {
	val, err := c.client.Get(context.Background(), cacheKey(userID, period)).Result()
	if err != nil {
		return nil, false
	}
	var report Report
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, false
	}
	return &report, true
}

func (c *RedisCache) Set(userID uint, period string, report *Report) {
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	c.client.Set(context.Background(), cacheKey(userID, period), payload, c.ttl)
}
