package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ytdash:"

// Tiered keeps raw bytes in an in-memory L1 and, when a redis client is
// given, in redis as L2. L1 is lost on restart, L2 is not.
type Tiered struct {
	mu         sync.Mutex
	l1         map[string]*entry
	rdb        *redis.Client
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	logger     *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// NewTiered creates the cache. rdb may be nil to disable L2.
func NewTiered(rdb *redis.Client, ttl time.Duration, maxEntries int, logger *slog.Logger) *Tiered {
	return &Tiered{
		l1:         map[string]*entry{},
		rdb:        rdb,
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		logger:     logger,
	}
}

// Connect parses redisURL and pings the server. An empty URL returns nil
// without error.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}

	return rdb, nil
}

// Key builds a deterministic key from parts.
func Key(parts ...string) string {
	joined := strings.Join(parts, "|")
	hash := sha256.Sum256([]byte(joined))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:12])
}

func (c *Tiered) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	if e, ok := c.l1[key]; ok {
		if c.now().Before(e.expiresAt) {
			c.mu.Unlock()
			c.hits.Add(1)
			c.logger.Debug("cache: L1 hit", slog.String("key", key))
			return e.data, true
		}
		delete(c.l1, key)
	}
	c.mu.Unlock()

	if c.rdb != nil {
		var get *redis.StringCmd
		var pttl *redis.DurationCmd
		_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			get = pipe.Get(ctx, key)
			pttl = pipe.PTTL(ctx, key)
			return nil
		})
		switch {
		case err == nil:
			data, _ := get.Bytes()
			c.hits.Add(1)
			c.logger.Debug("cache: L2 hit", slog.String("key", key))
			c.storeFor(key, data, pttl.Val())
			return data, true
		case err != redis.Nil:
			c.logger.Warn("cache: L2 get failed", slog.String("error", err.Error()))
		}
	}

	c.misses.Add(1)
	return nil, false
}

func (c *Tiered) Set(ctx context.Context, key string, data []byte) {
	c.store(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Warn("cache: L2 set failed", slog.String("error", err.Error()))
		}
	}
}

// Clear drops every entry from both tiers.
func (c *Tiered) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.l1 = map[string]*entry{}
	c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("could not scan cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("could not delete cache keys: %w", err)
	}

	return nil
}

func (c *Tiered) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Tiered) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.l1)
}

func (c *Tiered) store(key string, data []byte) {
	c.storeFor(key, data, c.ttl)
}

// storeFor keeps data in L1 for ttl, never longer than the configured ttl.
func (c *Tiered) storeFor(key string, data []byte, ttl time.Duration) {
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictIfNeeded()
	c.l1[key] = &entry{
		data:      data,
		expiresAt: c.now().Add(ttl),
	}
}

// evictIfNeeded drops expired entries first, then the oldest ones until
// there is room for one more. Callers hold mu.
func (c *Tiered) evictIfNeeded() {
	if c.maxEntries <= 0 || len(c.l1) < c.maxEntries {
		return
	}

	now := c.now()
	for k, e := range c.l1 {
		if now.After(e.expiresAt) {
			delete(c.l1, k)
		}
	}

	for len(c.l1) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.l1 {
			if oldestKey == "" || e.expiresAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.expiresAt
			}
		}
		delete(c.l1, oldestKey)
	}
}
