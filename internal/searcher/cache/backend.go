package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	pkgredis "github.com/Adithya-Monish-Kumar-K/search-server/pkg/redis"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/resilience"
)

// DefaultMemorySize is the entry limit of a memory backend built with a
// non-positive size.
const DefaultMemorySize = 1024

// Backend stores encoded results under opaque keys.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Purge drops every entry written by this cache and reports how many
	// were removed.
	Purge(ctx context.Context) (int64, error)
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryBackend keeps entries in a process-local LRU.
type MemoryBackend struct {
	cache *lru.Cache[string, memoryEntry]
	now   func() time.Time
}

func NewMemoryBackend(size int) *MemoryBackend {
	if size <= 0 {
		size = DefaultMemorySize
	}
	c, _ := lru.New[string, memoryEntry](size)
	return &MemoryBackend{cache: c, now: time.Now}
}

func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	entry, ok := b.cache.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !entry.expires.IsZero() && !b.now().Before(entry.expires) {
		b.cache.Remove(key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value; a zero ttl never expires.
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expires = b.now().Add(ttl)
	}
	b.cache.Add(key, entry)
	return nil
}

func (b *MemoryBackend) Purge(context.Context) (int64, error) {
	n := b.cache.Len()
	b.cache.Purge()
	return int64(n), nil
}

func (b *MemoryBackend) Len() int {
	return b.cache.Len()
}

// RedisBackend shares entries between server processes through Redis.
// Calls go through a circuit breaker so an unreachable Redis fails fast
// and searches fall back to computing results.
type RedisBackend struct {
	client  *pkgredis.Client
	breaker *resilience.CircuitBreaker
}

func NewRedisBackend(client *pkgredis.Client, breaker *resilience.CircuitBreaker) *RedisBackend {
	if breaker == nil {
		breaker = resilience.NewCircuitBreaker("redis-cache", resilience.CircuitBreakerConfig{})
	}
	return &RedisBackend{client: client, breaker: breaker}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (value []byte, found bool, err error) {
	err = b.breaker.Execute(func() error {
		var getErr error
		value, found, getErr = b.client.Get(ctx, key)
		return getErr
	})
	return value, found, err
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.breaker.Execute(func() error {
		return b.client.Set(ctx, key, value, ttl)
	})
}

func (b *RedisBackend) Purge(ctx context.Context) (int64, error) {
	var deleted int64
	err := b.breaker.Execute(func() error {
		var purgeErr error
		deleted, purgeErr = b.client.FlushByPattern(ctx, keyPrefix+"*")
		return purgeErr
	})
	return deleted, err
}
