// Package cache memoizes status-filtered search results. Keys are derived
// from the normalized query, so word order and repeated words do not
// fragment the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Adithya-Monish-Kumar-K/search-server/internal/document"
	"github.com/Adithya-Monish-Kumar-K/search-server/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/metrics"
)

const keyPrefix = "search:"

type QueryCache struct {
	backend Backend
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *slog.Logger
	hits    atomic.Int64
	misses  atomic.Int64

	// generation advances on every Invalidate. Computed results are only
	// stored if no invalidation happened while they were computed. fillMu
	// keeps such a store from landing after the purge it raced with.
	generation atomic.Uint64
	fillMu     sync.RWMutex
}

type Option func(*QueryCache)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *QueryCache) { c.metrics = m }
}

func New(backend Backend, ttl time.Duration, opts ...Option) *QueryCache {
	c := &QueryCache{
		backend: backend,
		ttl:     ttl,
		logger:  slog.Default().With("component", "query-cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached result for query and status. Backend failures
// count as misses.
func (c *QueryCache) Get(ctx context.Context, query string, status document.Status) ([]document.Document, bool) {
	key := buildKey(query, status)
	data, found, err := c.backend.Get(ctx, key)
	if err != nil {
		c.logger.Error("cache get failed", "key", key, "error", err)
		c.miss()
		return nil, false
	}
	if !found {
		c.miss()
		return nil, false
	}
	var docs []document.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		c.miss()
		return nil, false
	}
	c.hit()
	c.logger.Debug("cache hit", "query", query, "key", key)
	return docs, true
}

func (c *QueryCache) Set(ctx context.Context, query string, status document.Status, docs []document.Document) {
	key := buildKey(query, status)
	data, err := json.Marshal(docs)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}

// GetOrCompute returns the cached result or runs computeFn once for all
// concurrent callers asking for the same key. Errors are not cached.
func (c *QueryCache) GetOrCompute(
	ctx context.Context,
	query string,
	status document.Status,
	computeFn func() ([]document.Document, error),
) ([]document.Document, bool, error) {
	if docs, ok := c.Get(ctx, query, status); ok {
		return docs, true, nil
	}
	key := buildKey(query, status)
	val, err, _ := c.group.Do(key, func() (any, error) {
		gen := c.generation.Load()
		docs, err := computeFn()
		if err != nil {
			return nil, err
		}
		c.fill(ctx, query, status, docs, gen)
		return docs, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]document.Document), false, nil
}

func (c *QueryCache) fill(ctx context.Context, query string, status document.Status, docs []document.Document, gen uint64) {
	c.fillMu.RLock()
	defer c.fillMu.RUnlock()
	if c.generation.Load() != gen {
		c.logger.Debug("cache fill skipped, invalidated during compute", "query", query)
		return
	}
	c.Set(ctx, query, status, docs)
}

// Invalidate drops every cached result. Call it after the index changes,
// since IDF values shift with every added document. Results still being
// computed when it runs are not stored.
func (c *QueryCache) Invalidate(ctx context.Context) error {
	c.fillMu.Lock()
	defer c.fillMu.Unlock()
	c.generation.Add(1)
	deleted, err := c.backend.Purge(ctx)
	if err != nil {
		return fmt.Errorf("invalidating cache: %w", err)
	}
	c.logger.Info("cache invalidate", "keys_deleted", deleted)
	return nil
}

func (c *QueryCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *QueryCache) hit() {
	c.hits.Add(1)
	if c.metrics != nil {
		c.metrics.CacheHitsTotal.Inc()
	}
}

func (c *QueryCache) miss() {
	c.misses.Add(1)
	if c.metrics != nil {
		c.metrics.CacheMissesTotal.Inc()
	}
}

func buildKey(query string, status document.Status) string {
	raw := fmt.Sprintf("%s:status=%d", parser.Normalize(query), int(status))
	hash := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%s%x", keyPrefix, hash[:16])
}
