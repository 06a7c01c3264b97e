// Package cache implements rulesbot.MetadataCache as an in-memory,
// process-lifetime store with per-key single-flight computation.
package cache

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/rulesbot"
	"golang.org/x/sync/singleflight"
)

// DefaultShards is the number of shards used when none is configured.
const DefaultShards = 16

// Ensure Cache implements rulesbot.MetadataCache at compile time.
var _ rulesbot.MetadataCache = (*Cache)(nil)

// Cache stores reference metadata without expiry or eviction. Entries are
// spread over shards so concurrent batches rarely contend on one lock.
type Cache struct {
	shards []*shard
	group  singleflight.Group
}

type shard struct {
	mu      sync.RWMutex
	entries map[string]rulesbot.Metadata
}

// Option configures a Cache.
type Option func(*Cache)

// WithShards sets the number of shards. Values below 1 are ignored.
func WithShards(n int) Option {
	return func(c *Cache) {
		if n < 1 {
			return
		}
		c.shards = newShards(n)
	}
}

// New creates an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{shards: newShards(DefaultShards)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newShards(n int) []*shard {
	shards := make([]*shard, n)
	for i := range shards {
		shards[i] = &shard{entries: make(map[string]rulesbot.Metadata)}
	}
	return shards
}

// GetOrCompute returns the metadata cached under key or computes it.
// Concurrent callers for the same key wait on a single compute call. The
// computation is detached from ctx: a caller that gives up receives
// ctx.Err(), while the computation finishes and fills the cache for later
// callers. Errors are returned to every waiting caller and are not cached.
func (c *Cache) GetOrCompute(ctx context.Context, key rulesbot.CacheKey, compute rulesbot.ComputeFunc) (rulesbot.Metadata, error) {
	k := keyString(key)
	s := c.shardFor(k)

	if md, ok := s.get(k); ok {
		return md, nil
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(k, func() (any, error) {
		// Another flight may have finished between the lookup and here.
		if md, ok := s.get(k); ok {
			return md, nil
		}
		md, err := compute(detached)
		if err != nil {
			return rulesbot.Metadata{}, err
		}
		s.set(k, md)
		return md, nil
	})

	select {
	case <-ctx.Done():
		return rulesbot.Metadata{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return rulesbot.Metadata{}, res.Err
		}
		return res.Val.(rulesbot.Metadata), nil
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.entries)
		s.mu.RUnlock()
	}
	return n
}

func (c *Cache) shardFor(k string) *shard {
	return c.shards[xxhash.Sum64String(k)%uint64(len(c.shards))]
}

func (s *shard) get(k string) (rulesbot.Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	md, ok := s.entries[k]
	return md, ok
}

func (s *shard) set(k string, md rulesbot.Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[k] = md
}

// keyString flattens key for the shard maps and the single-flight group.
func keyString(key rulesbot.CacheKey) string {
	if key.IsCommit {
		return "1 " + key.URL
	}
	return "0 " + key.URL
}
