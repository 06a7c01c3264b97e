package mock

import (
	"context"

	"github.com/fwojciec/rulesbot"
)

var _ rulesbot.MetadataCache = (*MetadataCache)(nil)

// MetadataCache is a mock implementation of rulesbot.MetadataCache.
type MetadataCache struct {
	GetOrComputeFn func(ctx context.Context, key rulesbot.CacheKey, compute rulesbot.ComputeFunc) (rulesbot.Metadata, error)
	LenFn          func() int
}

func (c *MetadataCache) GetOrCompute(ctx context.Context, key rulesbot.CacheKey, compute rulesbot.ComputeFunc) (rulesbot.Metadata, error) {
	return c.GetOrComputeFn(ctx, key, compute)
}

func (c *MetadataCache) Len() int {
	return c.LenFn()
}
