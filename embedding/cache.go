package embedding

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/specs-nexus/nexus/knowledge"
)

// DefaultCacheCapacity bounds the query-embedding cache when no capacity is
// configured.
const DefaultCacheCapacity = 128

// Cached wraps an embedder with a bounded LRU cache keyed by the exact query
// string. The cache is internally synchronized; concurrent misses for the
// same query may both compute, the second write simply replaces the first.
type Cached struct {
	next  knowledge.Embedder
	cache *lru.Cache[string, []float32]
}

func NewCached(next knowledge.Embedder, capacity int) (*Cached, error) {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}

	cache, err := lru.New[string, []float32](capacity)
	if err != nil {
		return nil, err
	}

	return &Cached{
		next:  next,
		cache: cache,
	}, nil
}

func (e *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	vec, err := e.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Add(text, vec)

	return vec, nil
}

func (e *Cached) Dimension() int {
	return e.next.Dimension()
}

func (e *Cached) ModelInfo() string {
	return e.next.ModelInfo()
}
