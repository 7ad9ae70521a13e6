package embedding

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingEmbedder struct {
	calls int
}

func (e *countingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	e.calls++
	return []float32{float32(len(text)), 0, 0}, nil
}

func (e *countingEmbedder) Dimension() int {
	return 3
}

func (e *countingEmbedder) ModelInfo() string {
	return "counting"
}

func TestCachedEmbedHitSkipsRecompute(t *testing.T) {
	assert := assert.New(t)

	next := &countingEmbedder{}
	cached, err := NewCached(next, 4)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	first, err := cached.Embed(ctx, "membership fee")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	second, err := cached.Embed(ctx, "membership fee")
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(first, second)
	assert.Equal(1, next.calls, "repeated query must be served from cache")
}

func TestCachedEmbedDistinctQueries(t *testing.T) {
	assert := assert.New(t)

	next := &countingEmbedder{}
	cached, err := NewCached(next, 4)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	cached.Embed(ctx, "when is the next event?")

	// Exact-match keying: a near-duplicate query is still a miss.
	cached.Embed(ctx, "when is the next event")

	assert.Equal(2, next.calls)
}

func TestCachedEmbedEviction(t *testing.T) {
	assert := assert.New(t)

	next := &countingEmbedder{}
	cached, err := NewCached(next, 2)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	cached.Embed(ctx, "a")
	cached.Embed(ctx, "b")
	cached.Embed(ctx, "c") // evicts "a"
	cached.Embed(ctx, "a")

	assert.Equal(4, next.calls)
}

func TestCachedEmbedDefaultCapacity(t *testing.T) {
	assert := assert.New(t)

	next := &countingEmbedder{}
	cached, err := NewCached(next, 0)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	ctx := context.Background()

	for i := 0; i < DefaultCacheCapacity; i++ {
		cached.Embed(ctx, strconv.Itoa(i))
	}

	// The first entry is still resident at exactly full capacity.
	cached.Embed(ctx, "0")
	assert.Equal(DefaultCacheCapacity, next.calls)

	// One more distinct query evicts the oldest entry.
	cached.Embed(ctx, "overflow")
	cached.Embed(ctx, "1")
	assert.Equal(DefaultCacheCapacity+2, next.calls)
}

func TestCachedDelegates(t *testing.T) {
	assert := assert.New(t)

	cached, err := NewCached(&countingEmbedder{}, 1)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(3, cached.Dimension())
	assert.Equal("counting", cached.ModelInfo())
}
