package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreSearchOrdering(t *testing.T) {
	assert := assert.New(t)

	vectors := [][]float32{
		{5, 0},
		{1, 0},
		{3, 0},
	}
	passages := []string{"far", "near", "middle"}

	store, err := NewMemoryStore(vectors, passages, 2)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	results, err := store.Search(context.Background(), []float32{0, 0}, 3)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Len(results, 3)
	assert.Equal("near", results[0].Passage)
	assert.Equal("middle", results[1].Passage)
	assert.Equal("far", results[2].Passage)
	assert.Less(results[0].Distance, results[1].Distance)
}

func TestMemoryStoreSearchKLargerThanCorpus(t *testing.T) {
	assert := assert.New(t)

	store, err := NewMemoryStore([][]float32{{0}}, []string{"only"}, 1)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	results, err := store.Search(context.Background(), []float32{1}, 10)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Len(results, 1)
	assert.Equal("only", results[0].Passage)
}

func TestMemoryStoreSearchEmptyCorpus(t *testing.T) {
	assert := assert.New(t)

	store, err := NewMemoryStore(nil, nil, 4)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	results, err := store.Search(context.Background(), []float32{0, 0, 0, 0}, 3)
	assert.NoError(err)
	assert.Empty(results)
}

func TestMemoryStoreSearchDropsRowsWithoutPassage(t *testing.T) {
	assert := assert.New(t)

	// Six vectors but only five passages: the sixth row is the best match
	// yet has nothing to return, so it must be skipped.
	vectors := [][]float32{
		{10}, {20}, {30}, {40}, {50}, {0},
	}
	passages := []string{"p0", "p1", "p2", "p3", "p4"}

	store, err := NewMemoryStore(vectors, passages, 1)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	results, err := store.Search(context.Background(), []float32{0}, 3)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	for _, r := range results {
		assert.Less(r.Index, len(passages))
	}

	assert.Equal("p0", results[0].Passage)
}

func TestMemoryStoreSearchDimensionMismatch(t *testing.T) {
	assert := assert.New(t)

	store, err := NewMemoryStore([][]float32{{0, 0}}, []string{"p"}, 2)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = store.Search(context.Background(), []float32{0, 0, 0}, 1)
	assert.ErrorIs(err, ErrDimensionMismatch)
}

func TestMemoryStoreSearchInvalidK(t *testing.T) {
	assert := assert.New(t)

	store, err := NewMemoryStore([][]float32{{0}}, []string{"p"}, 1)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	_, err = store.Search(context.Background(), []float32{0}, 0)
	assert.ErrorIs(err, ErrInvalidK)
}

func TestNewMemoryStoreRejectsBadDimension(t *testing.T) {
	assert := assert.New(t)

	_, err := NewMemoryStore([][]float32{{0, 0}, {0}}, []string{"a", "b"}, 2)
	assert.Error(err)
}
