package knowledge

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// MemoryStore is an exact nearest-neighbor Store holding the corpus in two
// parallel slices: one vector per row of the index and one passage per row.
// Both are fixed at construction and never mutated, so Search needs no
// synchronization.
type MemoryStore struct {
	vectors   [][]float32
	passages  []string
	dimension int

	log *zap.Logger
}

// NewMemoryStore builds a store over the given rows. Every vector must have
// the given dimension. The passage list may be shorter than the vector list;
// rows without a passage are dropped at query time rather than rejected here,
// so a store built from drifted artifacts still serves best-effort results.
func NewMemoryStore(vectors [][]float32, passages []string, dimension int) (*MemoryStore, error) {
	for i, vec := range vectors {
		if len(vec) != dimension {
			return nil, fmt.Errorf("row %d: vector has dimension %d, want %d", i, len(vec), dimension)
		}
	}

	log := zap.L().With(
		zap.String("component", "knowledge"),
	)

	return &MemoryStore{
		vectors:   vectors,
		passages:  passages,
		dimension: dimension,
		log:       log,
	}, nil
}

func (s *MemoryStore) Dimension() int {
	return s.dimension
}

func (s *MemoryStore) Len() int {
	return len(s.passages)
}

// Search returns up to k passages ordered by ascending L2 distance to the
// query embedding. Row indices without a matching passage are dropped, so
// the result may hold fewer than k entries.
func (s *MemoryStore) Search(ctx context.Context, embedding []float32, k int) ([]Result, error) {
	if len(embedding) != s.dimension {
		return nil, ErrDimensionMismatch
	}

	if k < 1 {
		return nil, ErrInvalidK
	}

	type candidate struct {
		index    int
		distance float32
	}

	candidates := make([]candidate, len(s.vectors))
	for i, vec := range s.vectors {
		candidates[i] = candidate{
			index:    i,
			distance: squaredL2(embedding, vec),
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	results := make([]Result, 0, k)
	for _, c := range candidates[:k] {
		if c.index >= len(s.passages) {
			s.log.Warn("dropping retrieval row without passage",
				zap.Int("index", c.index),
				zap.Int("passages", len(s.passages)),
			)
			continue
		}

		results = append(results, Result{
			Index:    c.index,
			Passage:  s.passages[c.index],
			Distance: c.distance,
		})
	}

	return results, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
