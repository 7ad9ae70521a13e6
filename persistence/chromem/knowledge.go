package chromem

import (
	"context"
	"fmt"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/specs-nexus/nexus/knowledge"
	"github.com/specs-nexus/nexus/persistence/gobstore"
)

// NewKnowledgeStore builds a chromem-backed knowledge store from the loaded
// artifacts. Each index row becomes one document whose ID is its row number,
// so search results keep the row-to-passage association.
func NewKnowledgeStore(ctx context.Context, cfg knowledge.Config, artifacts *gobstore.Artifacts) (knowledge.Store, error) {
	var db *chromem.DB
	if !cfg.Persistent {
		db = chromem.NewDB()
	} else {
		d, err := chromem.NewPersistentDB(cfg.Path, false)
		if err != nil {
			return nil, err
		}

		db = d
	}

	name := cfg.Collection
	if name == "" {
		name = "passages"
	}

	c, err := db.GetOrCreateCollection(name, nil, nil)
	if err != nil {
		return nil, err
	}

	for i, vec := range artifacts.Index.Vectors {
		doc := chromem.Document{
			ID:        strconv.Itoa(i),
			Content:   artifacts.Passages[i],
			Embedding: vec,
		}

		if err := c.AddDocument(ctx, doc); err != nil {
			return nil, fmt.Errorf("adding row %d: %w", i, err)
		}
	}

	return &knowledgeStore{
		collection: c,
		dimension:  artifacts.Index.Dimension,
	}, nil
}

type knowledgeStore struct {
	collection *chromem.Collection
	dimension  int
}

func (s *knowledgeStore) Dimension() int {
	return s.dimension
}

func (s *knowledgeStore) Len() int {
	return s.collection.Count()
}

func (s *knowledgeStore) Search(ctx context.Context, embedding []float32, k int) ([]knowledge.Result, error) {
	if len(embedding) != s.dimension {
		return nil, knowledge.ErrDimensionMismatch
	}

	if k < 1 {
		return nil, knowledge.ErrInvalidK
	}

	if k > s.collection.Count() {
		k = s.collection.Count()
	}

	if k == 0 {
		return []knowledge.Result{}, nil
	}

	found, err := s.collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, err
	}

	results := make([]knowledge.Result, 0, len(found))
	for _, r := range found {
		index, err := strconv.Atoi(r.ID)
		if err != nil {
			continue
		}

		results = append(results, knowledge.Result{
			Index:   index,
			Passage: r.Content,
			// chromem ranks by cosine similarity; flip it so callers
			// always see ascending distance.
			Distance: 1 - r.Similarity,
		})
	}

	return results, nil
}
