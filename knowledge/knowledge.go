package knowledge

import (
	"context"
	"errors"
)

var (
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrInvalidK          = errors.New("k must be at least 1")
)

type Config struct {
	Backend      string `yaml:"backend"` // "memory" (default) or "chromem"
	IndexPath    string `yaml:"indexPath"`
	PassagesPath string `yaml:"passagesPath"`
	Persistent   bool   `yaml:"persistent"`
	Path         string `yaml:"path"`
	Collection   string `yaml:"collection"`
}

// Embedder encodes a piece of text into a fixed-dimension vector.
// Implementations must be deterministic for a given input within a process.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
	ModelInfo() string
}

// Store answers nearest-neighbor queries over an immutable corpus of
// passage embeddings. Implementations are read-only after construction
// and safe for concurrent use.
type Store interface {
	Search(ctx context.Context, embedding []float32, k int) ([]Result, error)
	Dimension() int
	Len() int
}

// Result is a single retrieved passage. Results are ordered by ascending
// Distance, most similar first.
type Result struct {
	Index    int     `json:"index"`
	Passage  string  `json:"passage"`
	Distance float32 `json:"distance"`
}
