// Package gobstore loads the persisted knowledge artifacts: a serialized
// vector index and the parallel list of source passages. Both are produced
// offline during index construction and are read exactly once at startup.
package gobstore

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"github.com/specs-nexus/nexus/knowledge"
)

var ErrInconsistentArtifacts = errors.New("index row count does not match passage count")

// Index is the on-disk layout of the vector index artifact.
type Index struct {
	Dimension int
	Vectors   [][]float32
	ModelInfo string
}

// Artifacts holds both decoded artifacts after a successful load.
type Artifacts struct {
	Index    Index
	Passages []string
}

// Load decodes both artifacts and verifies they are mutually consistent.
// Any failure here is fatal for the chat subsystem: the process must not
// serve chat traffic without a complete corpus.
func Load(indexPath, passagesPath string) (*Artifacts, error) {
	var index Index
	if err := decodeFile(indexPath, &index); err != nil {
		return nil, fmt.Errorf("loading index artifact: %w", err)
	}

	var passages []string
	if err := decodeFile(passagesPath, &passages); err != nil {
		return nil, fmt.Errorf("loading passages artifact: %w", err)
	}

	if len(index.Vectors) != len(passages) {
		return nil, fmt.Errorf("%w: %d rows, %d passages",
			ErrInconsistentArtifacts, len(index.Vectors), len(passages))
	}

	return &Artifacts{
		Index:    index,
		Passages: passages,
	}, nil
}

// NewStore loads the artifacts and builds an in-memory knowledge store.
func NewStore(indexPath, passagesPath string) (*knowledge.MemoryStore, error) {
	artifacts, err := Load(indexPath, passagesPath)
	if err != nil {
		return nil, err
	}

	return knowledge.NewMemoryStore(
		artifacts.Index.Vectors,
		artifacts.Passages,
		artifacts.Index.Dimension,
	)
}

func decodeFile(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gob.NewDecoder(f).Decode(v)
}
