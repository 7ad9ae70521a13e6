package gobstore

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeGob(t *testing.T, path string, v any) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(v); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "faq_index.gob")
	passagesPath := filepath.Join(dir, "faq_passages.gob")

	writeGob(t, indexPath, Index{
		Dimension: 2,
		Vectors:   [][]float32{{1, 0}, {0, 1}},
		ModelInfo: "text-embedding-3-small",
	})
	writeGob(t, passagesPath, []string{"first passage", "second passage"})

	artifacts, err := Load(indexPath, passagesPath)
	assert.NoError(t, err)
	assert.Equal(t, 2, artifacts.Index.Dimension)
	assert.Len(t, artifacts.Index.Vectors, 2)
	assert.Equal(t, []string{"first passage", "second passage"}, artifacts.Passages)
}

func TestLoadInconsistentArtifacts(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "faq_index.gob")
	passagesPath := filepath.Join(dir, "faq_passages.gob")

	writeGob(t, indexPath, Index{
		Dimension: 2,
		Vectors:   [][]float32{{1, 0}, {0, 1}},
	})
	writeGob(t, passagesPath, []string{"only one passage"})

	_, err := Load(indexPath, passagesPath)
	assert.ErrorIs(t, err, ErrInconsistentArtifacts)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.gob"), filepath.Join(dir, "missing_too.gob"))
	assert.Error(t, err)
}

func TestNewStore(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "faq_index.gob")
	passagesPath := filepath.Join(dir, "faq_passages.gob")

	writeGob(t, indexPath, Index{
		Dimension: 3,
		Vectors:   [][]float32{{1, 0, 0}},
	})
	writeGob(t, passagesPath, []string{"lonely passage"})

	store, err := NewStore(indexPath, passagesPath)
	assert.NoError(t, err)
	assert.Equal(t, 3, store.Dimension())
	assert.Equal(t, 1, store.Len())
}
