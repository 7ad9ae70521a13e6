// Package embedding provides query embedders for the chat subsystem.
package embedding

import (
	"context"
	"errors"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI encodes text with an OpenAI embedding model. The client is built
// once at startup and reused for every call.
type OpenAI struct {
	client *openai.Client
	model  string
	dim    int
}

func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, errors.New("embedding API key is not set")
	}

	dim := 1536 // text-embedding-3-small
	if model == "text-embedding-3-large" {
		dim = 3072
	}

	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
		dim:    dim,
	}, nil
}

func (e *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("cannot embed empty text")
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding data returned")
	}

	vec := make([]float32, len(resp.Data[0].Embedding))
	copy(vec, resp.Data[0].Embedding)

	l2normalize(vec)

	return vec, nil
}

func (e *OpenAI) Dimension() int {
	return e.dim
}

func (e *OpenAI) ModelInfo() string {
	return "openai-" + e.model
}

// l2normalize scales a vector to unit length so L2 and cosine rankings agree
// with how the offline index was built.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}

	if sum == 0 {
		return
	}

	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
