package nexus

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/specs-nexus/nexus/completion"
	"github.com/specs-nexus/nexus/knowledge"
)

// Service is the retrieval-augmented responder: one call answers one chat
// turn. Each turn is stateless; no conversation history is kept.
type Service interface {

	// Close releases the responder's resources.
	Close() error

	// RetrieveContext embeds the query and returns the top-k passages
	// joined with a blank line, most similar first. An empty string means
	// nothing relevant was retrieved, which is a valid state.
	RetrieveContext(ctx context.Context, query string, k ...int) (string, error)

	// Answer runs the full pipeline: embed, search, assemble the grounded
	// prompt, call the completion API, and return the trimmed answer.
	Answer(ctx context.Context, query string) (string, error)
}

type ServiceMiddleware func(Service) Service

// NewService wires the responder to its collaborators. The knowledge store
// and embedder are constructed once at startup and shared by all requests.
func NewService(store knowledge.Store, embedder knowledge.Embedder, completions *completion.Client) Service {
	log := zap.L().With(
		zap.String("service", "chat"),
	)

	return &service{
		store:       store,
		embedder:    embedder,
		completions: completions,
		log:         log,
	}
}

type service struct {
	store       knowledge.Store
	embedder    knowledge.Embedder
	completions *completion.Client
	log         *zap.Logger
}

func (svc *service) Close() error {
	return nil
}

func (svc *service) RetrieveContext(ctx context.Context, query string, k ...int) (string, error) {
	n := DefaultTopK
	if len(k) > 0 && k[0] > 0 {
		n = k[0]
	}

	embedding, err := svc.embedder.Embed(ctx, query)
	if err != nil {
		return "", err
	}

	results, err := svc.store.Search(ctx, embedding, n)
	if err != nil {
		return "", err
	}

	passages := make([]string, len(results))
	for i, r := range results {
		passages[i] = r.Passage
	}

	return JoinPassages(passages), nil
}

func (svc *service) Answer(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyQuery
	}

	context, err := svc.RetrieveContext(ctx, query)
	if err != nil {
		return "", err
	}

	prompt := BuildPrompt(context, query)

	return svc.completions.Complete(ctx, prompt)
}
