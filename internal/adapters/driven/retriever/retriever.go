// Package retriever implements semantic retrieval over an indexed mailbox
// day: the question is embedded, matched against the vector index, and the
// winning documents hydrated from the document store.
package retriever

import (
	"context"
	"errors"
	"fmt"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
)

// DefaultTopK is how many documents a retrieval returns by default.
const DefaultTopK = 8

// Retriever implements driven.Retriever using an embedding service, a
// vector index and a document store.
type Retriever struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorIndex
	docs     driven.DocumentStore
	topK     int
}

// Option configures a Retriever.
type Option func(*Retriever)

// WithTopK overrides the number of documents returned per retrieval.
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// New creates a Retriever over the given services.
func New(embedder driven.EmbeddingService, vectors driven.VectorIndex, docs driven.DocumentStore, opts ...Option) *Retriever {
	r := &Retriever{
		embedder: embedder,
		vectors:  vectors,
		docs:     docs,
		topK:     DefaultTopK,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Compile-time interface check.
var _ driven.Retriever = (*Retriever)(nil)

// Retrieve returns the documents most similar to the query, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.vectors.Search(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	logger.Debug("retriever: %d hit(s) for query", len(hits))

	docs := make([]domain.Document, 0, len(hits))
	for _, hit := range hits {
		doc, err := r.docs.GetDocument(ctx, hit.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Vector without a document row; index is being rebuilt.
				logger.Warn("retriever: document %s missing, skipping", hit.DocumentID)
				continue
			}
			return nil, fmt.Errorf("load document %s: %w", hit.DocumentID, err)
		}
		docs = append(docs, *doc)
	}

	return docs, nil
}
