package driven

import (
	"context"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// Retriever returns the documents most semantically relevant to a
// query, in descending relevance order. The number of results (k) is a
// retriever-side configuration; callers never issue a second retrieval
// call to widen recall.
type Retriever interface {
	// Retrieve returns the top-k relevant documents for the query.
	Retrieve(ctx context.Context, query string) ([]domain.Document, error)
}
