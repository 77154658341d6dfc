package driving

import (
	"context"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// AnswerService answers natural-language questions about indexed
// emails. The answer is always human-readable text; absence of matches
// is reported as an explanatory message, never an error.
type AnswerService interface {
	// Answer routes the query to an answer strategy and returns the
	// answer text. Errors come only from collaborator failures
	// (retriever, generative model), never from empty results.
	Answer(ctx context.Context, query string) (string, error)

	// Retrieve returns the top retrieved documents for a query,
	// for inspection without answering.
	Retrieve(ctx context.Context, query string) ([]domain.Document, error)
}
