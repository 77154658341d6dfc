package driven

import "context"

// VectorIndex provides semantic similarity search operations over
// indexed documents. Vector storage format is the adapter's concern.
type VectorIndex interface {
	// Add inserts a vector for the given document ID.
	Add(ctx context.Context, documentID string, embedding []float32) error

	// Delete removes a vector from the index.
	Delete(ctx context.Context, documentID string) error

	// Search finds the k nearest neighbours to the query vector.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// DocumentID is the matched document.
	DocumentID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
