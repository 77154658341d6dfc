package driven

import (
	"context"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// DocumentStore persists indexed email documents.
// Backed by SQLite, one index per fetched date.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents in the index.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// DeleteAll removes every document from the index.
	DeleteAll(ctx context.Context) error
}
