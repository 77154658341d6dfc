package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// SaveDocument stores or updates a document.
func (s *documentStore) SaveDocument(ctx context.Context, doc *domain.Document) error {
	if doc == nil || doc.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (id, subject, sender, received, content)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			sender = excluded.sender,
			received = excluded.received,
			content = excluded.content
	`, doc.ID, doc.Metadata.Subject, doc.Metadata.From, doc.Metadata.Received, doc.Content)

	if err != nil {
		return fmt.Errorf("saving document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (s *documentStore) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, subject, sender, received, content
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	if err := row.Scan(&doc.ID, &doc.Metadata.Subject, &doc.Metadata.From,
		&doc.Metadata.Received, &doc.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	return &doc, nil
}

// ListDocuments returns all documents in the index.
func (s *documentStore) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, subject, sender, received, content
		FROM documents
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Metadata.Subject, &doc.Metadata.From,
			&doc.Metadata.Received, &doc.Content); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// Count returns the number of stored documents.
func (s *documentStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting documents: %w", err)
	}
	return count, nil
}

// DeleteAll removes every document from the index. Embeddings go with them
// via the foreign key cascade.
func (s *documentStore) DeleteAll(ctx context.Context) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM documents")
	if err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}
	return nil
}
