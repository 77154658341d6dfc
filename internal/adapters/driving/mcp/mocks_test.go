package mcp

import (
	"context"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answer string
	docs   []domain.Document
	err    error
}

func (m *mockAnswerService) Answer(_ context.Context, _ string) (string, error) {
	return m.answer, m.err
}

func (m *mockAnswerService) Retrieve(_ context.Context, _ string) ([]domain.Document, error) {
	return m.docs, m.err
}

// mockDocumentStore is a mock implementation of driven.DocumentStore.
type mockDocumentStore struct {
	docs []domain.Document
	doc  *domain.Document
	err  error
}

func (m *mockDocumentStore) SaveDocument(_ context.Context, _ *domain.Document) error {
	return m.err
}

func (m *mockDocumentStore) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockDocumentStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentStore) Count(_ context.Context) (int, error) {
	return len(m.docs), m.err
}

func (m *mockDocumentStore) DeleteAll(_ context.Context) error {
	return m.err
}
