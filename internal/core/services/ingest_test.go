package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// mockMailSource implements driven.MailSource for testing.
type mockMailSource struct {
	messages []domain.Message
	listErr  error
}

func (m *mockMailSource) ListMessages(_ context.Context, top int) ([]domain.Message, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if top < len(m.messages) {
		return m.messages[:top], nil
	}
	return m.messages, nil
}

func (m *mockMailSource) AccountIdentifier(_ context.Context) (string, error) {
	return "user@outlook.com", nil
}

// mockEmbedder implements driven.EmbeddingService for testing.
type mockEmbedder struct {
	embedErr error
	batches  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return []float32{1, 0, 0}, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batches++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int             { return 3 }
func (m *mockEmbedder) ModelName() string           { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                { return nil }

// mockDocStore implements driven.DocumentStore for testing.
type mockDocStore struct {
	saved   []domain.Document
	saveErr error
}

func (m *mockDocStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, *doc)
	return nil
}

func (m *mockDocStore) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	for i := range m.saved {
		if m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockDocStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	return m.saved, nil
}

func (m *mockDocStore) Count(_ context.Context) (int, error) { return len(m.saved), nil }
func (m *mockDocStore) DeleteAll(_ context.Context) error    { m.saved = nil; return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	added  map[string][]float32
	addErr error
}

func newMockVectorIndex() *mockVectorIndex {
	return &mockVectorIndex{added: make(map[string][]float32)}
}

func (m *mockVectorIndex) Add(_ context.Context, id string, embedding []float32) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added[id] = embedding
	return nil
}

func (m *mockVectorIndex) Delete(_ context.Context, id string) error {
	delete(m.added, id)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	return nil, nil
}

func (m *mockVectorIndex) Close() error { return nil }

// stubNormaliser implements driven.Normaliser for testing.
type stubNormaliser struct{ n int }

func (s *stubNormaliser) Normalise(msg domain.Message) domain.Document {
	s.n++
	return domain.Document{
		ID:      msg.ID,
		Content: msg.BodyPreview,
		Metadata: domain.EmailMetadata{
			Subject:  msg.Subject,
			From:     msg.From,
			Received: msg.Received,
		},
	}
}

func TestFetchForDate_FiltersByUTCDate(t *testing.T) {
	mail := &mockMailSource{messages: []domain.Message{
		{ID: "1", Received: "2025-01-15T09:00:00Z"},
		{ID: "2", Received: "2025-01-16T01:30:00+05:00"}, // 2025-01-15 20:30 UTC
		{ID: "3", Received: "2025-01-14T23:59:59Z"},
		{ID: "4", Received: "garbage"},
	}}
	svc := NewIngestService(mail, &stubNormaliser{}, &mockEmbedder{}, &mockDocStore{}, newMockVectorIndex())

	date := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	got, err := svc.FetchForDate(context.Background(), date, 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
}

func TestFetchForDate_ListErrorPropagates(t *testing.T) {
	mail := &mockMailSource{listErr: errors.New("graph unavailable")}
	svc := NewIngestService(mail, &stubNormaliser{}, &mockEmbedder{}, &mockDocStore{}, newMockVectorIndex())

	_, err := svc.FetchForDate(context.Background(), time.Now(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph unavailable")
}

func TestIndex_StoresDocumentsAndVectors(t *testing.T) {
	store := &mockDocStore{}
	vectors := newMockVectorIndex()
	embedder := &mockEmbedder{}
	norm := &stubNormaliser{}
	svc := NewIngestService(&mockMailSource{}, norm, embedder, store, vectors)

	messages := []domain.Message{
		{ID: "1", Subject: "a", BodyPreview: "body a", Received: "2025-01-15T09:00:00Z"},
		{ID: "2", Subject: "b", BodyPreview: "body b", Received: "2025-01-15T10:00:00Z"},
	}
	n, err := svc.Index(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, norm.n)
	assert.Len(t, store.saved, 2)
	assert.Len(t, vectors.added, 2)
	assert.Equal(t, 1, embedder.batches)
}

func TestIndex_EmptyInput(t *testing.T) {
	svc := NewIngestService(&mockMailSource{}, &stubNormaliser{}, &mockEmbedder{}, &mockDocStore{}, newMockVectorIndex())
	n, err := svc.Index(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIndex_EmbedErrorPropagates(t *testing.T) {
	embedder := &mockEmbedder{embedErr: errors.New("quota exceeded")}
	svc := NewIngestService(&mockMailSource{}, &stubNormaliser{}, embedder, &mockDocStore{}, newMockVectorIndex())

	_, err := svc.Index(context.Background(), []domain.Message{{ID: "1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestIndex_NilEmbedder(t *testing.T) {
	svc := NewIngestService(&mockMailSource{}, &stubNormaliser{}, nil, &mockDocStore{}, newMockVectorIndex())
	_, err := svc.Index(context.Background(), []domain.Message{{ID: "1"}})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}
