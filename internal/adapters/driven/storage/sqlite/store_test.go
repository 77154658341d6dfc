package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "2025-01-15.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func testDoc(id, subject, from, received string) *domain.Document {
	return &domain.Document{
		ID:      id,
		Content: "Subject: " + subject + "\nFrom: " + from + "\n\nbody",
		Metadata: domain.EmailMetadata{
			Subject:  subject,
			From:     from,
			Received: received,
		},
	}
}

func TestDocumentStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	original := testDoc("d1", "Exam schedule", "registrar@giki.edu.pk", "2025-01-15T09:00:00+00:00")
	require.NoError(t, docs.SaveDocument(ctx, original))

	got, err := docs.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, original.Content, got.Content)
	assert.Equal(t, "Exam schedule", got.Metadata.Subject)
	assert.Equal(t, "registrar@giki.edu.pk", got.Metadata.From)
	assert.Equal(t, "2025-01-15T09:00:00+00:00", got.Metadata.Received)
}

func TestDocumentStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DocumentStore().GetDocument(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStoreSaveIsUpsert(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("d1", "v1", "a@x.com", "")))
	require.NoError(t, docs.SaveDocument(ctx, testDoc("d1", "v2", "a@x.com", "")))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := docs.GetDocument(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, "v2", got.Metadata.Subject)
}

func TestDocumentStoreSaveInvalid(t *testing.T) {
	store := newTestStore(t)

	err := store.DocumentStore().SaveDocument(context.Background(), &domain.Document{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStoreListAndDeleteAll(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("d1", "one", "a@x.com", "")))
	require.NoError(t, docs.SaveDocument(ctx, testDoc("d2", "two", "b@x.com", "")))

	listed, err := docs.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	require.NoError(t, docs.DeleteAll(ctx))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestVectorIndexSearchRanksBySimilarity(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	vectors := store.VectorIndex()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("close", "close", "a@x.com", "")))
	require.NoError(t, docs.SaveDocument(ctx, testDoc("far", "far", "b@x.com", "")))
	require.NoError(t, docs.SaveDocument(ctx, testDoc("mid", "mid", "c@x.com", "")))

	require.NoError(t, vectors.Add(ctx, "close", []float32{1, 0, 0}))
	require.NoError(t, vectors.Add(ctx, "far", []float32{0, 1, 0}))
	require.NoError(t, vectors.Add(ctx, "mid", []float32{1, 1, 0}))

	hits, err := vectors.Search(ctx, []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, "close", hits[0].DocumentID)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "mid", hits[1].DocumentID)
	assert.InDelta(t, 0.7071, hits[1].Similarity, 1e-3)
}

func TestVectorIndexSkipsMismatchedDimensions(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	vectors := store.VectorIndex()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("ok", "ok", "a@x.com", "")))
	require.NoError(t, docs.SaveDocument(ctx, testDoc("stale", "stale", "b@x.com", "")))

	require.NoError(t, vectors.Add(ctx, "ok", []float32{1, 0}))
	require.NoError(t, vectors.Add(ctx, "stale", []float32{1, 0, 0, 0}))

	hits, err := vectors.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "ok", hits[0].DocumentID)
}

func TestVectorIndexDelete(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	vectors := store.VectorIndex()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("d1", "one", "a@x.com", "")))
	require.NoError(t, vectors.Add(ctx, "d1", []float32{1, 0}))
	require.NoError(t, vectors.Delete(ctx, "d1"))

	hits, err := vectors.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDeleteAllCascadesToEmbeddings(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	vectors := store.VectorIndex()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, testDoc("d1", "one", "a@x.com", "")))
	require.NoError(t, vectors.Add(ctx, "d1", []float32{1, 0}))

	require.NoError(t, docs.DeleteAll(ctx))

	hits, err := vectors.Search(ctx, []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2025-01-15.db")
	ctx := context.Background()

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.DocumentStore().SaveDocument(ctx, testDoc("d1", "one", "a@x.com", "")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.DocumentStore().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}
