package sqlite

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// vectorIndex implements driven.VectorIndex over the embeddings table.
type vectorIndex struct {
	store *Store
}

var _ driven.VectorIndex = (*vectorIndex)(nil)

// Add inserts or replaces the vector for the given document ID.
func (v *vectorIndex) Add(ctx context.Context, documentID string, embedding []float32) error {
	if documentID == "" || len(embedding) == 0 {
		return domain.ErrInvalidInput
	}

	_, err := v.store.db.ExecContext(ctx, `
		INSERT INTO embeddings (document_id, vector)
		VALUES (?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			vector = excluded.vector
	`, documentID, float32SliceToBytes(embedding))

	if err != nil {
		return fmt.Errorf("saving embedding: %w", err)
	}
	return nil
}

// Delete removes a vector from the index.
func (v *vectorIndex) Delete(ctx context.Context, documentID string) error {
	_, err := v.store.db.ExecContext(ctx,
		"DELETE FROM embeddings WHERE document_id = ?", documentID)
	if err != nil {
		return fmt.Errorf("deleting embedding: %w", err)
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector by scanning
// every stored embedding and ranking by cosine similarity.
func (v *vectorIndex) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if k <= 0 {
		return nil, nil
	}

	rows, err := v.store.db.QueryContext(ctx, "SELECT document_id, vector FROM embeddings")
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}

		candidate := bytesToFloat32Slice(blob)
		if len(candidate) != len(query) {
			// Stale row from a different embedding model; skip it.
			continue
		}

		hits = append(hits, driven.VectorHit{
			DocumentID: id,
			Similarity: cosineSimilarity(query, candidate),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	return hits, nil
}

// Close releases resources. The underlying database is owned by the Store.
func (v *vectorIndex) Close() error {
	return nil
}

// cosineSimilarity computes the cosine similarity between two equal-length
// vectors, returning 0 for zero vectors.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a little-endian byte slice.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
