package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// embedBatchSize bounds how many documents are embedded per request.
const embedBatchSize = 64

// IngestService fetches mailbox messages and indexes them for
// question answering.
type IngestService struct {
	mail       driven.MailSource
	normaliser driven.Normaliser
	embedder   driven.EmbeddingService
	docStore   driven.DocumentStore
	vectors    driven.VectorIndex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	mail driven.MailSource,
	normaliser driven.Normaliser,
	embedder driven.EmbeddingService,
	docStore driven.DocumentStore,
	vectors driven.VectorIndex,
) *IngestService {
	return &IngestService{
		mail:       mail,
		normaliser: normaliser,
		embedder:   embedder,
		docStore:   docStore,
		vectors:    vectors,
	}
}

// FetchForDate fetches up to top recent messages and keeps only those
// received on the given UTC date. Messages with unparseable timestamps
// are dropped silently.
func (s *IngestService) FetchForDate(ctx context.Context, date time.Time, top int) ([]domain.Message, error) {
	logger.Section("Mail Fetch")
	if s.mail == nil {
		return nil, domain.ErrAuthRequired
	}

	messages, err := s.mail.ListMessages(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	logger.Debug("Fetched %d messages", len(messages))

	wantYear, wantMonth, wantDay := date.UTC().Date()
	var filtered []domain.Message
	for _, m := range messages {
		dt, ok := domain.ParseReceived(m.Received)
		if !ok {
			continue
		}
		y, mo, d := dt.UTC().Date()
		if y == wantYear && mo == wantMonth && d == wantDay {
			filtered = append(filtered, m)
		}
	}
	logger.Info("Kept %d messages for %s", len(filtered), date.UTC().Format("2006-01-02"))

	return filtered, nil
}

// Index cleans the messages, embeds them in batches and writes them to
// the document store and vector index. Returns the number of
// documents indexed.
func (s *IngestService) Index(ctx context.Context, messages []domain.Message) (int, error) {
	logger.Section("Indexing")
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	if len(messages) == 0 {
		return 0, nil
	}

	docs := make([]domain.Document, len(messages))
	texts := make([]string, len(messages))
	for i, m := range messages {
		docs[i] = s.normaliser.Normalise(m)
		texts[i] = docs[i].Content
	}

	indexed := 0
	for start := 0; start < len(docs); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(docs) {
			end = len(docs)
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return indexed, fmt.Errorf("embed batch: %w", err)
		}
		if len(embeddings) != end-start {
			return indexed, fmt.Errorf("embed batch: got %d embeddings for %d documents",
				len(embeddings), end-start)
		}

		for i := start; i < end; i++ {
			if err := s.docStore.SaveDocument(ctx, &docs[i]); err != nil {
				return indexed, fmt.Errorf("save document: %w", err)
			}
			if err := s.vectors.Add(ctx, docs[i].ID, embeddings[i-start]); err != nil {
				return indexed, fmt.Errorf("add vector: %w", err)
			}
			indexed++
		}
		logger.Debug("Indexed %d/%d documents", indexed, len(docs))
	}

	logger.Info("Indexing complete: %d documents", indexed)
	return indexed, nil
}
