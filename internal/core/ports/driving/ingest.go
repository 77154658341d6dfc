package driving

import (
	"context"
	"time"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// IngestService fetches mailbox messages and indexes them for
// question answering.
type IngestService interface {
	// FetchForDate fetches up to top recent messages and keeps only
	// those received on the given UTC date.
	FetchForDate(ctx context.Context, date time.Time, top int) ([]domain.Message, error)

	// Index cleans the messages, embeds them and writes them to the
	// document store and vector index. Returns the number of
	// documents indexed.
	Index(ctx context.Context, messages []domain.Message) (int, error)
}
