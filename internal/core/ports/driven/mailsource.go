package driven

import (
	"context"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// MailSource fetches messages from the user's mailbox. Pagination,
// retries and rate limiting are handled inside the adapter.
type MailSource interface {
	// ListMessages fetches up to top recent messages, newest first.
	// The adapter follows pagination links until top messages have
	// been collected or the mailbox is exhausted.
	ListMessages(ctx context.Context, top int) ([]domain.Message, error)

	// AccountIdentifier returns the signed-in user's address, or an
	// empty string when it cannot be determined.
	AccountIdentifier(ctx context.Context) (string, error)
}
