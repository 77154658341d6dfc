package driven

import (
	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// Normaliser transforms raw mail messages into indexed documents.
type Normaliser interface {
	// Normalise cleans a message body and wraps the message as a
	// retrievable document with subject/from/received metadata.
	Normalise(msg domain.Message) domain.Document
}
