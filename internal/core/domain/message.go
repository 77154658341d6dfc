package domain

// Message represents a raw Outlook message as fetched from Microsoft
// Graph, before HTML cleaning and indexing.
type Message struct {
	// ID is the Graph message identifier.
	ID string

	// Subject is the subject line. May be empty.
	Subject string

	// From is the sender address. May be empty for drafts or
	// system-generated messages.
	From string

	// BodyHTML is the message body content, usually HTML.
	BodyHTML string

	// BodyPreview is the short plain-text preview Graph provides.
	BodyPreview string

	// Received is the receivedDateTime value as an ISO-8601 string.
	Received string
}
