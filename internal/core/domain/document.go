package domain

import (
	"strings"
	"time"
)

// EmailMetadata carries the message headers attached to an indexed
// document. All fields are optional; the empty string means the header
// was absent on the original message.
type EmailMetadata struct {
	// Subject is the message subject line.
	Subject string

	// From is the sender address. May be empty.
	From string

	// Received is the delivery timestamp as an ISO-8601 string,
	// exactly as reported by the mail API. May be empty or malformed.
	Received string
}

// Document represents one indexed message fragment. It is produced by
// the ingest pipeline and consumed read-only by the answer service.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Content is the full text content after HTML cleaning.
	Content string

	// Metadata holds the message headers.
	Metadata EmailMetadata
}

// ReceivedTime parses the Received timestamp after normalising a
// trailing "Z" to "+00:00". The second return value is false when the
// timestamp is absent or unparseable; callers must treat that as a
// first-class case, never an error.
func (d Document) ReceivedTime() (time.Time, bool) {
	return ParseReceived(d.Metadata.Received)
}

// ParseReceived parses an ISO-8601 timestamp string in the same way the
// indexing pipeline and the answer service do. A trailing "Z" is
// rewritten to "+00:00" before parsing so both spellings are accepted.
func ParseReceived(received string) (time.Time, bool) {
	if received == "" {
		return time.Time{}, false
	}
	normalised := received
	if strings.HasSuffix(normalised, "Z") {
		normalised = strings.TrimSuffix(normalised, "Z") + "+00:00"
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, normalised); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
