package html

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser converts raw Outlook messages into indexed documents.
type Normaliser struct{}

// New creates a new HTML email normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise strips the HTML body and wraps the message as a document.
// The document text leads with the subject and sender so they carry
// weight in embeddings; the same headers are kept as metadata for the
// answer strategies. Falls back to the body preview when the body is
// empty.
func (n *Normaliser) Normalise(msg domain.Message) domain.Document {
	body := StripHTML(msg.BodyHTML)
	if body == "" {
		body = strings.TrimSpace(msg.BodyPreview)
	}

	return domain.Document{
		ID:      uuid.New().String(),
		Content: fmt.Sprintf("Subject: %s\nFrom: %s\n\n%s", msg.Subject, msg.From, body),
		Metadata: domain.EmailMetadata{
			Subject:  msg.Subject,
			From:     msg.From,
			Received: msg.Received,
		},
	}
}

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
)

// StripHTML removes HTML markup and returns newline-separated plain
// text. Empty input returns the empty string.
func StripHTML(content string) string {
	if content == "" {
		return ""
	}

	// Remove non-content sections entirely
	content = scriptTag.ReplaceAllString(content, "")
	content = styleTag.ReplaceAllString(content, "")
	content = headTag.ReplaceAllString(content, "")
	content = htmlComments.ReplaceAllString(content, "")

	// Block boundaries become newlines
	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")

	// Strip all remaining tags and decode entities
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	// Collapse runs of spaces but preserve line structure
	content = multiSpaces.ReplaceAllString(content, " ")

	lines := strings.Split(content, "\n")
	var result []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}
