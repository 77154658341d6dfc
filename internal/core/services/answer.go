package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driving"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// gikiDomain is the fixed sender domain for the GIKI filter. This is a
// deliberate hard-coded business rule, not a general domain extractor.
const gikiDomain = "giki.edu.pk"

// AnswerService routes questions to keyword-based answer strategies
// over retrieved email documents, falling back to the generative model
// when no rule matches. It is stateless per call apart from the clock.
type AnswerService struct {
	retriever driven.Retriever
	llm       driven.LLMService
	now       func() time.Time
}

// NewAnswerService creates a new answer service.
// The llm parameter is optional (can be nil); without it the fallback
// strategy returns domain.ErrLLMUnavailable.
func NewAnswerService(retriever driven.Retriever, llm driven.LLMService) *AnswerService {
	return &AnswerService{
		retriever: retriever,
		llm:       llm,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the UTC wall-clock used for relative date math.
// Intended for tests.
func (s *AnswerService) SetClock(now func() time.Time) {
	s.now = now
}

// Retrieve returns the top retrieved documents for a query without
// answering. Used by the docs command and the MCP retrieve tool.
func (s *AnswerService) Retrieve(ctx context.Context, query string) ([]domain.Document, error) {
	if s.retriever == nil {
		return nil, domain.ErrRetrieverUnavailable
	}
	docs, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}
	return docs, nil
}

// Answer classifies the question, filters the retrieved candidate set
// per the matched strategy and formats a human-readable answer. Empty
// results produce an explanatory message, never an error; only
// collaborator failures propagate.
func (s *AnswerService) Answer(ctx context.Context, query string) (string, error) {
	logger.Section("Question Answering")
	logger.Debug("Query: %q", query)

	if s.retriever == nil {
		return "", domain.ErrRetrieverUnavailable
	}

	// One retrieval call per question; every strategy filters this
	// fixed candidate set.
	docs, err := s.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", fmt.Errorf("retrieve: %w", err)
	}
	logger.Debug("Candidate set: %d documents", len(docs))

	lower := strings.ToLower(query)
	intent := domain.ClassifyIntent(query)
	logger.Info("Intent: %s", intent)

	switch intent {
	case domain.IntentCount:
		return s.answerCount(lower, docs), nil
	case domain.IntentDomain:
		return s.answerGIKI(docs), nil
	case domain.IntentMonth:
		return s.answerMonths(lower, docs), nil
	case domain.IntentLostFound:
		return s.answerLostFound(docs), nil
	case domain.IntentLatest:
		return s.answerLatest(docs), nil
	default:
		return s.answerGenerative(ctx, query, docs)
	}
}

// answerCount counts candidates matching the timeframe keywords in the
// query. Clauses are evaluated independently: a document is counted
// once per clause it satisfies, so it can be double-counted when the
// query names overlapping timeframes. Documents without a parseable
// received timestamp are skipped silently.
func (s *AnswerService) answerCount(lowerQuery string, docs []domain.Document) string {
	now := s.now()
	today := dateOnly(now)

	hasToday := strings.Contains(lowerQuery, "today")
	hasYesterday := strings.Contains(lowerQuery, "yesterday")
	hasWeek := strings.Contains(lowerQuery, "week")
	hasMonth := strings.Contains(lowerQuery, "month")

	count := 0
	var matched []domain.Document
	for _, d := range docs {
		dt, ok := d.ReceivedTime()
		if !ok {
			continue
		}
		day := dateOnly(dt.UTC())

		if hasToday && day.Equal(today) {
			count++
			matched = append(matched, d)
		}
		if hasYesterday && day.Equal(today.AddDate(0, 0, -1)) {
			count++
			matched = append(matched, d)
		}
		if hasWeek && !day.Before(today.AddDate(0, 0, -7)) {
			count++
			matched = append(matched, d)
		}
		if hasMonth && dt.UTC().Month() == now.Month() {
			count++
			matched = append(matched, d)
		}
	}

	logger.Debug("Count intent: %d clause matches", count)
	if count == 0 {
		return "You didn't receive any emails matching that timeframe."
	}

	// A set has no defined iteration order; the sender list order is
	// deliberately unspecified.
	senderSet := make(map[string]struct{})
	for _, d := range matched {
		from := d.Metadata.From
		if from == "" {
			from = "unknown"
		}
		senderSet[from] = struct{}{}
	}
	senders := make([]string, 0, len(senderSet))
	for from := range senderSet {
		senders = append(senders, from)
	}

	shown := senders
	if len(shown) > 5 {
		shown = shown[:5]
	}
	list := strings.Join(shown, ", ")
	if len(senders) > 5 {
		list += "..."
	}
	return fmt.Sprintf("You received %d email(s). Some senders include: %s", count, list)
}

// answerGIKI filters candidates whose sender belongs to the fixed GIKI
// domain.
func (s *AnswerService) answerGIKI(docs []domain.Document) string {
	var matched []domain.Document
	for _, d := range docs {
		if strings.Contains(strings.ToLower(d.Metadata.From), gikiDomain) {
			matched = append(matched, d)
		}
	}
	logger.Debug("GIKI filter: %d matches", len(matched))
	if len(matched) == 0 {
		return "No GIKI emails found."
	}
	return "Emails from GIKI:\n" + formatBlocks(matched, 5)
}

// answerMonths filters candidates received in any of the months named
// in the query, irrespective of year. Documents with an unparseable
// timestamp are excluded silently.
func (s *AnswerService) answerMonths(lowerQuery string, docs []domain.Document) string {
	months := domain.MonthsInQuery(lowerQuery)
	wanted := make(map[int]struct{}, len(months))
	names := make([]string, 0, len(months))
	for _, m := range months {
		wanted[m.Number] = struct{}{}
		names = append(names, m.Name)
	}
	joined := strings.Join(names, " and ")

	var matched []domain.Document
	for _, d := range docs {
		dt, ok := d.ReceivedTime()
		if !ok {
			continue
		}
		if _, want := wanted[int(dt.Month())]; want {
			matched = append(matched, d)
		}
	}
	logger.Debug("Month filter (%s): %d matches", joined, len(matched))
	if len(matched) == 0 {
		return fmt.Sprintf("No emails found between %s.", joined)
	}
	return fmt.Sprintf("Emails between %s — found %d result(s):\n\n%s",
		joined, len(matched), formatBlocks(matched, 8))
}

// answerLostFound filters candidates by body text rather than metadata.
func (s *AnswerService) answerLostFound(docs []domain.Document) string {
	var matched []domain.Document
	for _, d := range docs {
		content := strings.ToLower(d.Content)
		if strings.Contains(content, "lost") || strings.Contains(content, "found") {
			matched = append(matched, d)
		}
	}
	logger.Debug("Lost & found filter: %d matches", len(matched))
	if len(matched) == 0 {
		return "No lost or found related emails found."
	}
	return "Lost & Found related emails:\n" + formatBlocks(matched, 5)
}

// answerLatest reports the candidate with the lexicographically
// greatest received string. This is a string comparison, not a
// parsed-date comparison; ISO-8601 strings with a consistent offset
// sort chronologically, mixed offsets may not.
func (s *AnswerService) answerLatest(docs []domain.Document) string {
	var latest *domain.Document
	for i := range docs {
		if docs[i].Metadata.Received == "" {
			continue
		}
		if latest == nil || docs[i].Metadata.Received > latest.Metadata.Received {
			latest = &docs[i]
		}
	}
	if latest == nil {
		return "I couldn't find any recent emails."
	}
	return fmt.Sprintf("Latest email was from %s with subject '%s' received on %s.",
		latest.Metadata.From, latest.Metadata.Subject, latest.Metadata.Received)
}

// answerGenerative embeds the full candidate set into a prompt and
// invokes the generative model once. No retry and no context-size
// truncation; model failures surface to the caller.
func (s *AnswerService) answerGenerative(ctx context.Context, query string, docs []domain.Document) (string, error) {
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf("Answer based on these email snippets: %s\n\nQuestion: %s",
		renderSnippets(docs), query)
	logger.Debug("Fallback prompt: %d characters", len(prompt))

	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.2})
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// formatBlocks renders up to limit documents as From/Subject/Received
// blocks joined by newlines.
func formatBlocks(docs []domain.Document, limit int) string {
	if len(docs) > limit {
		docs = docs[:limit]
	}
	blocks := make([]string, len(docs))
	for i, d := range docs {
		blocks[i] = fmt.Sprintf("From: %s\nSubject: %s\nReceived: %s\n",
			d.Metadata.From, d.Metadata.Subject, d.Metadata.Received)
	}
	return strings.Join(blocks, "\n")
}

// renderSnippets renders the candidate documents for the fallback
// prompt, metadata first, separated by a rule.
func renderSnippets(docs []domain.Document) string {
	blocks := make([]string, len(docs))
	for i, d := range docs {
		blocks[i] = fmt.Sprintf("From: %s\nSubject: %s\nReceived: %s\n%s",
			d.Metadata.From, d.Metadata.Subject, d.Metadata.Received, d.Content)
	}
	return strings.Join(blocks, "\n---\n")
}

// dateOnly truncates a time to its calendar date, preserving UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
