package domain

import "strings"

// Intent is the answer strategy chosen for a question. Classification
// is by substring matching on the lower-cased query; the first matching
// rule in priority order wins.
type Intent int

const (
	// IntentCount counts emails in a timeframe ("how many", "count").
	IntentCount Intent = iota

	// IntentDomain filters by the GIKI sender domain ("giki").
	IntentDomain

	// IntentMonth filters by named calendar months.
	IntentMonth

	// IntentLostFound filters message bodies for lost & found notices.
	IntentLostFound

	// IntentLatest reports the most recently received email.
	IntentLatest

	// IntentFallback delegates to the generative model.
	IntentFallback
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentCount:
		return "count"
	case IntentDomain:
		return "domain"
	case IntentMonth:
		return "month"
	case IntentLostFound:
		return "lost-found"
	case IntentLatest:
		return "latest"
	case IntentFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// monthNames maps each full month name, in calendar order, to its
// numeric value. Calendar order keeps the month-filter header stable
// regardless of the order months appear in the question.
var monthNames = []struct {
	Name   string
	Number int
}{
	{"january", 1}, {"february", 2}, {"march", 3}, {"april", 4},
	{"may", 5}, {"june", 6}, {"july", 7}, {"august", 8},
	{"september", 9}, {"october", 10}, {"november", 11}, {"december", 12},
}

// ClassifyIntent determines the answer strategy for a query. The query
// is lower-cased for matching; priority order is fixed: count, domain,
// month, lost & found, latest, then fallback. A query containing both
// "how many" and "giki" always routes to count.
func ClassifyIntent(query string) Intent {
	lower := strings.ToLower(query)
	switch {
	case strings.Contains(lower, "how many") || strings.Contains(lower, "count"):
		return IntentCount
	case strings.Contains(lower, "giki"):
		return IntentDomain
	case len(MonthsInQuery(lower)) > 0:
		return IntentMonth
	case strings.Contains(lower, "lost") || strings.Contains(lower, "found"):
		return IntentLostFound
	case strings.Contains(lower, "latest") || strings.Contains(lower, "recent"):
		return IntentLatest
	default:
		return IntentFallback
	}
}

// MonthName pairs a matched month name with its numeric value.
type MonthName struct {
	Name   string
	Number int
}

// MonthsInQuery returns the full month names present in the lower-cased
// query, in calendar order. A query can name multiple months.
func MonthsInQuery(lowerQuery string) []MonthName {
	var matched []MonthName
	for _, m := range monthNames {
		if strings.Contains(lowerQuery, m.Name) {
			matched = append(matched, MonthName{Name: m.Name, Number: m.Number})
		}
	}
	return matched
}
