package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIntent_PriorityOrder(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"how many", "How many emails today?", IntentCount},
		{"count", "count my unread mail", IntentCount},
		{"count beats giki", "how many emails from giki?", IntentCount},
		{"count beats month", "count emails in march", IntentCount},
		{"giki", "emails from GIKI please", IntentDomain},
		{"giki beats month", "giki emails in march", IntentDomain},
		{"month", "emails received in September", IntentMonth},
		{"month beats lost", "lost items reported in june", IntentMonth},
		{"lost", "did anyone lose keys? lost and such", IntentLostFound},
		{"found", "was my wallet found?", IntentLostFound},
		{"latest", "what's my latest email", IntentLatest},
		{"recent", "show recent messages", IntentLatest},
		{"fallback", "summarise the fee notices", IntentFallback},
		{"empty", "", IntentFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.query))
		})
	}
}

func TestMonthsInQuery_CalendarOrder(t *testing.T) {
	months := MonthsInQuery("emails between december and january")
	assert.Equal(t, []MonthName{{"january", 1}, {"december", 12}}, months)
}

func TestMonthsInQuery_NoMonths(t *testing.T) {
	assert.Empty(t, MonthsInQuery("nothing seasonal here"))
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "count", IntentCount.String())
	assert.Equal(t, "fallback", IntentFallback.String())
	assert.Equal(t, "unknown", Intent(99).String())
}
