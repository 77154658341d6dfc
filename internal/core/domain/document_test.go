package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReceived(t *testing.T) {
	tests := []struct {
		name     string
		received string
		ok       bool
		want     time.Time
	}{
		{
			name:     "zulu suffix",
			received: "2025-01-05T10:00:00Z",
			ok:       true,
			want:     time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "explicit offset",
			received: "2025-01-05T15:00:00+05:00",
			ok:       true,
			want:     time.Date(2025, time.January, 5, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "fractional seconds",
			received: "2025-01-05T10:00:00.1234567Z",
			ok:       true,
			want:     time.Date(2025, time.January, 5, 10, 0, 0, 123456700, time.UTC),
		},
		{name: "empty", received: "", ok: false},
		{name: "garbage", received: "not-a-date", ok: false},
		{name: "partial", received: "2025-13-45", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseReceived(tt.received)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDocument_ReceivedTime(t *testing.T) {
	doc := Document{
		Metadata: EmailMetadata{Received: "2025-03-01T08:30:00Z"},
	}
	got, ok := doc.ReceivedTime()
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())

	_, ok = Document{}.ReceivedTime()
	assert.False(t, ok)
}
