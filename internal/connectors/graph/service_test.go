package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

type staticTokens struct {
	token string
	err   error
}

func (s *staticTokens) Token(_ context.Context) (string, error) {
	return s.token, s.err
}

func (s *staticTokens) IsAuthenticated() bool {
	return s.err == nil
}

func fastLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 10000, BurstSize: 10000})
}

func newTestClient(serverURL string) *Client {
	return NewClient(&staticTokens{token: "test-token"},
		WithBaseURL(serverURL),
		WithRateLimiter(fastLimiter()),
		WithBackoff(time.Millisecond),
	)
}

func TestListMessagesSinglePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, messageSelect, r.URL.Query().Get("$select"))

		fmt.Fprint(w, `{
			"value": [
				{
					"id": "m1",
					"subject": "Standup notes",
					"bodyPreview": "Notes from today",
					"body": {"contentType": "html", "content": "<p>Notes</p>"},
					"from": {"emailAddress": {"name": "Ali", "address": "ali@example.com"}},
					"receivedDateTime": "2025-01-15T09:30:00Z"
				}
			]
		}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	msgs, err := client.ListMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "Standup notes", msgs[0].Subject)
	assert.Equal(t, "ali@example.com", msgs[0].From)
	assert.Equal(t, "<p>Notes</p>", msgs[0].BodyHTML)
	assert.Equal(t, "2025-01-15T09:30:00Z", msgs[0].Received)
}

func TestListMessagesFollowsNextLink(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `{"value": [{"id": "m2", "subject": "Second"}]}`)
			return
		}
		fmt.Fprintf(w, `{
			"value": [{"id": "m1", "subject": "First"}],
			"@odata.nextLink": %q
		}`, srv.URL+"/me/messages?page=2")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	msgs, err := client.ListMessages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m2", msgs[1].ID)
}

func TestListMessagesStopsAtTop(t *testing.T) {
	var srv *httptest.Server
	pages := 0
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		pages++
		fmt.Fprintf(w, `{
			"value": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
			"@odata.nextLink": %q
		}`, srv.URL+"/me/messages?more=1")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	msgs, err := client.ListMessages(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
	assert.Equal(t, 1, pages)
}

func TestListMessagesRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"value": [{"id": "m1"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	msgs, err := client.ListMessages(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
	assert.Equal(t, 3, attempts)
}

func TestListMessagesUnauthorizedIsFinal(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, err := client.ListMessages(context.Background(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, attempts)
}

func TestListMessagesTokenErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("server should not be reached without a token")
	}))
	defer srv.Close()

	client := NewClient(&staticTokens{err: fmt.Errorf("no cached token")},
		WithBaseURL(srv.URL),
		WithRateLimiter(fastLimiter()),
	)

	_, err := client.ListMessages(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire token")
}

func TestThrottlingMapsToDomainError(t *testing.T) {
	err := wrapStatus(http.StatusTooManyRequests, "")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestAccountIdentifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		fmt.Fprint(w, `{"userPrincipalName": "me@giki.edu.pk", "mail": "me@giki.edu.pk"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	id, err := client.AccountIdentifier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me@giki.edu.pk", id)
}

func TestAccountIdentifierFallsBackToMail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"mail": "me@example.com"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	id, err := client.AccountIdentifier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", id)
}
