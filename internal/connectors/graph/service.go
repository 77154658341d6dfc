package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Graph v1.0 endpoint.
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"

	// messageSelect projects only the fields the pipeline consumes,
	// keeping response payloads small.
	messageSelect = "subject,body,bodyPreview,from,receivedDateTime"

	// defaultPageSize is the $top value per page request.
	defaultPageSize = 50

	// maxRetries bounds retry attempts for transient failures.
	maxRetries = 5

	// requestTimeout caps a single HTTP round trip.
	requestTimeout = 60 * time.Second
)

// Client fetches mail from the Microsoft Graph API. It implements
// driven.MailSource by listing /me/messages with cursor pagination,
// retrying transient server errors with exponential backoff and
// honouring Retry-After on throttling responses.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     driven.TokenProvider
	limiter    *RateLimiter
	backoff    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the Graph endpoint, primarily for tests.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimiter overrides the default rate limiter.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(c *Client) {
		c.limiter = rl
	}
}

// WithBackoff overrides the base retry backoff, primarily for tests.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient creates a Graph client authenticated by the given token provider.
func NewClient(tokens driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    DefaultBaseURL,
		tokens:     tokens,
		limiter:    NewRateLimiter(),
		backoff:    time.Second,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile-time interface check.
var _ driven.MailSource = (*Client)(nil)

// ListMessages returns up to top messages from the signed-in user's inbox,
// newest first, following @odata.nextLink until the budget is met or the
// collection is exhausted.
func (c *Client) ListMessages(ctx context.Context, top int) ([]domain.Message, error) {
	if top <= 0 {
		top = defaultPageSize
	}

	pageSize := defaultPageSize
	if top < pageSize {
		pageSize = top
	}

	q := url.Values{}
	q.Set("$select", messageSelect)
	q.Set("$top", strconv.Itoa(pageSize))
	next := c.baseURL + "/me/messages?" + q.Encode()

	var messages []domain.Message

	for next != "" && len(messages) < top {
		var page messagePage
		if err := c.getJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}

		for _, gm := range page.Value {
			messages = append(messages, gm.toDomain())
			if len(messages) >= top {
				break
			}
		}

		logger.Debug("graph: fetched page with %d message(s), total %d", len(page.Value), len(messages))
		next = page.NextLink
	}

	return messages, nil
}

// AccountIdentifier returns the signed-in user's principal name, falling
// back to the mail attribute when the UPN is unset.
func (c *Client) AccountIdentifier(ctx context.Context) (string, error) {
	var profile userProfile
	if err := c.getJSON(ctx, c.baseURL+"/me", &profile); err != nil {
		return "", fmt.Errorf("fetch user profile: %w", err)
	}

	if profile.UserPrincipalName != "" {
		return profile.UserPrincipalName, nil
	}

	return profile.Mail, nil
}

// getJSON performs an authenticated GET with rate limiting and retries,
// decoding the response body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff * time.Duration(1<<(attempt-1))
			logger.Debug("graph: retrying in %s (attempt %d/%d)", backoff, attempt+1, maxRetries)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		done, err := c.doOnce(ctx, rawURL, out)
		if done {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

// doOnce performs a single request. The first return value reports whether
// the outcome is final; false means the caller should retry.
func (c *Client) doOnce(ctx context.Context, rawURL string, out any) (bool, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return true, fmt.Errorf("acquire token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return true, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	// Graph occasionally truncates compressed bodies behind some proxies.
	req.Header.Set("Accept-Encoding", "identity")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network errors are transient: retry.
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return true, fmt.Errorf("decode response: %w", err)
		}
		return true, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
		logger.Warn("graph: throttled, backing off %d second(s)", retryAfter)
		return false, ErrRateLimited

	case isRetryable(resp.StatusCode):
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, wrapStatus(resp.StatusCode, string(body))

	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return true, wrapStatus(resp.StatusCode, string(body))
	}
}

// parseRetryAfter reads a Retry-After header value in seconds.
func parseRetryAfter(v string) int {
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return secs
}
