package graph

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
)

// Common Graph API errors.
var (
	// ErrUnauthorized indicates an invalid or expired token.
	ErrUnauthorized = errors.New("graph: unauthorised (invalid or expired token)")

	// ErrForbidden indicates the token lacks the Mail.Read scope.
	ErrForbidden = errors.New("graph: forbidden (insufficient scopes)")

	// ErrRateLimited indicates Graph throttling (429). It wraps
	// domain.ErrRateLimited so callers can match without importing
	// this package.
	ErrRateLimited = fmt.Errorf("graph: rate limit exceeded: %w", domain.ErrRateLimited)
)

// StatusError carries a non-success HTTP status from Graph.
type StatusError struct {
	// Code is the HTTP status code.
	Code int

	// Body is the response body, truncated for logging.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("graph: request failed with status %d: %s", e.Code, e.Body)
}

// wrapStatus converts an HTTP status into a package error.
func wrapStatus(code int, body string) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &StatusError{Code: code, Body: body}
	}
}

// isRetryable reports whether a status code is worth retrying.
// Matches the transient server errors Graph is known to emit.
func isRetryable(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
