package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle caching and refresh transparently: a cached
// token is reused silently and refreshed when expired; only when no
// usable token exists does the provider start an interactive sign-in.
type TokenProvider interface {
	// Token returns a valid access token.
	Token(ctx context.Context) (string, error)

	// IsAuthenticated returns true if a usable cached token exists
	// without starting an interactive sign-in.
	IsAuthenticated() bool
}
