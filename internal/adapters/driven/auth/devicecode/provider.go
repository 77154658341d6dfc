// Package devicecode implements OAuth device authorization grant sign-in
// against the Microsoft identity platform. It is the token provider behind
// the Graph connector: `login` runs the interactive flow once, then tokens
// are served silently from an on-disk cache with automatic refresh.
package devicecode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"

	"github.com/kazlabs/inboxqa-cli/internal/core/domain"
	"github.com/kazlabs/inboxqa-cli/internal/core/ports/driven"
	"github.com/kazlabs/inboxqa-cli/internal/logger"
)

// DefaultScopes cover reading mail plus the refresh token grant.
var DefaultScopes = []string{
	"https://graph.microsoft.com/Mail.Read",
	"https://graph.microsoft.com/User.Read",
	"offline_access",
}

// Provider implements driven.TokenProvider using the device code flow.
// Tokens are cached as JSON on disk and refreshed transparently.
type Provider struct {
	cfg       *oauth2.Config
	cachePath string
	notify    func(userCode, verificationURI string)

	mu sync.Mutex
}

// Option configures a Provider.
type Option func(*Provider)

// WithNotify sets the callback invoked with the user code and verification
// URI when the interactive flow starts. The default prints to stdout.
func WithNotify(fn func(userCode, verificationURI string)) Option {
	return func(p *Provider) {
		p.notify = fn
	}
}

// WithEndpoint overrides the identity platform endpoint, primarily for tests.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(p *Provider) {
		p.cfg.Endpoint = ep
	}
}

// New creates a device code token provider for the given application and
// tenant. cachePath is where the token JSON is persisted.
func New(clientID, tenant, cachePath string, opts ...Option) *Provider {
	if tenant == "" {
		tenant = "common"
	}

	base := "https://login.microsoftonline.com/" + tenant + "/oauth2/v2.0"

	p := &Provider{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Scopes:   DefaultScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:       base + "/authorize",
				TokenURL:      base + "/token",
				DeviceAuthURL: base + "/devicecode",
			},
		},
		cachePath: cachePath,
		notify: func(userCode, verificationURI string) {
			fmt.Printf("To sign in, open %s and enter the code %s\n", verificationURI, userCode)
		},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Compile-time interface check.
var _ driven.TokenProvider = (*Provider)(nil)

// Login runs the interactive device code flow and caches the resulting
// token. It blocks until the user completes sign-in or ctx expires.
func (p *Provider) Login(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	da, err := p.cfg.DeviceAuth(ctx)
	if err != nil {
		return fmt.Errorf("start device flow: %w", err)
	}

	p.notify(da.UserCode, da.VerificationURI)

	tok, err := p.cfg.DeviceAccessToken(ctx, da)
	if err != nil {
		return fmt.Errorf("complete device flow: %w", err)
	}

	if err := p.saveToken(tok); err != nil {
		return fmt.Errorf("cache token: %w", err)
	}

	logger.Info("signed in, token cached at %s", p.cachePath)
	return nil
}

// Token returns a valid access token, refreshing the cached one if it has
// expired. Returns domain.ErrAuthRequired when no cached token exists and
// domain.ErrAuthExpired when the refresh token is no longer accepted.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cached, err := p.loadToken()
	if err != nil {
		return "", err
	}

	fresh, err := p.cfg.TokenSource(ctx, cached).Token()
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", domain.ErrAuthExpired)
	}

	if fresh.AccessToken != cached.AccessToken {
		if err := p.saveToken(fresh); err != nil {
			logger.Warn("failed to persist refreshed token: %v", err)
		}
	}

	return fresh.AccessToken, nil
}

// IsAuthenticated reports whether a cached token exists. It does not
// guarantee the token is still accepted by the identity platform.
func (p *Provider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := p.loadToken()
	return err == nil
}

// Logout removes the cached token.
func (p *Provider) Logout() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := os.Remove(p.cachePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token cache: %w", err)
	}
	return nil
}

// loadToken reads the cached token. Callers must hold p.mu.
func (p *Provider) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(p.cachePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrAuthRequired
		}
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token cache: %w", err)
	}

	return &tok, nil
}

// saveToken persists the token with owner-only permissions. Callers must
// hold p.mu.
func (p *Provider) saveToken(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(p.cachePath), 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	if err := os.WriteFile(p.cachePath, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	return nil
}
