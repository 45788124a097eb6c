package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// TokenManager supplies bearer tokens to the HTTP layer.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// CachingTokenManager caches a single credential from a fabric.TokenProvider
// and serializes refreshes. The mutex wraps both the staleness check and the
// provider call: concurrent callers arriving during a refresh block on the
// lock and then observe the freshly stored token, so the provider is invoked
// at most once per expiry cycle regardless of request volume.
type CachingTokenManager struct {
	provider fabric.TokenProvider

	mu    sync.Mutex
	token *Token
}

// NewCachingTokenManager creates a token manager backed by provider.
func NewCachingTokenManager(provider fabric.TokenProvider) *CachingTokenManager {
	return &CachingTokenManager{provider: provider}
}

// GetToken returns the cached token, refreshing it through the provider when
// missing or stale. Provider failures are wrapped as fabric.ErrAuth.
func (m *CachingTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token.Valid() {
		return m.token.AccessToken, nil
	}

	value, expiresAt, err := m.provider.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", fabric.ErrAuth, err)
	}

	m.token = &Token{AccessToken: value, ExpiresAt: expiresAt}

	return m.token.AccessToken, nil
}

// SetToken seeds the cache, e.g. with a token restored from CLI config.
func (m *CachingTokenManager) SetToken(value string, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = &Token{AccessToken: value, ExpiresAt: expiresAt}
}

// StaticTokenManager presents a fixed token and never refreshes.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a manager around a pre-issued token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the fixed token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}
