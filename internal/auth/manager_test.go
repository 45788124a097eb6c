package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// countingProvider issues sequentially numbered tokens and counts calls.
type countingProvider struct {
	calls    atomic.Int64
	expiry   time.Duration
	failWith error
}

func (p *countingProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	n := p.calls.Add(1)
	if p.failWith != nil {
		return "", time.Time{}, p.failWith
	}

	return fmt.Sprintf("token-%d", n), time.Now().Add(p.expiry), nil
}

func TestCachingTokenManager_ReusesValidToken(t *testing.T) {
	t.Parallel()

	provider := &countingProvider{expiry: time.Hour}
	manager := NewCachingTokenManager(provider)

	first, err := manager.GetToken(context.Background())
	require.NoError(t, err)

	const concurrency = 20

	var waitGroup sync.WaitGroup

	tokens := make([]string, concurrency)

	for i := 0; i < concurrency; i++ {
		i := i
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			token, err := manager.GetToken(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}()
	}

	waitGroup.Wait()

	// The warm-up call is the only provider invocation; every concurrent
	// caller observed the cached credential.
	assert.Equal(t, int64(1), provider.calls.Load())

	for _, token := range tokens {
		assert.Equal(t, first, token)
	}
}

func TestCachingTokenManager_SerializesRefresh(t *testing.T) {
	t.Parallel()

	provider := &countingProvider{expiry: time.Hour}
	manager := NewCachingTokenManager(provider)

	const concurrency = 20

	var waitGroup sync.WaitGroup

	tokens := make([]string, concurrency)

	for i := 0; i < concurrency; i++ {
		i := i
		waitGroup.Add(1)

		go func() {
			defer waitGroup.Done()

			token, err := manager.GetToken(context.Background())
			assert.NoError(t, err)
			tokens[i] = token
		}()
	}

	waitGroup.Wait()

	// Cold cache plus N concurrent callers must still produce exactly one
	// provider call, with every caller seeing that call's token.
	require.Equal(t, int64(1), provider.calls.Load())

	for _, token := range tokens {
		assert.Equal(t, tokens[0], token)
	}
}

func TestCachingTokenManager_RefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	provider := &countingProvider{expiry: time.Hour}
	manager := NewCachingTokenManager(provider)

	manager.SetToken("stale", time.Now().Add(-time.Minute))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "stale", token)
	assert.Equal(t, int64(1), provider.calls.Load())
}

func TestCachingTokenManager_RefreshesTokenInsideBuffer(t *testing.T) {
	t.Parallel()

	provider := &countingProvider{expiry: time.Hour}
	manager := NewCachingTokenManager(provider)

	// Not yet expired, but inside the expiration buffer.
	manager.SetToken("nearly-stale", time.Now().Add(10*time.Second))

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "nearly-stale", token)
}

func TestCachingTokenManager_WrapsProviderFailure(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("identity service unreachable")
	provider := &countingProvider{failWith: providerErr}
	manager := NewCachingTokenManager(provider)

	_, err := manager.GetToken(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fabric.ErrAuth)
	assert.ErrorIs(t, err, providerErr)
}

func TestStaticTokenManager(t *testing.T) {
	t.Parallel()

	manager := NewStaticTokenManager("fixed-token")

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fixed-token", token)
}
