// Package fabricclient provides the main entry point for creating Fabric
// API clients.
package fabricclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidemark-io/fabric-client/internal/auth"
	"github.com/tidemark-io/fabric-client/internal/client"
	"github.com/tidemark-io/fabric-client/internal/constants"
	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// New creates a new Fabric API client from config.
func New(ctx context.Context, config *fabric.Config) (fabric.Client, error) {
	if config == nil {
		return nil, fabric.ErrConfigRequired
	}

	endpoint := normalizeEndpoint(config.APIEndpoint)

	tokenManager, err := createTokenManager(config)
	if err != nil {
		return nil, err
	}

	httpClient := http.NewClient(endpoint, tokenManager, createHTTPOptions(config)...)

	cache, err := fabric.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("creating response cache: %w", err)
	}

	cacheTTL := fabric.DefaultCacheTTL
	if config.Cache != nil && config.Cache.TTL > 0 {
		cacheTTL = config.Cache.TTL
	}

	return client.New(httpClient, cache, cacheTTL), nil
}

// normalizeEndpoint trims trailing slashes and applies the production
// default when no endpoint is configured.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return constants.DefaultAPIEndpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// createTokenManager selects the token source based on available credentials.
func createTokenManager(config *fabric.Config) (auth.TokenManager, error) {
	if config.TokenProvider != nil {
		return auth.NewCachingTokenManager(config.TokenProvider), nil
	}

	if config.AccessToken != "" {
		return auth.NewStaticTokenManager(config.AccessToken), nil
	}

	if config.ClientID != "" && config.ClientSecret != "" {
		if config.TenantID == "" && config.TokenURL == "" {
			return nil, fabric.ErrTenantIDRequired
		}

		provider := auth.NewClientCredentialsProvider(&auth.ClientCredentialsConfig{
			TokenURL:     config.TokenURL,
			TenantID:     config.TenantID,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
		})

		return auth.NewCachingTokenManager(provider), nil
	}

	return nil, fabric.ErrNoTokenConfigured
}

// createHTTPOptions builds HTTP client options from config.
func createHTTPOptions(config *fabric.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := constants.DefaultRetryWaitMin
		waitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			waitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			waitMax = config.RetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}
