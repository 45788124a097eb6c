package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidemark-io/fabric-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrTokenRequestFailed = errors.New("token request failed")
	ErrEmptyAccessToken   = errors.New("token endpoint returned an empty access token")
)

// ClientCredentialsConfig configures the AAD client-credentials grant.
type ClientCredentialsConfig struct {
	// TokenURL is the full OAuth2 token endpoint. Derived from TenantID
	// when empty.
	TokenURL string

	TenantID     string
	ClientID     string
	ClientSecret string

	// Scope defaults to the Fabric API scope.
	Scope string
}

// ClientCredentialsProvider implements fabric.TokenProvider using the OAuth2
// client_credentials grant against Azure AD.
type ClientCredentialsProvider struct {
	config     *ClientCredentialsConfig
	httpClient *http.Client
}

// NewClientCredentialsProvider creates a provider for the given config.
func NewClientCredentialsProvider(config *ClientCredentialsConfig) *ClientCredentialsProvider {
	return &ClientCredentialsProvider{
		config: config,
		httpClient: &http.Client{
			Timeout: constants.ShortHTTPTimeout,
		},
	}
}

// tokenURL returns the configured endpoint or the tenant's v2.0 endpoint.
func (p *ClientCredentialsProvider) tokenURL() string {
	if p.config.TokenURL != "" {
		return p.config.TokenURL
	}

	return "https://login.microsoftonline.com/" + p.config.TenantID + "/oauth2/v2.0/token"
}

// GetToken requests a fresh access token. The caching token manager decides
// when to call this; the provider itself performs no caching.
func (p *ClientCredentialsProvider) GetToken(ctx context.Context) (string, time.Time, error) {
	scope := p.config.Scope
	if scope == "" {
		scope = constants.AADScope
	}

	form := url.Values{
		"grant_type": []string{"client_credentials"},
		"scope":      []string{scope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.config.ClientID, p.config.ClientSecret)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("requesting token: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("%w with status %d: %s", ErrTokenRequestFailed, resp.StatusCode, string(body))
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return "", time.Time{}, ErrEmptyAccessToken
	}

	expiresAt := time.Time{}
	if token.ExpiresIn > 0 {
		expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	return token.AccessToken, expiresAt, nil
}
