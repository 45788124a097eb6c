package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCredentialsProvider_GetToken(t *testing.T) {
	t.Run("requests token with client credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/oauth2/v2.0/token", r.URL.Path)
			assert.Equal(t, "POST", r.Method)

			username, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "client-id", username)
			assert.Equal(t, "client-secret", password)

			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))
			assert.Equal(t, "https://api.fabric.microsoft.com/.default", r.Form.Get("scope"))

			response := Token{
				AccessToken: "issued-token",
				TokenType:   "Bearer",
				ExpiresIn:   3600,
			}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		provider := NewClientCredentialsProvider(&ClientCredentialsConfig{
			TokenURL:     server.URL + "/oauth2/v2.0/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		})

		token, expiresAt, err := provider.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "issued-token", token)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 10*time.Second)
	})

	t.Run("custom scope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "custom/.default", r.Form.Get("scope"))

			_ = json.NewEncoder(w).Encode(Token{AccessToken: "scoped-token", ExpiresIn: 60})
		}))
		defer server.Close()

		provider := NewClientCredentialsProvider(&ClientCredentialsConfig{
			TokenURL: server.URL,
			Scope:    "custom/.default",
		})

		token, _, err := provider.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "scoped-token", token)
	})

	t.Run("non-200 response fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
		}))
		defer server.Close()

		provider := NewClientCredentialsProvider(&ClientCredentialsConfig{TokenURL: server.URL})

		_, _, err := provider.GetToken(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenRequestFailed)
		assert.Contains(t, err.Error(), "invalid_client")
	})

	t.Run("empty access token fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(Token{})
		}))
		defer server.Close()

		provider := NewClientCredentialsProvider(&ClientCredentialsConfig{TokenURL: server.URL})

		_, _, err := provider.GetToken(context.Background())
		require.ErrorIs(t, err, ErrEmptyAccessToken)
	})

	t.Run("derives tenant token URL", func(t *testing.T) {
		provider := NewClientCredentialsProvider(&ClientCredentialsConfig{TenantID: "my-tenant"})

		assert.Equal(t, "https://login.microsoftonline.com/my-tenant/oauth2/v2.0/token", provider.tokenURL())
	})
}
