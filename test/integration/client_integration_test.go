package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
	"github.com/tidemark-io/fabric-client/pkg/fabricclient"
)

// fakeFabric is an in-process stand-in for the Fabric API: an AAD token
// endpoint, a paginated workspace listing, and a long-running git status
// operation.
type fakeFabric struct {
	server      *httptest.Server
	tokenIssued atomic.Int64
	statusPolls atomic.Int64
}

func newFakeFabric(t *testing.T) *fakeFabric {
	t.Helper()

	fake := &fakeFabric{}
	mux := http.NewServeMux()
	fake.server = httptest.NewServer(mux)
	t.Cleanup(fake.server.Close)

	mux.HandleFunc("/tenant-1/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		fake.tokenIssued.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "issued-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})

	mux.HandleFunc("/workspaces", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(fabric.ErrorResponse{ErrorCode: "Unauthorized"})

			return
		}

		if r.URL.Query().Get("continuationToken") == "tok-2" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"value": []fabric.Workspace{{ID: "ws-3", DisplayName: "Third"}},
			})

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []fabric.Workspace{
				{ID: "ws-1", DisplayName: "First"},
				{ID: "ws-2", DisplayName: "Second"},
			},
			"continuationUri":   fake.server.URL + "/workspaces?continuationToken=tok-2",
			"continuationToken": "tok-2",
		})
	})

	mux.HandleFunc("/workspaces/ws-1/git/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ms-operation-id", "op-1")
		w.Header().Set("Retry-After", "0")
		w.Header().Set("Location", fake.server.URL+"/operations/op-1")
		w.WriteHeader(http.StatusAccepted)
	})

	mux.HandleFunc("/operations/op-1", func(w http.ResponseWriter, r *http.Request) {
		switch fake.statusPolls.Add(1) {
		case 1:
			w.Header().Set("Retry-After", "0")
			_ = json.NewEncoder(w).Encode(fabric.OperationState{Status: fabric.OperationRunning})
		case 2:
			w.Header().Set("Retry-After", "0")
			_ = json.NewEncoder(w).Encode(fabric.OperationState{Status: fabric.OperationSucceeded})
		default:
			_ = json.NewEncoder(w).Encode(fabric.GitStatusResponse{WorkspaceHead: "abc123"})
		}
	})

	return fake
}

func newFakeClient(t *testing.T, fake *fakeFabric) fabric.Client {
	t.Helper()

	client, err := fabricclient.New(context.Background(), &fabric.Config{
		APIEndpoint:  fake.server.URL,
		TokenURL:     fake.server.URL + "/tenant-1/oauth2/v2.0/token",
		TenantID:     "tenant-1",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Cache:        &fabric.CacheConfig{Type: fabric.CacheTypeMemory},
	})
	require.NoError(t, err)

	return client
}

func TestEndToEnd_WorkspaceListing(t *testing.T) {
	t.Parallel()

	fake := newFakeFabric(t)
	client := newFakeClient(t, fake)

	workspaces, err := client.Workspaces().List(context.Background(), nil).All()
	require.NoError(t, err)
	require.Len(t, workspaces, 3)
	assert.Equal(t, "ws-1", workspaces[0].ID)
	assert.Equal(t, "ws-3", workspaces[2].ID)

	// Both pages ran on a single issued token.
	assert.Equal(t, int64(1), fake.tokenIssued.Load())
}

func TestEndToEnd_GitStatusOperation(t *testing.T) {
	t.Parallel()

	fake := newFakeFabric(t)
	client := newFakeClient(t, fake)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	status, err := client.Git("ws-1").Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", status.WorkspaceHead)

	// Two status polls plus the final result fetch.
	assert.Equal(t, int64(3), fake.statusPolls.Load())
}
