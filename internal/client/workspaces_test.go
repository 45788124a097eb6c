package client

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWorkspacesClient_List(t *testing.T) {
	t.Parallel()
	t.Run("paginates the full listing", func(t *testing.T) {
		t.Parallel()

		requests := 0

		var server *httptest.Server

		server = httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			requests++

			switch requests {
			case 1:
				assert.Equal(t, "/workspaces", r.URL.Path)
				assert.Empty(t, r.URL.Query().Get("continuationToken"))
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"value":             []fabric.Workspace{{ID: "ws-1"}, {ID: "ws-2"}},
					"continuationUri":   server.URL + "/workspaces?continuationToken=tok-2",
					"continuationToken": "tok-2",
				})
			default:
				assert.Equal(t, "tok-2", r.URL.Query().Get("continuationToken"))
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"value": []fabric.Workspace{{ID: "ws-3"}},
				})
			}
		}))
		defer server.Close()

		workspaces := NewWorkspacesClient(http.NewClient(server.URL, nil), fabric.NewNoOpCache(), time.Minute)

		all, err := workspaces.List(context.Background(), nil).All()
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "ws-1", all[0].ID)
		assert.Equal(t, "ws-3", all[2].ID)
		assert.Equal(t, 2, requests)
	})

	t.Run("filters by roles", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			assert.Equal(t, "Admin,Member", r.URL.Query().Get("roles"))
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"value": []fabric.Workspace{{ID: "ws-1", DisplayName: "Analytics"}},
			})
		}))
		defer server.Close()

		workspaces := NewWorkspacesClient(http.NewClient(server.URL, nil), fabric.NewNoOpCache(), time.Minute)

		all, err := workspaces.List(context.Background(), &fabric.WorkspaceListOptions{
			Roles: []string{"Admin", "Member"},
		}).All()
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Analytics", all[0].DisplayName)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestWorkspacesClient_Get(t *testing.T) {
	t.Parallel()
	t.Run("fetches workspace details", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			assert.Equal(t, "/workspaces/ws-1", r.URL.Path)
			_ = json.NewEncoder(w).Encode(fabric.WorkspaceInfo{
				ID:          "ws-1",
				DisplayName: "Analytics",
				Type:        fabric.WorkspaceTypeDefault,
				CapacityID:  "cap-1",
			})
		}))
		defer server.Close()

		workspaces := NewWorkspacesClient(http.NewClient(server.URL, nil), fabric.NewNoOpCache(), time.Minute)

		info, err := workspaces.Get(context.Background(), "ws-1")
		require.NoError(t, err)
		assert.Equal(t, "Analytics", info.DisplayName)
		assert.Equal(t, "cap-1", info.CapacityID)
	})

	t.Run("empty workspace ID", func(t *testing.T) {
		t.Parallel()

		workspaces := NewWorkspacesClient(http.NewClient("https://unused.example.com", nil), fabric.NewNoOpCache(), time.Minute)

		_, err := workspaces.Get(context.Background(), "")
		require.ErrorIs(t, err, fabric.ErrWorkspaceIDRequired)
	})

	t.Run("serves repeated reads from cache", func(t *testing.T) {
		t.Parallel()

		requests := 0

		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			requests++

			w.Header().Set("ETag", "v7")
			_ = json.NewEncoder(w).Encode(fabric.WorkspaceInfo{ID: "ws-1", DisplayName: "Analytics"})
		}))
		defer server.Close()

		cache := fabric.NewMemoryCache(10)
		workspaces := NewWorkspacesClient(http.NewClient(server.URL, nil), cache, time.Minute)

		first, err := workspaces.Get(context.Background(), "ws-1")
		require.NoError(t, err)

		second, err := workspaces.Get(context.Background(), "ws-1")
		require.NoError(t, err)

		assert.Equal(t, 1, requests)
		assert.Equal(t, first.DisplayName, second.DisplayName)

		entry, err := cache.Get(context.Background(), "/workspaces/ws-1")
		require.NoError(t, err)
		assert.Equal(t, "v7", entry.ETag)
	})

	t.Run("expired cache entry triggers a refetch", func(t *testing.T) {
		t.Parallel()

		requests := 0

		server := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			requests++
			_ = json.NewEncoder(w).Encode(fabric.WorkspaceInfo{ID: "ws-1"})
		}))
		defer server.Close()

		cache := fabric.NewMemoryCache(10)
		workspaces := NewWorkspacesClient(http.NewClient(server.URL, nil), cache, -time.Second)

		_, err := workspaces.Get(context.Background(), "ws-1")
		require.NoError(t, err)

		_, err = workspaces.Get(context.Background(), "ws-1")
		require.NoError(t, err)

		assert.Equal(t, 2, requests)
	})
}
