package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// WorkspacesClient implements fabric.WorkspacesClient.
type WorkspacesClient struct {
	httpClient *http.Client
	cache      fabric.Cache
	cacheTTL   time.Duration
}

// NewWorkspacesClient creates a new workspaces client.
func NewWorkspacesClient(httpClient *http.Client, cache fabric.Cache, cacheTTL time.Duration) *WorkspacesClient {
	return &WorkspacesClient{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// List implements fabric.WorkspacesClient.List.
func (c *WorkspacesClient) List(ctx context.Context, opts *fabric.WorkspaceListOptions) *fabric.ItemIterator[fabric.Workspace] {
	query := url.Values{}
	if opts != nil && len(opts.Roles) > 0 {
		query.Set("roles", strings.Join(opts.Roles, ","))
	}

	pages := fabric.NewPageIterator(ctx, &pageFetcher{httpClient: c.httpClient}, "/workspaces", query)

	return fabric.NewItemIterator[fabric.Workspace](pages)
}

// Get implements fabric.WorkspacesClient.Get. Single-workspace reads go
// through the response cache; listings and operations never do.
func (c *WorkspacesClient) Get(ctx context.Context, workspaceID string) (*fabric.WorkspaceInfo, error) {
	if workspaceID == "" {
		return nil, fabric.ErrWorkspaceIDRequired
	}

	path := "/workspaces/" + workspaceID

	var info fabric.WorkspaceInfo

	if entry, err := c.cache.Get(ctx, path); err == nil {
		err = json.Unmarshal(entry.Data, &info)
		if err == nil {
			return &info, nil
		}
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting workspace: %w", err)
	}

	err = json.Unmarshal(resp.Body, &info)
	if err != nil {
		return nil, fmt.Errorf("parsing workspace: %w", err)
	}

	_ = c.cache.Set(ctx, path, &fabric.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      resp.Headers.Get("ETag"),
	})

	return &info, nil
}
