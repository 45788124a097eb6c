// Package client implements the fabric.Client interface.
package client

import (
	"time"

	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// Client implements fabric.Client.
type Client struct {
	httpClient *http.Client
	cache      fabric.Cache
	cacheTTL   time.Duration

	workspaces *WorkspacesClient
	operations *OperationsClient
}

// New creates a client on top of an authenticated HTTP client. cache may be
// nil to disable response caching.
func New(httpClient *http.Client, cache fabric.Cache, cacheTTL time.Duration) *Client {
	if cache == nil {
		cache = fabric.NewNoOpCache()
	}

	if cacheTTL <= 0 {
		cacheTTL = fabric.DefaultCacheTTL
	}

	client := &Client{
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}

	client.operations = NewOperationsClient(httpClient)
	client.workspaces = NewWorkspacesClient(httpClient, cache, cacheTTL)

	return client
}

// Workspaces implements fabric.Client.Workspaces.
func (c *Client) Workspaces() fabric.WorkspacesClient {
	return c.workspaces
}

// Items implements fabric.Client.Items.
func (c *Client) Items(workspaceID string) fabric.ItemsClient {
	return NewItemsClient(c.httpClient, c.operations, workspaceID)
}

// Git implements fabric.Client.Git.
func (c *Client) Git(workspaceID string) fabric.GitClient {
	return NewGitClient(c.operations, workspaceID)
}

// Operations implements fabric.Client.Operations.
func (c *Client) Operations() fabric.OperationsClient {
	return c.operations
}
