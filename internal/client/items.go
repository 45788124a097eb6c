package client

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/url"

	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// ItemsClient implements fabric.ItemsClient for one workspace.
type ItemsClient struct {
	httpClient  *http.Client
	operations  *OperationsClient
	workspaceID string
}

// NewItemsClient creates an items client scoped to workspaceID.
func NewItemsClient(httpClient *http.Client, operations *OperationsClient, workspaceID string) *ItemsClient {
	return &ItemsClient{
		httpClient:  httpClient,
		operations:  operations,
		workspaceID: workspaceID,
	}
}

// List implements fabric.ItemsClient.List.
func (c *ItemsClient) List(ctx context.Context, opts *fabric.ItemListOptions) *fabric.ItemIterator[fabric.Item] {
	query := url.Values{}
	if opts != nil && opts.Type != "" {
		query.Set("type", string(opts.Type))
	}

	path := "/workspaces/" + c.workspaceID + "/items"
	pages := fabric.NewPageIterator(ctx, &pageFetcher{httpClient: c.httpClient}, path, query)

	return fabric.NewItemIterator[fabric.Item](pages)
}

// GetDefinition implements fabric.ItemsClient.GetDefinition. The export is a
// long-running operation on the server; this blocks until it completes.
func (c *ItemsClient) GetDefinition(ctx context.Context, itemID string, opts *fabric.ItemDefinitionOptions) (*fabric.ItemDefinitionResponse, error) {
	query := url.Values{}
	if opts != nil && opts.Format != "" {
		query.Set("format", opts.Format)
	}

	path := "/workspaces/" + c.workspaceID + "/items/" + itemID + "/getDefinition"

	result, err := c.operations.Await(ctx, stdhttp.MethodPost, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting item definition: %w", err)
	}

	var definition fabric.ItemDefinitionResponse

	err = json.Unmarshal(result, &definition)
	if err != nil {
		return nil, fmt.Errorf("parsing item definition: %w", err)
	}

	return &definition, nil
}
