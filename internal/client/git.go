package client

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"

	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// GitClient implements fabric.GitClient for one workspace.
type GitClient struct {
	operations  *OperationsClient
	workspaceID string
}

// NewGitClient creates a git client scoped to workspaceID.
func NewGitClient(operations *OperationsClient, workspaceID string) *GitClient {
	return &GitClient{
		operations:  operations,
		workspaceID: workspaceID,
	}
}

// Status implements fabric.GitClient.Status. Computing the status is a
// long-running operation on the server; this blocks until it completes.
func (c *GitClient) Status(ctx context.Context) (*fabric.GitStatusResponse, error) {
	path := "/workspaces/" + c.workspaceID + "/git/status"

	result, err := c.operations.Await(ctx, stdhttp.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting git status: %w", err)
	}

	var status fabric.GitStatusResponse

	err = json.Unmarshal(result, &status)
	if err != nil {
		return nil, fmt.Errorf("parsing git status: %w", err)
	}

	return &status, nil
}
