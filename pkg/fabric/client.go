package fabric

import (
	"context"
	"encoding/json"
	"time"
)

// WorkspacesClient provides access to workspace resources.
type WorkspacesClient interface {
	// List returns an iterator over all workspaces visible to the caller,
	// optionally filtered by role. Pages are fetched lazily; abandoning the
	// iterator early issues no further requests.
	List(ctx context.Context, opts *WorkspaceListOptions) *ItemIterator[Workspace]

	// Get retrieves a single workspace.
	Get(ctx context.Context, workspaceID string) (*WorkspaceInfo, error)
}

// WorkspaceListOptions filters workspace listings.
type WorkspaceListOptions struct {
	// Roles restricts results to workspaces where the caller holds one of
	// the given roles, e.g. "Admin", "Member".
	Roles []string
}

// ItemsClient provides access to the items of one workspace.
type ItemsClient interface {
	List(ctx context.Context, opts *ItemListOptions) *ItemIterator[Item]

	// GetDefinition exports an item's definition. This is a long-running
	// operation on the server side; the call blocks until the operation
	// reaches a terminal state or ctx is cancelled.
	GetDefinition(ctx context.Context, itemID string, opts *ItemDefinitionOptions) (*ItemDefinitionResponse, error)
}

// ItemListOptions filters item listings.
type ItemListOptions struct {
	// Type restricts results to a single item type, e.g. "Notebook".
	Type ItemType
}

// ItemDefinitionOptions controls definition export.
type ItemDefinitionOptions struct {
	// Format selects the output format where the item type supports one,
	// e.g. "ipynb" for notebooks.
	Format string
}

// GitClient provides access to the git integration state of one workspace.
type GitClient interface {
	// Status reports the divergence between the workspace and its connected
	// branch. Long-running on the server side.
	Status(ctx context.Context) (*GitStatusResponse, error)
}

// OperationsClient provides direct access to long-running operation state.
type OperationsClient interface {
	Get(ctx context.Context, operationID string) (*OperationState, error)
	Result(ctx context.Context, operationID string) (json.RawMessage, error)
}

// Client is the entry point to the Fabric API.
type Client interface {
	Workspaces() WorkspacesClient
	Items(workspaceID string) ItemsClient
	Git(workspaceID string) GitClient
	Operations() OperationsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// TokenProvider issues bearer tokens. Implementations are free to talk to
// any identity service; the client only caches and serializes refreshes.
type TokenProvider interface {
	// GetToken returns a token value and the instant it expires.
	GetToken(ctx context.Context) (token string, expiresAt time.Time, err error)
}

// Config represents client configuration for building a fabric.Client.
//
// Authentication precedence applied by fabricclient.New:
//  1. TokenProvider: used directly, wrapped in the caching token manager.
//  2. AccessToken: used as a static bearer token, never refreshed.
//  3. TenantID + ClientID + ClientSecret: AAD client-credentials grant
//     against the v2.0 token endpoint, cached and refreshed on expiry.
type Config struct {
	// APIEndpoint is the base URL of the Fabric API. Defaults to
	// https://api.fabric.microsoft.com/v1 when empty.
	APIEndpoint string

	// TokenProvider supplies tokens from a custom source.
	TokenProvider TokenProvider

	// AccessToken is a pre-issued bearer token.
	AccessToken string

	// TenantID, ClientID and ClientSecret configure the client-credentials
	// grant. TokenURL overrides the derived AAD endpoint when set.
	TenantID     string
	ClientID     string
	ClientSecret string
	TokenURL     string

	// RetryMax enables transport-level retries for 5xx and 429 responses.
	// Zero keeps retries off; request-level errors are never retried.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables request/response logging when a Logger is provided.
	Debug bool

	// Logger is the optional structured logger used by the HTTP layer.
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Cache configures an optional read-through cache for single-resource
	// GETs. Pagination and operation polling always bypass it.
	Cache *CacheConfig
}
