package fabric

import (
	"encoding/json"
	"time"
)

// WorkspaceType identifies the kind of workspace.
type WorkspaceType string

const (
	WorkspaceTypeAdmin    WorkspaceType = "AdminWorkspace"
	WorkspaceTypePersonal WorkspaceType = "Personal"
	WorkspaceTypeDefault  WorkspaceType = "Workspace"
)

// Workspace represents a workspace as returned by list endpoints.
type Workspace struct {
	ID          string        `json:"id"                   yaml:"id"`
	DisplayName string        `json:"displayName"          yaml:"display_name"`
	Description string        `json:"description"          yaml:"description"`
	Type        WorkspaceType `json:"type"                 yaml:"type"`
	CapacityID  string        `json:"capacityId,omitempty" yaml:"capacity_id,omitempty"`
}

// CapacityAssignmentProgress reports capacity assignment state on a workspace.
type CapacityAssignmentProgress string

const (
	CapacityAssignmentCompleted  CapacityAssignmentProgress = "Completed"
	CapacityAssignmentFailed     CapacityAssignmentProgress = "Failed"
	CapacityAssignmentInProgress CapacityAssignmentProgress = "InProgress"
)

// WorkspaceIdentity is the managed identity attached to a workspace, if any.
type WorkspaceIdentity struct {
	ApplicationID      string `json:"applicationId"      yaml:"application_id"`
	ServicePrincipalID string `json:"servicePrincipalId" yaml:"service_principal_id"`
}

// WorkspaceInfo is the detailed single-workspace representation.
type WorkspaceInfo struct {
	ID                         string                     `json:"id"                           yaml:"id"`
	DisplayName                string                     `json:"displayName"                  yaml:"display_name"`
	Description                string                     `json:"description"                  yaml:"description"`
	Type                       WorkspaceType              `json:"type"                         yaml:"type"`
	CapacityID                 string                     `json:"capacityId"                   yaml:"capacity_id"`
	CapacityAssignmentProgress CapacityAssignmentProgress `json:"capacityAssignmentProgress"   yaml:"capacity_assignment_progress"`
	WorkspaceIdentity          *WorkspaceIdentity         `json:"workspaceIdentity,omitempty"  yaml:"workspace_identity,omitempty"`
}

// ItemType identifies the kind of item stored in a workspace.
type ItemType string

const (
	ItemTypeDashboard          ItemType = "Dashboard"
	ItemTypeDataPipeline       ItemType = "DataPipeline"
	ItemTypeDatamart           ItemType = "Datamart"
	ItemTypeEnvironment        ItemType = "Environment"
	ItemTypeEventhouse         ItemType = "Eventhouse"
	ItemTypeEventstream        ItemType = "Eventstream"
	ItemTypeKQLDatabase        ItemType = "KQLDatabase"
	ItemTypeKQLQueryset        ItemType = "KQLQueryset"
	ItemTypeLakehouse          ItemType = "Lakehouse"
	ItemTypeMLExperiment       ItemType = "MLExperiment"
	ItemTypeMLModel            ItemType = "MLModel"
	ItemTypeMirroredWarehouse  ItemType = "MirroredWarehouse"
	ItemTypeNotebook           ItemType = "Notebook"
	ItemTypePaginatedReport    ItemType = "PaginatedReport"
	ItemTypeReport             ItemType = "Report"
	ItemTypeSQLEndpoint        ItemType = "SQLEndpoint"
	ItemTypeSemanticModel      ItemType = "SemanticModel"
	ItemTypeSparkJobDefinition ItemType = "SparkJobDefinition"
	ItemTypeWarehouse          ItemType = "Warehouse"
)

// Item represents an item in a workspace.
type Item struct {
	ID          string   `json:"id"          yaml:"id"`
	DisplayName string   `json:"displayName" yaml:"display_name"`
	Description string   `json:"description" yaml:"description"`
	Type        ItemType `json:"type"        yaml:"type"`
	WorkspaceID string   `json:"workspaceId" yaml:"workspace_id"`
}

// ItemDefinitionPart is a single file within an item definition.
type ItemDefinitionPart struct {
	Path        string `json:"path"        yaml:"path"`
	Payload     string `json:"payload"     yaml:"payload"`
	PayloadType string `json:"payloadType" yaml:"payload_type"`
}

// ItemDefinition is the exported definition of an item.
type ItemDefinition struct {
	Format string               `json:"format,omitempty" yaml:"format,omitempty"`
	Parts  []ItemDefinitionPart `json:"parts"            yaml:"parts"`
}

// ItemDefinitionResponse wraps the definition as returned by the API.
type ItemDefinitionResponse struct {
	Definition ItemDefinition `json:"definition" yaml:"definition"`
}

// GitChangeType describes how an item diverged between git and the workspace.
type GitChangeType string

const (
	GitChangeAdded    GitChangeType = "Added"
	GitChangeDeleted  GitChangeType = "Deleted"
	GitChangeModified GitChangeType = "Modified"
)

// GitItemIdentifier locates an item referenced by a git change entry.
type GitItemIdentifier struct {
	ObjectID  string `json:"objectId,omitempty"  yaml:"object_id,omitempty"`
	LogicalID string `json:"logicalId,omitempty" yaml:"logical_id,omitempty"`
}

// GitItemChange is a single divergence between the connected branch and the workspace.
type GitItemChange struct {
	ItemMetadata    GitItemMetadata `json:"itemMetadata"              yaml:"item_metadata"`
	RemoteChange    GitChangeType   `json:"remoteChange,omitempty"    yaml:"remote_change,omitempty"`
	WorkspaceChange GitChangeType   `json:"workspaceChange,omitempty" yaml:"workspace_change,omitempty"`
	ConflictType    string          `json:"conflictType,omitempty"    yaml:"conflict_type,omitempty"`
}

// GitItemMetadata describes the item a git change refers to.
type GitItemMetadata struct {
	ItemIdentifier GitItemIdentifier `json:"itemIdentifier" yaml:"item_identifier"`
	ItemType       ItemType          `json:"itemType"       yaml:"item_type"`
	DisplayName    string            `json:"displayName"    yaml:"display_name"`
}

// GitStatusResponse is the result of a git status operation on a workspace.
type GitStatusResponse struct {
	WorkspaceHead    string          `json:"workspaceHead"    yaml:"workspace_head"`
	RemoteCommitHash string          `json:"remoteCommitHash" yaml:"remote_commit_hash"`
	Changes          []GitItemChange `json:"changes"          yaml:"changes"`
}

// OperationStatus is the lifecycle state of a long-running operation.
type OperationStatus string

const (
	OperationNotStarted OperationStatus = "NotStarted"
	OperationRunning    OperationStatus = "Running"
	OperationSucceeded  OperationStatus = "Succeeded"
	OperationFailed     OperationStatus = "Failed"
	OperationUndefined  OperationStatus = "Undefined"
)

// Terminal reports whether the status ends the polling loop. Only the
// status drives termination; percentComplete is informational.
func (s OperationStatus) Terminal() bool {
	return s == OperationSucceeded || s == OperationFailed
}

// OperationState is the body of a long-running operation poll response.
type OperationState struct {
	Status          OperationStatus `json:"status"                 yaml:"status"`
	CreatedTimeUTC  time.Time       `json:"createdTimeUtc"         yaml:"created_time_utc"`
	LastUpdatedUTC  time.Time       `json:"lastUpdatedTimeUtc"     yaml:"last_updated_time_utc"`
	PercentComplete int             `json:"percentComplete"        yaml:"percent_complete"`
	Error           *OperationError `json:"error,omitempty"        yaml:"error,omitempty"`
}

// OperationError is the structured error embedded in a failed operation.
type OperationError struct {
	ErrorCode   string          `json:"errorCode"             yaml:"error_code"`
	Message     string          `json:"message"               yaml:"message"`
	RequestID   string          `json:"requestId,omitempty"   yaml:"request_id,omitempty"`
	MoreDetails []ErrorDetail   `json:"moreDetails,omitempty" yaml:"more_details,omitempty"`
	Raw         json.RawMessage `json:"-"                     yaml:"-"`
}

// ListResponse is the paginated envelope used by Fabric list endpoints.
// continuationUri and continuationToken are present together when another
// page exists.
type ListResponse[T any] struct {
	ContinuationURI   string `json:"continuationUri,omitempty"   yaml:"continuation_uri,omitempty"`
	ContinuationToken string `json:"continuationToken,omitempty" yaml:"continuation_token,omitempty"`
	Value             []T    `json:"value"                       yaml:"value"`
}

// WorkspacesPage and ItemsPage are the concrete page shapes.
type (
	WorkspacesPage = ListResponse[Workspace]
	ItemsPage      = ListResponse[Item]
)
