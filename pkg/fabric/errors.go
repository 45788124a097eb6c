package fabric

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	// ErrAuth wraps token provider failures. The core never retries these;
	// callers may retry the whole call.
	ErrAuth = errors.New("authentication failed")

	// ErrProtocol indicates the server violated the documented LRO or
	// pagination contract (for example a 202 without a Location header).
	ErrProtocol = errors.New("protocol violation")

	// ErrNoMorePages is returned by PageIterator.Next once iteration is done.
	ErrNoMorePages = errors.New("no more pages")

	ErrConfigRequired      = errors.New("config is required")
	ErrEndpointRequired    = errors.New("API endpoint is required")
	ErrNoTokenConfigured   = errors.New("no token manager configured")
	ErrStaticTokenRefresh  = errors.New("static token cannot be refreshed")
	ErrTenantIDRequired    = errors.New("tenant ID is required for client credentials")
	ErrWorkspaceIDRequired = errors.New("workspace ID is required")
)

// ErrorDetail is a single entry in a Fabric error's moreDetails list.
type ErrorDetail struct {
	ErrorCode string `json:"errorCode" yaml:"error_code"`
	Message   string `json:"message"   yaml:"message"`
}

// ErrorResponse is the Fabric API error envelope.
type ErrorResponse struct {
	ErrorCode   string        `json:"errorCode"             yaml:"error_code"`
	Message     string        `json:"message"               yaml:"message"`
	RequestID   string        `json:"requestId,omitempty"   yaml:"request_id,omitempty"`
	MoreDetails []ErrorDetail `json:"moreDetails,omitempty" yaml:"more_details,omitempty"`
}

// ResponseError represents a non-2xx response from the API. Raw always holds
// the response body; the envelope fields are populated when the body decodes
// as a Fabric error.
type ResponseError struct {
	StatusCode int
	Raw        []byte

	ErrorResponse
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s: %s (status: %d)", e.ErrorCode, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, string(e.Raw))
}

// OperationFailedError is returned when a long-running operation reaches the
// terminal Failed status. The server-provided error payload is attached,
// never swallowed.
type OperationFailedError struct {
	OperationID string
	Err         *OperationError
}

// Error implements the error interface.
func (e *OperationFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("operation %s failed: %s: %s", e.OperationID, e.Err.ErrorCode, e.Err.Message)
	}

	return fmt.Sprintf("operation %s failed", e.OperationID)
}

// ParseResponseError builds a ResponseError from a status code and body.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: statusCode,
		Raw:        body,
	}

	// Best effort; a non-JSON body still yields a usable error.
	_ = json.Unmarshal(body, &respErr.ErrorResponse)

	return respErr
}

// IsNotFound checks if the error is a 404 response.
func IsNotFound(err error) bool {
	respErr := &ResponseError{}

	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error is a 401 response.
func IsUnauthorized(err error) bool {
	respErr := &ResponseError{}

	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusUnauthorized
}

// IsOperationFailed checks if the error is a terminal operation failure and
// returns the embedded payload when it is.
func IsOperationFailed(err error) (*OperationError, bool) {
	opErr := &OperationFailedError{}
	if errors.As(err, &opErr) {
		return opErr.Err, true
	}

	return nil, false
}
