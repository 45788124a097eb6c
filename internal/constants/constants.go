package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the optional transport-level retry layer.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Long-running operation protocol.
const (
	// DefaultRetryAfter is used when a poll response omits the Retry-After
	// header, per the documented operation contract.
	DefaultRetryAfter = 5 * time.Second

	// HeaderOperationID carries the operation identifier on a 202 response.
	HeaderOperationID = "x-ms-operation-id"

	// HeaderRetryAfter carries the poll delay in integer seconds.
	HeaderRetryAfter = "Retry-After"

	// HeaderLocation carries the absolute poll URI.
	HeaderLocation = "Location"
)

// Token handling.
const (
	// TokenExpirationBuffer is the window before expiry in which a token is
	// already treated as stale, so refresh happens before requests start
	// failing with 401s.
	TokenExpirationBuffer = 30 * time.Second
)

// DefaultAPIEndpoint is the production Fabric API base URL.
const DefaultAPIEndpoint = "https://api.fabric.microsoft.com/v1"

// AADScope is the OAuth2 scope requested for client-credentials tokens.
const AADScope = "https://api.fabric.microsoft.com/.default"
