package client

import (
	"context"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tidemark-io/fabric-client/internal/constants"
	"github.com/tidemark-io/fabric-client/internal/http"
	"github.com/tidemark-io/fabric-client/pkg/fabric"
)

// OperationsClient implements fabric.OperationsClient and drives the
// submit → poll → fetch-result protocol for long-running operations.
type OperationsClient struct {
	httpClient *http.Client

	// sleep is the cooperative delay between polls, injectable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewOperationsClient creates a new operations client.
func NewOperationsClient(httpClient *http.Client) *OperationsClient {
	return &OperationsClient{
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

// sleepContext waits for d or until ctx is cancelled, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Get implements fabric.OperationsClient.Get.
func (c *OperationsClient) Get(ctx context.Context, operationID string) (*fabric.OperationState, error) {
	resp, err := c.httpClient.Get(ctx, "/operations/"+operationID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting operation: %w", err)
	}

	var state fabric.OperationState

	err = json.Unmarshal(resp.Body, &state)
	if err != nil {
		return nil, fmt.Errorf("parsing operation state: %w", err)
	}

	return &state, nil
}

// Result implements fabric.OperationsClient.Result.
func (c *OperationsClient) Result(ctx context.Context, operationID string) (json.RawMessage, error) {
	resp, err := c.httpClient.Get(ctx, "/operations/"+operationID+"/result", nil)
	if err != nil {
		return nil, fmt.Errorf("getting operation result: %w", err)
	}

	return json.RawMessage(resp.Body), nil
}

// pollContext is the mutable state of one polling sequence, passed by value
// between iterations.
type pollContext struct {
	operationID string
	location    string
	retryAfter  time.Duration
}

// newPollContext extracts the required headers from a 202 response. Every
// missing header is a contract violation on the server side.
func newPollContext(headers stdhttp.Header) (pollContext, error) {
	operationID := headers.Get(constants.HeaderOperationID)
	if operationID == "" {
		return pollContext{}, fmt.Errorf("%w: 202 response missing %s header", fabric.ErrProtocol, constants.HeaderOperationID)
	}

	location := headers.Get(constants.HeaderLocation)
	if location == "" {
		return pollContext{}, fmt.Errorf("%w: 202 response missing %s header", fabric.ErrProtocol, constants.HeaderLocation)
	}

	retryAfterRaw := headers.Get(constants.HeaderRetryAfter)
	if retryAfterRaw == "" {
		return pollContext{}, fmt.Errorf("%w: 202 response missing %s header", fabric.ErrProtocol, constants.HeaderRetryAfter)
	}

	seconds, err := strconv.Atoi(retryAfterRaw)
	if err != nil {
		return pollContext{}, fmt.Errorf("%w: invalid %s value %q", fabric.ErrProtocol, constants.HeaderRetryAfter, retryAfterRaw)
	}

	return pollContext{
		operationID: operationID,
		location:    location,
		retryAfter:  time.Duration(seconds) * time.Second,
	}, nil
}

// update folds a poll response's headers into the context. Retry-After
// defaults to 5 seconds when absent; the location sticks when the server
// does not redirect.
func (p pollContext) update(headers stdhttp.Header) pollContext {
	next := p
	next.retryAfter = constants.DefaultRetryAfter

	if raw := headers.Get(constants.HeaderRetryAfter); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil {
			next.retryAfter = time.Duration(seconds) * time.Second
		}
	}

	if location := headers.Get(constants.HeaderLocation); location != "" {
		next.location = location
	}

	return next
}

// Await submits a request that may start a long-running operation and blocks
// until the final result is available.
//
// A 200 response is the immediate path: its body is the result and no
// polling happens. A 202 response starts the polling loop, paced by the
// server's Retry-After header and redirected by its Location header. Once
// the operation reports Succeeded, the result is fetched with a plain GET
// against the last poll location — not the original submission URL, which
// is the documented contract for this API even though it diverges from the
// usual convention.
func (c *OperationsClient) Await(ctx context.Context, method, path string, query url.Values) (json.RawMessage, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{Method: method, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == stdhttp.StatusOK {
		return json.RawMessage(resp.Body), nil
	}

	if resp.StatusCode != stdhttp.StatusAccepted {
		return nil, fmt.Errorf("%w: unexpected status %d submitting long-running operation", fabric.ErrProtocol, resp.StatusCode)
	}

	poll, err := newPollContext(resp.Headers)
	if err != nil {
		return nil, err
	}

	for {
		err = c.sleep(ctx, poll.retryAfter)
		if err != nil {
			return nil, fmt.Errorf("waiting before poll: %w", err)
		}

		pollResp, err := c.httpClient.Get(ctx, poll.location, nil)
		if err != nil {
			return nil, fmt.Errorf("polling operation %s: %w", poll.operationID, err)
		}

		poll = poll.update(pollResp.Headers)

		var state fabric.OperationState

		err = json.Unmarshal(pollResp.Body, &state)
		if err != nil {
			return nil, fmt.Errorf("parsing operation %s state: %w", poll.operationID, err)
		}

		if !state.Status.Terminal() {
			continue
		}

		if state.Status == fabric.OperationFailed {
			return nil, &fabric.OperationFailedError{
				OperationID: poll.operationID,
				Err:         state.Error,
			}
		}

		break
	}

	result, err := c.httpClient.Get(ctx, poll.location, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching operation %s result: %w", poll.operationID, err)
	}

	return json.RawMessage(result.Body), nil
}
