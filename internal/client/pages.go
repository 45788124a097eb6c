package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/tidemark-io/fabric-client/internal/http"
)

// pageFetcher adapts the HTTP client to fabric.PageFetcher. Each call is one
// page request; the iterator owns continuation state.
type pageFetcher struct {
	httpClient *http.Client
}

func (f *pageFetcher) GetPage(ctx context.Context, pageURL string, query url.Values) (json.RawMessage, error) {
	resp, err := f.httpClient.Get(ctx, pageURL, query)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}
