package fabric

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ErrNoMoreItems is returned by ItemIterator.Next once iteration is done.
var ErrNoMoreItems = errors.New("no more items")

// PageFetcher issues a single page request. internal/client provides the
// production implementation on top of the authenticated HTTP client.
type PageFetcher interface {
	GetPage(ctx context.Context, pageURL string, query url.Values) (json.RawMessage, error)
}

// pageCursor extracts the continuation markers from a raw page.
type pageCursor struct {
	ContinuationURI   string `json:"continuationUri"`
	ContinuationToken string `json:"continuationToken"`
}

// PageIterator walks a cursor-paginated endpoint, yielding one raw page per
// Next call. It is finite, not restartable, and safe to abandon early:
// pages are fetched lazily and partial consumption issues no extra requests.
type PageIterator struct {
	ctx     context.Context
	fetcher PageFetcher
	url     string
	query   url.Values
	hasNext bool
}

// NewPageIterator creates an iterator starting at pageURL with the given
// query parameters.
func NewPageIterator(ctx context.Context, fetcher PageFetcher, pageURL string, query url.Values) *PageIterator {
	return &PageIterator{
		ctx:     ctx,
		fetcher: fetcher,
		url:     pageURL,
		query:   query,
		hasNext: true,
	}
}

// Next fetches and returns the next page, or ErrNoMorePages once the server
// stops supplying continuation markers.
func (it *PageIterator) Next() (json.RawMessage, error) {
	if !it.hasNext {
		return nil, ErrNoMorePages
	}

	if err := it.ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	page, err := it.fetcher.GetPage(it.ctx, it.url, it.query)
	if err != nil {
		it.hasNext = false

		return nil, err
	}

	var cursor pageCursor

	err = json.Unmarshal(page, &cursor)
	if err != nil {
		it.hasNext = false

		return nil, fmt.Errorf("parsing continuation markers: %w", err)
	}

	// Both markers must be present for another page to exist. A page
	// carrying only one of them is treated as terminal rather than trusted
	// from the wire.
	if cursor.ContinuationURI != "" && cursor.ContinuationToken != "" {
		it.url = cursor.ContinuationURI
		it.query = url.Values{"continuationToken": []string{cursor.ContinuationToken}}
	} else {
		it.hasNext = false
	}

	return page, nil
}

// ItemIterator flattens the value arrays of a paginated listing into a
// sequence of typed items. Ordering across pages is preserved; within a page
// it matches server order.
type ItemIterator[T any] struct {
	pages  *PageIterator
	buffer []T
	err    error
}

// NewItemIterator wraps a PageIterator, decoding each page as a
// ListResponse[T].
func NewItemIterator[T any](pages *PageIterator) *ItemIterator[T] {
	return &ItemIterator[T]{pages: pages}
}

// Next returns the next item, fetching further pages as needed. It returns
// ErrNoMoreItems once the listing is exhausted.
func (it *ItemIterator[T]) Next() (*T, error) {
	if it.err != nil {
		return nil, it.err
	}

	for len(it.buffer) == 0 {
		page, err := it.pages.Next()
		if err != nil {
			if errors.Is(err, ErrNoMorePages) {
				err = ErrNoMoreItems
			}

			it.err = err

			return nil, err
		}

		var list ListResponse[T]

		err = json.Unmarshal(page, &list)
		if err != nil {
			it.err = fmt.Errorf("parsing page: %w", err)

			return nil, it.err
		}

		it.buffer = list.Value
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return &item, nil
}

// All drains the iterator and returns the remaining items.
func (it *ItemIterator[T]) All() ([]T, error) {
	var items []T

	for {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return items, nil
			}

			return nil, err
		}

		items = append(items, *item)
	}
}

// ForEach applies fn to each remaining item, stopping at the first error.
func (it *ItemIterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if err != nil {
			if errors.Is(err, ErrNoMoreItems) {
				return nil
			}

			return err
		}

		err = fn(*item)
		if err != nil {
			return err
		}
	}
}
