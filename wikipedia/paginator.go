package wikipedia

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"

	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
)

// MaxAggregatePages is the default bound on how many pages Aggregate follows
// before giving up on a server that keeps reporting more results.
const MaxAggregatePages = 10000

// Extractor pulls the result items out of one raw response.
type Extractor[T any] func(Response) ([]T, error)

// Cursor is the continuation point of an incomplete list query: the query
// parameter to set on the next request and its value.
type Cursor struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// PageResult is one page of a paginated query. When Cursor is non-nil,
// Next fetches the following page.
type PageResult[T any] struct {
	Results []T
	Cursor  *Cursor

	client    *Client
	operation string
	base      Params
	extract   Extractor[T]
}

// HasNext reports whether the server signalled more results
func (p *PageResult[T]) HasNext() bool {
	return p != nil && p.Cursor != nil
}

// Next fetches the following page. It returns (nil, nil) after the last page.
// The next request uses the first page's parameters plus the cursor only.
func (p *PageResult[T]) Next(ctx context.Context) (*PageResult[T], error) {
	if !p.HasNext() {
		return nil, nil
	}
	params := p.base.Clone()
	params[p.Cursor.Key] = p.Cursor.Value

	p.client.logger.Debug("Following continuation",
		"operation", p.operation,
		"cursor_key", p.Cursor.Key,
		"cursor_value", p.Cursor.Value)

	next, err := paginate(ctx, p.client, p.operation, params, p.extract)
	if err != nil {
		return nil, err
	}
	// Later pages keep continuing from the original parameters
	next.base = p.base
	return next, nil
}

// All iterates over every item of this page and the pages after it.
// Iteration stops at the first error, which is yielded with a zero item.
func (p *PageResult[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		page := p
		for fetched := 1; page != nil; fetched++ {
			for _, item := range page.Results {
				if !yield(item, nil) {
					return
				}
			}
			if !page.HasNext() {
				return
			}
			if limit := page.client.pageLimit(); fetched >= limit {
				var zero T
				yield(zero, pageLimitError(limit))
				return
			}
			next, err := page.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			page = next
		}
	}
}

// Paginate issues one query, extracts its results and records the
// continuation cursor, if any. params is not modified.
func Paginate[T any](ctx context.Context, c *Client, params Params, extract Extractor[T]) (*PageResult[T], error) {
	return paginateFrom(ctx, c, "query", params, nil, extract)
}

// PaginateFrom is Paginate resumed at from, a cursor returned by an earlier
// page of the same query. A nil cursor starts at the first page.
func PaginateFrom[T any](ctx context.Context, c *Client, params Params, from *Cursor, extract Extractor[T]) (*PageResult[T], error) {
	return paginateFrom(ctx, c, "query", params, from, extract)
}

func paginate[T any](ctx context.Context, c *Client, operation string, params Params, extract Extractor[T]) (*PageResult[T], error) {
	return paginateFrom(ctx, c, operation, params, nil, extract)
}

func paginateFrom[T any](ctx context.Context, c *Client, operation string, params Params, from *Cursor, extract Extractor[T]) (*PageResult[T], error) {
	snapshot := params.Clone()

	request := snapshot
	if from != nil {
		if from.Key == "" || from.Key == "continue" {
			return nil, fmt.Errorf("invalid continuation cursor key %q", from.Key)
		}
		request = snapshot.Clone()
		request[from.Key] = from.Value
	}

	resp, err := c.query(ctx, operation, request)
	if err != nil {
		return nil, err
	}

	results, err := extract(resp)
	if err != nil {
		return nil, err
	}
	metrics.RecordPage(operation)

	cursor, err := parseContinuation(resp)
	if err != nil {
		return nil, err
	}

	return &PageResult[T]{
		Results:   results,
		Cursor:    cursor,
		client:    c,
		operation: operation,
		base:      snapshot,
		extract:   extract,
	}, nil
}

// Aggregate follows continuations from first until the last page and
// returns all results in page order. Any page failure fails the whole call.
func Aggregate[T any](ctx context.Context, first *PageResult[T]) ([]T, error) {
	all := make([]T, 0)
	if first == nil {
		return all, nil
	}

	page := first
	for fetched := 1; ; fetched++ {
		all = append(all, page.Results...)
		if !page.HasNext() {
			break
		}
		if limit := first.client.pageLimit(); fetched >= limit {
			return nil, pageLimitError(limit)
		}
		next, err := page.Next(ctx)
		if err != nil {
			return nil, err
		}
		page = next
	}

	metrics.RecordAggregate(first.operation, len(all))
	return all, nil
}

// Collect paginates params to completion
func Collect[T any](ctx context.Context, c *Client, params Params, extract Extractor[T]) ([]T, error) {
	first, err := Paginate(ctx, c, params, extract)
	if err != nil {
		return nil, err
	}
	return Aggregate(ctx, first)
}

// parseContinuation reads the top-level "continue" object. Its "continue"
// key is bookkeeping; exactly one other key is the cursor. No cursor key
// means the listing is complete.
func parseContinuation(resp Response) (*Cursor, error) {
	raw, ok := resp["continue"]
	if !ok || raw == nil {
		return nil, nil
	}
	cont := getMap(raw)
	if cont == nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("continue is %T, want object", raw)}
	}

	var keys []string
	for k := range cont {
		if k != "continue" {
			keys = append(keys, k)
		}
	}

	switch len(keys) {
	case 0:
		return nil, nil
	case 1:
		value, ok := formatScalar(cont[keys[0]])
		if !ok {
			return nil, &ProtocolError{Reason: fmt.Sprintf("continuation cursor %s is not a scalar", keys[0])}
		}
		return &Cursor{Key: keys[0], Value: value}, nil
	default:
		sort.Strings(keys)
		return nil, &ProtocolError{Reason: fmt.Sprintf("expected one continuation cursor, got %d (%s)", len(keys), strings.Join(keys, ", "))}
	}
}

func pageLimitError(limit int) error {
	return &ProtocolError{Reason: fmt.Sprintf("pagination exceeded %d pages", limit)}
}

func (c *Client) pageLimit() int {
	if c == nil || c.maxPages <= 0 {
		return MaxAggregatePages
	}
	return c.maxPages
}
