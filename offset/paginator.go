// Package offset provides skip/take pagination.
//
// Offset pagination reads Take+1 rows starting at Skip; the extra row tells
// whether a next page exists without counting the whole set. A total count
// is only computed when requested with paging.WithTotalCount.
//
// Example usage:
//
//	skip, take := 20, 10
//	page, err := offset.Slice(users, &paging.OffsetArgs{Skip: &skip, Take: &take})
//
// The SQL counterpart is sqlboiler.Slicer.PaginateOffset.
package offset

import (
	"context"

	"github.com/nrfta/relay-paging"
)

// Source loads the full ordered sequence a Paginator slices.
type Source[T any] func(ctx context.Context) ([]T, error)

// Paginator is the in-memory offset paginator.
type Paginator[T any] struct {
	source Source[T]
}

var _ paging.OffsetPaginator[int] = (*Paginator[int])(nil)

// New creates a paginator over source.
func New[T any](source Source[T]) *Paginator[T] {
	return &Paginator[T]{source: source}
}

// PaginateOffset loads the sequence and returns the page selected by args.
func (p *Paginator[T]) PaginateOffset(
	ctx context.Context,
	args *paging.OffsetArgs,
	opts ...paging.PaginateOption,
) (*paging.PageResult[T], error) {
	cfg := paging.ApplyPaginateOptions(opts...)

	w, err := NewWindow(args, cfg)
	if err != nil {
		return nil, err
	}

	items, err := p.source(ctx)
	if err != nil {
		return nil, err
	}

	return SliceWindow(items, w, cfg.IncludeTotalCount), nil
}

// Slice returns the page of items selected by args. items must already be
// in the requested order and is never modified.
func Slice[T any](items []T, args *paging.OffsetArgs, opts ...paging.PaginateOption) (*paging.PageResult[T], error) {
	cfg := paging.ApplyPaginateOptions(opts...)

	w, err := NewWindow(args, cfg)
	if err != nil {
		return nil, err
	}

	return SliceWindow(items, w, cfg.IncludeTotalCount), nil
}

// SliceWindow applies an already calculated window to items.
func SliceWindow[T any](items []T, w Window, includeTotalCount bool) *paging.PageResult[T] {
	n := len(items)
	lo := min(w.Skip, n)
	hi := n
	if limit := w.FetchLimit(); limit > 0 {
		hi = min(lo+limit, n)
	}

	var totalCount *int
	if includeTotalCount {
		totalCount = &n
	}

	return BuildResult(w, items[lo:hi], totalCount)
}
