// Package cursor implements Relay cursor connection windows over ordinal
// positions.
//
// A cursor is the base64 form of an item's 1-based position in a stably
// ordered set (see paging.EncodeCursor). Calculate turns After, Before,
// First and Last into a Window, and the Window is then applied either to an
// in-memory sequence (Slice, Paginator) or to a SQL query
// (sqlboiler.Builder). Both finish through BuildResult, so they report the
// same page for the same arguments.
//
// Example usage:
//
//	paginator := cursor.New(cursor.FromSlice(users))
//
//	first := 10
//	page, _ := paginator.Paginate(ctx, &paging.PageArgs{First: &first})
//	conn, _ := paging.BuildConnection(page, toDomainUser)
//
//	// Next page
//	page, _ = paginator.Paginate(ctx, &paging.PageArgs{First: &first, After: page.EndCursor()})
//
// Limitations:
//   - Positions are only stable while the ordering and the underlying set
//     are unchanged between requests.
//   - Single ordinal cursors only; composite keyset cursors are out of scope.
package cursor

import (
	"context"

	"github.com/nrfta/relay-paging"
)

// Source loads the full ordered sequence a Paginator slices.
type Source[T any] func(ctx context.Context) ([]T, error)

// FromSlice returns a Source that always yields items.
func FromSlice[T any](items []T) Source[T] {
	return func(context.Context) ([]T, error) {
		return items, nil
	}
}

// Paginator is the in-memory cursor paginator.
// It loads the ordered sequence from its Source on every call and slices it
// with the Relay window for the request.
type Paginator[T any] struct {
	source Source[T]
}

var _ paging.Paginator[int] = (*Paginator[int])(nil)

// New creates a paginator over source.
func New[T any](source Source[T]) *Paginator[T] {
	return &Paginator[T]{source: source}
}

// Paginate loads the sequence and returns the page selected by args.
// Argument errors are reported before the source is read.
func (p *Paginator[T]) Paginate(
	ctx context.Context,
	args *paging.PageArgs,
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
