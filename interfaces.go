package paging

import "context"

// Paginator is implemented by every cursor-mode strategy in this module:
// the in-memory cursor.Paginator and the relational sqlboiler.Slicer.
//
// Type parameter T is the item type being paginated (e.g., User, Post, Organization).
type Paginator[T any] interface {
	// Paginate returns the page selected by the Relay arguments in args.
	Paginate(ctx context.Context, args *PageArgs, opts ...PaginateOption) (*PageResult[T], error)
}

// OffsetPaginator is the skip/take counterpart of Paginator.
type OffsetPaginator[T any] interface {
	PaginateOffset(ctx context.Context, args *OffsetArgs, opts ...PaginateOption) (*PageResult[T], error)
}
