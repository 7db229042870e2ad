package paging

import (
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/samber/lo"
)

// IndexedResult pairs an item with its 1-based position in the full ordered
// set. The position is only stable while the ordering is held fixed.
type IndexedResult[T any] struct {
	Index int
	Node  T
}

// Cursor returns the opaque cursor for this result's position.
func (r IndexedResult[T]) Cursor() string {
	return EncodeCursor(r.Index)
}

// PageResult is one page of an ordered result set.
//
// A PageResult is built once per request by a slicer and treated as
// immutable afterwards; MapResult and Project return new values.
type PageResult[T any] struct {
	Items           []IndexedResult[T]
	TotalCount      *int
	HasNextPage     bool
	HasPreviousPage bool
}

// Nodes returns the page items without their positions.
func (r *PageResult[T]) Nodes() []T {
	return lo.Map(r.Items, func(item IndexedResult[T], _ int) T {
		return item.Node
	})
}

// Cursors returns the cursor of every item on the page, in page order.
func (r *PageResult[T]) Cursors() []string {
	return lo.Map(r.Items, func(item IndexedResult[T], _ int) string {
		return item.Cursor()
	})
}

// StartCursor returns the cursor of the first item, or nil for an empty page.
func (r *PageResult[T]) StartCursor() *string {
	if len(r.Items) == 0 {
		return nil
	}
	c := r.Items[0].Cursor()
	return &c
}

// EndCursor returns the cursor of the last item, or nil for an empty page.
func (r *PageResult[T]) EndCursor() *string {
	if len(r.Items) == 0 {
		return nil
	}
	c := r.Items[len(r.Items)-1].Cursor()
	return &c
}

// RequireTotalCount returns the total count, or ErrMissingTotalCount if the
// slicer was not asked to compute it.
func (r *PageResult[T]) RequireTotalCount() (int, error) {
	if r.TotalCount == nil {
		return 0, errors.WithStack(ErrMissingTotalCount)
	}
	return *r.TotalCount, nil
}

// MapResult converts every node of r with transform, keeping positions and
// page metadata. The first transform error aborts the mapping.
func MapResult[From any, To any](r *PageResult[From], transform func(From) (To, error)) (*PageResult[To], error) {
	out := &PageResult[To]{
		Items:           make([]IndexedResult[To], 0, len(r.Items)),
		TotalCount:      copyCount(r.TotalCount),
		HasNextPage:     r.HasNextPage,
		HasPreviousPage: r.HasPreviousPage,
	}

	for i, item := range r.Items {
		node, err := transform(item.Node)
		if err != nil {
			return nil, fmt.Errorf("transform item at index %d: %w", i, err)
		}
		out.Items = append(out.Items, IndexedResult[To]{Index: item.Index, Node: node})
	}

	return out, nil
}

// Project is MapResult for transforms that cannot fail.
func Project[From any, To any](r *PageResult[From], project func(From) To) *PageResult[To] {
	return &PageResult[To]{
		Items: lo.Map(r.Items, func(item IndexedResult[From], _ int) IndexedResult[To] {
			return IndexedResult[To]{Index: item.Index, Node: project(item.Node)}
		}),
		TotalCount:      copyCount(r.TotalCount),
		HasNextPage:     r.HasNextPage,
		HasPreviousPage: r.HasPreviousPage,
	}
}

func copyCount(count *int) *int {
	if count == nil {
		return nil
	}
	c := *count
	return &c
}
