package paging

import "github.com/friendsofgo/errors"

// PageInfo contains metadata about a paginated result set.
// It uses function fields so GraphQL resolvers only pay for what a query selects.
//
// All functions return both a value and an error; TotalCount fails with
// ErrMissingTotalCount when the count was selected but never computed.
type PageInfo struct {
	TotalCount      func() (*int, error)
	HasPreviousPage func() (bool, error)
	HasNextPage     func() (bool, error)
	StartCursor     func() (*string, error)
	EndCursor       func() (*string, error)
}

// NewPageInfo returns the PageInfo describing r.
func NewPageInfo[T any](r *PageResult[T]) PageInfo {
	return PageInfo{
		TotalCount: func() (*int, error) {
			if r.TotalCount == nil {
				return nil, errors.WithStack(ErrMissingTotalCount)
			}
			return copyCount(r.TotalCount), nil
		},
		StartCursor:     func() (*string, error) { return r.StartCursor(), nil },
		EndCursor:       func() (*string, error) { return r.EndCursor(), nil },
		HasNextPage:     func() (bool, error) { return r.HasNextPage, nil },
		HasPreviousPage: func() (bool, error) { return r.HasPreviousPage, nil },
	}
}

// NewEmptyPageInfo returns the PageInfo of a connection with no items. Its
// total count is zero.
func NewEmptyPageInfo() *PageInfo {
	zero := 0
	pageInfo := NewPageInfo(&PageResult[struct{}]{TotalCount: &zero})
	return &pageInfo
}
