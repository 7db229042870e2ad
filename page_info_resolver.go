package paging

import (
	"context"
)

// PageInfoResolver resolves the fields of a GraphQL PageInfo object.
type PageInfoResolver interface {
	HasPreviousPage(ctx context.Context, pageInfo *PageInfo) (bool, error)
	HasNextPage(ctx context.Context, pageInfo *PageInfo) (bool, error)
	TotalCount(ctx context.Context, pageInfo *PageInfo) (*int, error)
	StartCursor(ctx context.Context, pageInfo *PageInfo) (*string, error)
	EndCursor(ctx context.Context, pageInfo *PageInfo) (*string, error)
}

type pageInfoResolver struct{}

// NewPageInfoResolver returns the resolver for PageInfo
func NewPageInfoResolver() PageInfoResolver {
	return &pageInfoResolver{}
}

// TotalCount surfaces ErrMissingTotalCount when the schema exposes a count
// the paginator was not configured to compute.
func (r *pageInfoResolver) TotalCount(ctx context.Context, pageInfo *PageInfo) (*int, error) {
	if pageInfo.TotalCount == nil {
		return nil, ErrMissingTotalCount
	}
	return pageInfo.TotalCount()
}

func (r *pageInfoResolver) HasPreviousPage(ctx context.Context, pageInfo *PageInfo) (bool, error) {
	if pageInfo.HasPreviousPage == nil {
		return false, nil
	}
	return pageInfo.HasPreviousPage()
}

func (r *pageInfoResolver) HasNextPage(ctx context.Context, pageInfo *PageInfo) (bool, error) {
	if pageInfo.HasNextPage == nil {
		return false, nil
	}
	return pageInfo.HasNextPage()
}

func (r *pageInfoResolver) StartCursor(ctx context.Context, pageInfo *PageInfo) (*string, error) {
	if pageInfo.StartCursor == nil {
		return nil, nil
	}
	return pageInfo.StartCursor()
}

func (r *pageInfoResolver) EndCursor(ctx context.Context, pageInfo *PageInfo) (*string, error) {
	if pageInfo.EndCursor == nil {
		return nil, nil
	}
	return pageInfo.EndCursor()
}
