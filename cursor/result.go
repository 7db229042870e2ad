package cursor

import (
	"github.com/nrfta/relay-paging"
)

// BuildResult turns the rows read for window w into a page. rows must be in
// index order and may include the over-fetched row, which is dropped here.
//
// Both the in-memory slicer and the SQL slicer finish through BuildResult,
// so they agree on HasNextPage and HasPreviousPage for the same window.
func BuildResult[T any](w Window, rows []paging.IndexedResult[T], totalCount *int) *paging.PageResult[T] {
	hasNext := w.NextPossible()
	if hasNext && w.EndOverfetched() && w.ExpectedCount() != Unbounded {
		hasNext = len(rows) > w.ExpectedCount()
	}

	if w.ExpectedCount() != Unbounded && len(rows) > w.ExpectedCount() {
		rows = rows[:w.ExpectedCount()]
	}

	hasPrev := w.PreviousPossible() && len(rows) > 0 && rows[0].Index > 1

	items := make([]paging.IndexedResult[T], len(rows))
	copy(items, rows)

	return &paging.PageResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		HasNextPage:     hasNext,
		HasPreviousPage: hasPrev,
	}
}
