package cursor

import (
	"github.com/nrfta/relay-paging"
)

// Slice returns the page of items selected by args. items must already be
// in the requested order; it is never modified, so one sequence can be
// sliced any number of times with different arguments.
//
// Example:
//
//	first := 10
//	page, err := cursor.Slice(users, &paging.PageArgs{First: &first})
func Slice[T any](items []T, args *paging.PageArgs, opts ...paging.PaginateOption) (*paging.PageResult[T], error) {
	cfg := paging.ApplyPaginateOptions(opts...)

	w, err := NewWindow(args, cfg)
	if err != nil {
		return nil, err
	}

	return SliceWindow(items, w, cfg.IncludeTotalCount), nil
}

// SliceWindow applies an already calculated window to items.
func SliceWindow[T any](items []T, w Window, includeTotalCount bool) *paging.PageResult[T] {
	indexed := Index(items)
	lo, hi := bounds(w, len(indexed))

	var totalCount *int
	if includeTotalCount {
		n := len(items)
		totalCount = &n
	}

	return BuildResult(w, indexed[lo:hi], totalCount)
}

// Index pairs every item with its 1-based position in items.
func Index[T any](items []T) []paging.IndexedResult[T] {
	indexed := make([]paging.IndexedResult[T], len(items))
	for i, item := range items {
		indexed[i] = paging.IndexedResult[T]{Index: i + 1, Node: item}
	}
	return indexed
}

// bounds returns the half-open slice bounds of w over n indexed items,
// including the over-fetched row.
func bounds(w Window, n int) (int, int) {
	switch w := w.(type) {
	case Range:
		lo, hi := 0, n
		if w.Start.Valid {
			lo = w.Start.Int - 1
		}
		if end := w.FetchEnd(); end.Valid {
			hi = end.Int
		}
		return clamp(lo, n), max(clamp(hi, n), clamp(lo, n))
	case Tail:
		last, hi := n, n
		if w.End.Valid {
			last = clamp(w.End.Int, n)
			hi = clamp(w.FetchEnd().Int, n)
		}
		lo := clamp(max(last-w.Last, w.After), n)
		return lo, max(hi, lo)
	default:
		return 0, 0
	}
}

func clamp(i, n int) int {
	return min(max(i, 0), n)
}
