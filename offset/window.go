package offset

import (
	"math"

	"github.com/nrfta/relay-paging"
)

// Unbounded is the Take of a window with no page size.
const Unbounded = math.MaxInt

// Window is a skip/take slice of an ordered set.
type Window struct {
	Skip int
	Take int
}

// Calculate validates args and returns its window. Skip defaults to 0 and
// Take to Unbounded, which reads the whole set like a cursor request with no
// arguments.
func Calculate(args *paging.OffsetArgs) (Window, error) {
	w := Window{Take: Unbounded}

	if skip := args.GetSkip(); skip != nil {
		if *skip < 0 {
			return Window{}, paging.InvalidArgumentf("skip must be non-negative, got %d", *skip)
		}
		w.Skip = *skip
	}

	if take := args.GetTake(); take != nil {
		if *take <= 0 {
			return Window{}, paging.InvalidArgumentf("take must be positive, got %d", *take)
		}
		w.Take = *take
	}

	return w, nil
}

// NewWindow checks the page size caps of cfg and calculates the window.
// A nil cfg uses paging.NewPageConfig().
func NewWindow(args *paging.OffsetArgs, cfg *paging.PageConfig) (Window, error) {
	if cfg == nil {
		cfg = paging.NewPageConfig()
	}
	if err := cfg.ValidateOffset(args); err != nil {
		return Window{}, err
	}
	return Calculate(args)
}

// FetchLimit is the number of rows to read: Take plus one over-fetched row
// to detect a next page, or 0 when the window is unbounded.
func (w Window) FetchLimit() int {
	if w.Take == Unbounded {
		return 0
	}
	return w.Take + 1
}

// BuildResult turns the rows read for w (at most FetchLimit of them,
// starting at Skip) into a page, dropping the over-fetched row.
func BuildResult[T any](w Window, rows []T, totalCount *int) *paging.PageResult[T] {
	hasNext := w.Take != Unbounded && len(rows) > w.Take
	if hasNext {
		rows = rows[:w.Take]
	}

	items := make([]paging.IndexedResult[T], len(rows))
	for i, row := range rows {
		items[i] = paging.IndexedResult[T]{Index: w.Skip + i + 1, Node: row}
	}

	return &paging.PageResult[T]{
		Items:           items,
		TotalCount:      totalCount,
		HasNextPage:     hasNext,
		HasPreviousPage: w.Skip > 0 && len(rows) > 0,
	}
}
