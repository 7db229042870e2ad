package cursor

import (
	"github.com/aarondl/null/v8"

	"github.com/nrfta/relay-paging"
)

// Input holds decoded Relay arguments. AfterIndex and BeforeIndex are the
// 1-based ordinal positions carried by the After and Before cursors.
type Input struct {
	AfterIndex  null.Int
	BeforeIndex null.Int
	First       null.Int
	Last        null.Int
}

// NewWindow decodes the cursors in args, checks the page size caps of cfg
// and calculates the window. A nil cfg uses paging.NewPageConfig().
func NewWindow(args *paging.PageArgs, cfg *paging.PageConfig) (Window, error) {
	after, err := paging.DecodeCursorPtr(args.GetAfter())
	if err != nil {
		return nil, err
	}

	before, err := paging.DecodeCursorPtr(args.GetBefore())
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		cfg = paging.NewPageConfig()
	}
	if err := cfg.Validate(args); err != nil {
		return nil, err
	}

	return Calculate(Input{
		AfterIndex:  after,
		BeforeIndex: before,
		First:       null.IntFromPtr(args.GetFirst()),
		Last:        null.IntFromPtr(args.GetLast()),
	})
}

// Calculate maps Relay arguments to a Window following the Relay cursor
// connections algorithm: After/Before bound the set, First keeps the head
// of what remains, then Last keeps the tail of that.
//
// When Last narrows a set whose end is unknown, or whose end was set by
// First and so may lie past the last row, the result is a Tail. Everything
// else is a Range.
func Calculate(in Input) (Window, error) {
	if in.First.Valid && in.First.Int < 0 {
		return nil, paging.InvalidArgumentf("first must be non-negative, got %d", in.First.Int)
	}
	if in.Last.Valid && in.Last.Int < 0 {
		return nil, paging.InvalidArgumentf("last must be non-negative, got %d", in.Last.Int)
	}
	if in.AfterIndex.Valid && in.BeforeIndex.Valid && in.AfterIndex.Int > in.BeforeIndex.Int {
		return nil, paging.InvalidArgumentf("after must precede before (after=%d, before=%d)",
			in.AfterIndex.Int, in.BeforeIndex.Int)
	}

	var start, end null.Int
	count := Unbounded

	switch {
	case in.AfterIndex.Valid && in.BeforeIndex.Valid:
		start = null.IntFrom(in.AfterIndex.Int + 1)
		end = null.IntFrom(in.BeforeIndex.Int - 1)
		count = max(0, end.Int-start.Int+1)
	case in.AfterIndex.Valid:
		start = null.IntFrom(in.AfterIndex.Int + 1)
	case in.BeforeIndex.Valid:
		start = null.IntFrom(1)
		end = null.IntFrom(in.BeforeIndex.Int - 1)
		count = max(0, end.Int)
	default:
		start = null.IntFrom(1)
	}

	endFromFirst := false
	if in.First.Valid && count > in.First.Int {
		end = null.IntFrom(start.Int + in.First.Int - 1)
		count = in.First.Int
		endFromFirst = !in.BeforeIndex.Valid
	}

	if in.Last.Valid && count > in.Last.Int {
		if !end.Valid || endFromFirst {
			return Tail{Last: in.Last.Int, After: start.Int - 1, End: end}, nil
		}
		start = null.IntFrom(end.Int - in.Last.Int + 1)
		count = in.Last.Int
	}

	return Range{Start: start, End: end, Count: count}, nil
}
