package cursor

import (
	"fmt"
	"math"

	"github.com/aarondl/null/v8"
)

// Unbounded is the expected count of a window with no upper limit.
const Unbounded = math.MaxInt

// Window is the slice of an ordered set selected by one set of Relay
// arguments. It is either a Range, whose bounds are known up front, or a
// Tail, whose start depends on the live row count.
//
// Consumers must handle both variants:
//
//	switch w := w.(type) {
//	case cursor.Range:
//	    // rows w.Start..w.FetchEnd()
//	case cursor.Tail:
//	    // the last w.Last rows, up to w.End when it is known
//	}
type Window interface {
	// ExpectedCount is the number of items the page holds at most, or Unbounded.
	ExpectedCount() int

	// PreviousPossible reports whether rows can exist before the window.
	PreviousPossible() bool

	// NextPossible reports whether rows can exist after the window.
	NextPossible() bool

	// EndOverfetched reports whether one row past the window is fetched so a
	// next page can be detected without counting.
	EndOverfetched() bool

	window()
}

// Range is a window with at least one known bound. Indices are 1-based and
// inclusive; an invalid End means the window runs to the end of the set.
type Range struct {
	Start null.Int
	End   null.Int
	Count int
}

// Tail is the "last N" window used when Last narrows a set whose end
// depends on the live row count: its last index is the row count, capped at
// End when First bounded the set, and it holds the Last rows up to there.
// Rows at or before After are never part of the window; After is 0 when no
// After cursor was given.
type Tail struct {
	Last  int
	After int
	End   null.Int
}

func (Range) window() {}
func (Tail) window()  {}

func (r Range) ExpectedCount() int     { return r.Count }
func (r Range) PreviousPossible() bool { return r.Start.Valid }
func (r Range) NextPossible() bool     { return r.End.Valid }
func (r Range) EndOverfetched() bool   { return r.End.Valid }

// FetchEnd is the last index to read, including the over-fetched row.
func (r Range) FetchEnd() null.Int {
	if !r.End.Valid {
		return null.Int{}
	}
	return null.IntFrom(r.End.Int + 1)
}

func (r Range) String() string {
	return fmt.Sprintf("range[%s..%s] count=%s", bound(r.Start), bound(r.End), countString(r.Count))
}

func (t Tail) ExpectedCount() int     { return t.Last }
func (t Tail) PreviousPossible() bool { return true }
func (t Tail) NextPossible() bool     { return t.End.Valid }
func (t Tail) EndOverfetched() bool   { return t.End.Valid }

// FetchEnd is the last index to read when End is known, including the
// over-fetched row.
func (t Tail) FetchEnd() null.Int {
	if !t.End.Valid {
		return null.Int{}
	}
	return null.IntFrom(t.End.Int + 1)
}

func (t Tail) String() string {
	s := fmt.Sprintf("tail[last %d", t.Last)
	if t.After > 0 {
		s += fmt.Sprintf(" after %d", t.After)
	}
	if t.End.Valid {
		s += fmt.Sprintf(" to %d", t.End.Int)
	}
	return s + "]"
}

func bound(n null.Int) string {
	if !n.Valid {
		return "?"
	}
	return fmt.Sprint(n.Int)
}

func countString(n int) string {
	if n == Unbounded {
		return "unbounded"
	}
	return fmt.Sprint(n)
}
