// Package textrange provides the closed position interval used to address
// document content, character buffer addresses, and formatting runs.
package textrange

import (
	"fmt"
	"math"
)

// Infinite is the length of a range with no upper bound.
const Infinite = math.MaxInt

// Range is the closed interval [Start, Start+Length-1].
// A Range is a query or result value; it is never stored as tree state.
type Range struct {
	Start  int
	Length int
}

// New creates a Range of the given length.
func New(start, length int) Range {
	return Range{Start: start, Length: length}
}

// From creates an infinite Range starting at start.
func From(start int) Range {
	return Range{Start: start, Length: Infinite}
}

// End returns the inclusive end position.
// An infinite range, or one too long to end before math.MaxInt, ends at
// math.MaxInt.
func (r Range) End() int {
	if r.IsInfinite() || (r.Start >= 0 && r.Length > 0 && r.Length-1 > math.MaxInt-r.Start) {
		return math.MaxInt
	}
	return r.Start + r.Length - 1
}

// IsInfinite reports whether the range has no upper bound.
func (r Range) IsInfinite() bool {
	return r.Length == Infinite
}

// IsEmpty reports whether the range covers no positions.
func (r Range) IsEmpty() bool {
	return r.Length <= 0
}

// Equal reports whether both ranges have the same start and length.
func (r Range) Equal(other Range) bool {
	return r.Start == other.Start && r.Length == other.Length
}

// Contains reports whether pos lies inside the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos <= r.End()
}

// IsIntersecting reports whether the two ranges share at least one position.
func (r Range) IsIntersecting(other Range) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Start <= other.End() && r.End() >= other.Start
}

// Intersection returns the overlapping sub-range.
// ok is false when the ranges do not intersect.
func (r Range) Intersection(other Range) (Range, bool) {
	if !r.IsIntersecting(other) {
		return Range{}, false
	}
	start := max(r.Start, other.Start)
	end := min(r.End(), other.End())
	if end == math.MaxInt {
		return From(start), true
	}
	return New(start, end-start+1), true
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	if r.IsInfinite() {
		return fmt.Sprintf("[%d, inf]", r.Start)
	}
	return fmt.Sprintf("[%d, %d]", r.Start, r.End())
}
