// Package enginerr defines the error taxonomy shared by the document model.
//
// Every failure is synchronous. Callers match the category with errors.Is
// against the sentinel values and use errors.As to recover the operation
// and location from PositionError or RangeError.
package enginerr

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrOutOfRange indicates a position or range outside the current content.
	ErrOutOfRange = errors.New("out of range")

	// ErrNotFound indicates a range query matched no nodes.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a malformed argument, such as empty content.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConcurrentModification indicates an iterator outlived its backing list.
	ErrConcurrentModification = errors.New("list modified during iteration")
)

// PositionError records a failure at a single position.
type PositionError struct {
	Op  string
	Pos int
	Err error
}

// NewPositionError creates a PositionError.
func NewPositionError(op string, pos int, err error) *PositionError {
	return &PositionError{Op: op, Pos: pos, Err: err}
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s %d: %v", e.Op, e.Pos, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// RangeError records a failure for a closed interval [Start, End].
// End is -1 when the queried range has no upper bound.
type RangeError struct {
	Op    string
	Start int
	End   int
	Err   error
}

// NewRangeError creates a RangeError.
func NewRangeError(op string, start, end int, err error) *RangeError {
	return &RangeError{Op: op, Start: start, End: end, Err: err}
}

func (e *RangeError) Error() string {
	if e.End < 0 {
		return fmt.Sprintf("%s [%d, inf]: %v", e.Op, e.Start, e.Err)
	}
	return fmt.Sprintf("%s [%d, %d]: %v", e.Op, e.Start, e.End, e.Err)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
