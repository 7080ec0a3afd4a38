package engine

import "github.com/dshills/docmodel/internal/engine/enginerr"

// Errors returned by document operations. They are the enginerr sentinels,
// so errors.Is matches failures from any layer.
var (
	// ErrOutOfRange indicates a position or range outside the document.
	ErrOutOfRange = enginerr.ErrOutOfRange

	// ErrNotFound indicates a range matched nothing.
	ErrNotFound = enginerr.ErrNotFound

	// ErrInvalidArgument indicates a malformed argument.
	ErrInvalidArgument = enginerr.ErrInvalidArgument

	// ErrConcurrentModification indicates an iterator used after an edit.
	ErrConcurrentModification = enginerr.ErrConcurrentModification
)

// PositionError and RangeError carry the failing operation and location.
type (
	PositionError = enginerr.PositionError
	RangeError    = enginerr.RangeError
)

func newPositionError(op string, pos int, err error) error {
	return enginerr.NewPositionError(op, pos, err)
}
