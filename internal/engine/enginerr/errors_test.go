package enginerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPositionError(t *testing.T) {
	err := NewPositionError("find", 12, ErrOutOfRange)

	assert.Equal(t, "find 12: out of range", err.Error())
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestRangeError(t *testing.T) {
	tests := []struct {
		name string
		err  *RangeError
		want string
	}{
		{"bounded", NewRangeError("find nodes", 2, 5, ErrNotFound), "find nodes [2, 5]: not found"},
		{"unbounded", NewRangeError("get text", 7, -1, ErrOutOfRange), "get text [7, inf]: out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", NewPositionError("find", 3, ErrOutOfRange))

	var perr *PositionError
	if assert.True(t, errors.As(wrapped, &perr)) {
		assert.Equal(t, "find", perr.Op)
		assert.Equal(t, 3, perr.Pos)
	}
	assert.True(t, errors.Is(wrapped, ErrOutOfRange))
}
