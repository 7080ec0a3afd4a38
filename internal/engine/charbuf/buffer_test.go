package charbuf

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

func TestNewEmpty(t *testing.T) {
	b := New("")

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.NextPos())
	text, err := b.GetText(textrange.From(0))
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestNewWithOriginal(t *testing.T) {
	b := New("0123456789")

	assert.Equal(t, 10, b.Len())
	text, err := b.GetText(textrange.New(0, 2))
	require.NoError(t, err)
	assert.Equal(t, "01", text)
	text, err = b.GetText(textrange.New(6, 4))
	require.NoError(t, err)
	assert.Equal(t, "6789", text)
}

func TestAppend(t *testing.T) {
	t.Run("empty buffer", func(t *testing.T) {
		b := New("")
		r, err := b.Append("abc")
		require.NoError(t, err)
		assert.Equal(t, textrange.New(0, 3), r)
		assert.Equal(t, 3, b.Len())

		text, err := b.GetText(textrange.New(0, 1))
		require.NoError(t, err)
		assert.Equal(t, "a", text)

		_, err = b.GetText(textrange.New(2, 4))
		assert.True(t, errors.Is(err, enginerr.ErrOutOfRange))
	})

	t.Run("after original", func(t *testing.T) {
		b := New("0123456789")
		r, err := b.Append("abcd")
		require.NoError(t, err)
		assert.Equal(t, textrange.New(10, 4), r)
		assert.Equal(t, 14, b.Len())
		assert.Equal(t, 4, b.NextPos())

		for _, tt := range []struct {
			r    textrange.Range
			want string
		}{
			{textrange.New(0, 10), "0123456789"},
			{textrange.New(10, 4), "abcd"},
			{textrange.New(8, 4), "89ab"},
			{textrange.From(12), "cd"},
		} {
			text, err := b.GetText(tt.r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, text, tt.r.String())
		}
	})

	t.Run("empty content", func(t *testing.T) {
		b := New("x")
		_, err := b.Append("")
		assert.True(t, errors.Is(err, enginerr.ErrInvalidArgument))
		assert.Equal(t, 1, b.Len())
	})
}

func TestAppendFillsPage(t *testing.T) {
	b := New("")
	_, err := b.Append(strings.Repeat("0123456789", 102) + "0123")
	require.NoError(t, err)
	assert.Equal(t, 0, b.NextPos()%DefaultPageSize)
	assert.Equal(t, 1, b.PageCount())

	_, err = b.Append("4")
	require.NoError(t, err)
	assert.Equal(t, 1, b.NextPos()%DefaultPageSize)
	assert.Equal(t, 2, b.PageCount())
}

func TestAppendAcrossPages(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 10000; i++ {
		sb.WriteByte(byte('0' + i%10))
	}
	content := sb.String()

	b := New("")
	r, err := b.Append(content)
	require.NoError(t, err)
	assert.Equal(t, 10000, r.Length)
	assert.Equal(t, 10, b.PageCount())

	text, err := b.GetText(textrange.New(100, 2000))
	require.NoError(t, err)
	assert.Equal(t, content[100:2100], text)
}

func TestSmallPagesStitchWithOriginal(t *testing.T) {
	b := NewWithPageSize("héllo", 4)
	first, err := b.Append("wörld")
	require.NoError(t, err)
	second, err := b.Append("!?")
	require.NoError(t, err)

	assert.Equal(t, textrange.New(5, 5), first)
	assert.Equal(t, textrange.New(10, 2), second)
	assert.Equal(t, 2, b.PageCount())

	text, err := b.GetText(textrange.New(3, 8))
	require.NoError(t, err)
	assert.Equal(t, "lowörld!", text)

	all, err := b.GetText(textrange.From(0))
	require.NoError(t, err)
	assert.Equal(t, "héllowörld!?", all)
}

func TestCharCodeAt(t *testing.T) {
	b := NewWithPageSize("ab", 2)
	_, err := b.Append("cdé")
	require.NoError(t, err)

	for i, want := range []rune("abcdé") {
		got, err := b.CharCodeAt(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	for _, index := range []int{-1, 5} {
		_, err := b.CharCodeAt(index)
		assert.True(t, errors.Is(err, enginerr.ErrOutOfRange), "index %d", index)
	}
}

func TestGetTextOutOfRange(t *testing.T) {
	b := New("abc")

	for _, r := range []textrange.Range{
		textrange.New(-1, 2),
		textrange.New(2, 2),
		textrange.From(4),
		textrange.New(2, math.MaxInt-1),
		textrange.New(math.MaxInt-1, 5),
	} {
		_, err := b.GetText(r)
		assert.True(t, errors.Is(err, enginerr.ErrOutOfRange), r.String())
	}
}
