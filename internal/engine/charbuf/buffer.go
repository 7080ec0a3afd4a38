// Package charbuf provides the paged, append-only character store behind the
// piece table.
//
// The buffer exposes one virtual address space: the original string occupies
// [0, len(original)) and every appended character follows it. Appended
// characters are written into fixed-capacity pages that are allocated in
// order and never moved or rewritten, so an address handed out by Append
// stays valid for the buffer's whole lifetime.
//
// Positions count Unicode code points.
package charbuf

import (
	"fmt"
	"strings"

	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// DefaultPageSize is the capacity of one page in characters.
const DefaultPageSize = 1024

type page []rune

// Buffer is an append-only character store. It is not safe for concurrent use.
type Buffer struct {
	original []rune
	pages    []page
	pageSize int
	next     int // appended characters so far
}

// New creates a buffer whose first addresses hold original.
func New(original string) *Buffer {
	return NewWithPageSize(original, DefaultPageSize)
}

// NewWithPageSize creates a buffer with a custom page capacity.
// Non-positive sizes fall back to DefaultPageSize.
func NewWithPageSize(original string, pageSize int) *Buffer {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Buffer{
		original: []rune(original),
		pageSize: pageSize,
	}
}

// Len returns the total virtual length: the original string plus everything
// appended.
func (b *Buffer) Len() int {
	return len(b.original) + b.next
}

// NextPos returns the number of characters appended so far.
func (b *Buffer) NextPos() int {
	return b.next
}

// OriginalLen returns the length of the original string.
func (b *Buffer) OriginalLen() int {
	return len(b.original)
}

// PageSize returns the page capacity.
func (b *Buffer) PageSize() int {
	return b.pageSize
}

// PageCount returns the number of allocated pages.
func (b *Buffer) PageCount() int {
	return len(b.pages)
}

// Append writes content after the last appended character and returns the
// virtual range it now occupies.
func (b *Buffer) Append(content string) (textrange.Range, error) {
	if content == "" {
		return textrange.Range{}, fmt.Errorf("append: empty content: %w", enginerr.ErrInvalidArgument)
	}

	start := b.Len()
	for _, r := range content {
		p := b.appendPage()
		b.pages[p] = append(b.pages[p], r)
		b.next++
	}
	return textrange.New(start, b.Len()-start), nil
}

// appendPage returns the index of the page that receives the next character,
// allocating a fresh page when the current one is full.
func (b *Buffer) appendPage() int {
	if b.next%b.pageSize == 0 && b.next/b.pageSize == len(b.pages) {
		b.pages = append(b.pages, make(page, 0, b.pageSize))
	}
	return b.next / b.pageSize
}

// CharCodeAt returns the character at a virtual address.
func (b *Buffer) CharCodeAt(index int) (rune, error) {
	if index < 0 || index >= b.Len() {
		return 0, enginerr.NewPositionError("char code at", index, enginerr.ErrOutOfRange)
	}
	if index < len(b.original) {
		return b.original[index], nil
	}
	i := index - len(b.original)
	return b.pages[i/b.pageSize][i%b.pageSize], nil
}

// GetText returns the characters in r. An infinite range reads to the end of
// the buffer.
func (b *Buffer) GetText(r textrange.Range) (string, error) {
	length := r.Length
	if r.IsInfinite() {
		length = b.Len() - r.Start
	}
	if r.Start < 0 || length < 0 || length > b.Len()-r.Start {
		end := r.End()
		if r.IsInfinite() {
			end = -1
		}
		return "", enginerr.NewRangeError("get text", r.Start, end, enginerr.ErrOutOfRange)
	}

	var sb strings.Builder
	sb.Grow(length)
	pos := r.Start
	remaining := length

	if pos < len(b.original) {
		n := min(remaining, len(b.original)-pos)
		sb.WriteString(string(b.original[pos : pos+n]))
		pos += n
		remaining -= n
	}

	i := pos - len(b.original)
	for remaining > 0 {
		p := b.pages[i/b.pageSize]
		off := i % b.pageSize
		n := min(remaining, len(p)-off)
		sb.WriteString(string(p[off : off+n]))
		i += n
		remaining -= n
	}
	return sb.String(), nil
}
