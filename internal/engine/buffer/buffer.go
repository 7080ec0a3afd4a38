package buffer

import (
	"fmt"
	"strings"

	"github.com/dshills/docmodel/internal/engine/charbuf"
	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/ostree"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// piece is the payload of a tree node: the node's size is the piece length
// and bufferStart is where its characters begin in the character buffer.
type piece struct {
	bufferStart int
}

// Piece describes one piece of the table.
type Piece struct {
	BufferStart int
	Size        int
}

// Buffer is a piece table over an append-only character buffer.
type Buffer struct {
	chars    *charbuf.Buffer
	tree     *ostree.Tree[piece]
	pageSize int
}

// New creates a buffer holding original.
func New(original string, opts ...Option) *Buffer {
	b := &Buffer{
		tree:     ostree.New[piece](),
		pageSize: charbuf.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.chars = charbuf.NewWithPageSize(original, b.pageSize)
	if n := b.chars.OriginalLen(); n > 0 {
		id := b.tree.NewNode(n, piece{bufferStart: 0})
		_ = b.tree.Insert(id, ostree.Nil, false) // an empty tree always accepts its root
	}
	return b
}

// Len returns the document length in characters.
func (b *Buffer) Len() int {
	return b.tree.TotalSize()
}

// IsEmpty reports whether the document has no characters.
func (b *Buffer) IsEmpty() bool {
	return b.tree.IsEmpty()
}

// PieceCount returns the number of pieces.
func (b *Buffer) PieceCount() int {
	return b.tree.Len()
}

// Pieces returns the pieces in document order.
func (b *Buffer) Pieces() []Piece {
	pieces := make([]Piece, 0, b.tree.Len())
	b.tree.Walk(func(id ostree.NodeID) bool {
		pieces = append(pieces, Piece{
			BufferStart: b.tree.Value(id).bufferStart,
			Size:        b.tree.Size(id),
		})
		return true
	})
	return pieces
}

// Chars returns the underlying character buffer.
func (b *Buffer) Chars() *charbuf.Buffer {
	return b.chars
}

// String returns the whole document.
func (b *Buffer) String() string {
	if b.IsEmpty() {
		return ""
	}
	text, err := b.GetText(textrange.From(0))
	if err != nil {
		return ""
	}
	return text
}

// GetText returns the characters in r, in document order. An empty range, or
// any range starting at 0 on an empty document, reads as "".
func (b *Buffer) GetText(r textrange.Range) (string, error) {
	if r.IsEmpty() || (b.IsEmpty() && r.Start == 0) {
		return "", nil
	}
	span, err := b.tree.FindNodes(r)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	last := len(span.Nodes) - 1
	for i, id := range span.Nodes {
		start, end := b.bounds(span, i, last, id)
		text, err := b.chars.GetText(textrange.New(b.tree.Value(id).bufferStart+start, end-start+1))
		if err != nil {
			return "", fmt.Errorf("read piece %d: %w", i, err)
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// Insert adds content next to the character at pos: after it by default, or
// in front of it when before is true. pos == Len() appends. The position is
// validated before anything is written to the character buffer.
func (b *Buffer) Insert(pos int, content string, before bool) error {
	if content == "" {
		return nil
	}
	limit := b.Len()
	if b.IsEmpty() {
		limit = 0
	}
	if pos < 0 || pos > limit {
		return enginerr.NewPositionError("insert", pos, enginerr.ErrOutOfRange)
	}

	lastEnd := b.chars.Len() - 1
	added, err := b.chars.Append(content)
	if err != nil {
		return err
	}

	if b.IsEmpty() {
		return b.tree.Insert(b.newPiece(added), ostree.Nil, false)
	}

	var target ostree.NodeID
	var offset int
	if pos == limit {
		target = b.tree.Last()
		offset = b.tree.Size(target) - 1
		before = false
	} else {
		res, err := b.tree.Find(pos)
		if err != nil {
			return err
		}
		target, offset = res.Target, res.Offset
	}

	size := b.tree.Size(target)
	p := b.tree.Value(target)
	switch {
	case offset == 0 && before:
		return b.tree.Insert(b.newPiece(added), target, true)

	case offset == size-1 && !before:
		// Nothing was appended since target was written: grow it in place.
		if p.bufferStart+size-1 == lastEnd {
			b.tree.SetSize(target, size+added.Length)
			b.tree.FixOnPath(target)
			return nil
		}
		return b.tree.Insert(b.newPiece(added), target, false)

	default:
		keep := offset + 1
		if before {
			keep = offset
		}
		tail := b.tree.NewNode(size-keep, piece{bufferStart: p.bufferStart + keep})
		b.tree.SetSize(target, keep)
		b.tree.FixOnPath(target)
		if err := b.tree.Insert(tail, target, false); err != nil {
			return err
		}
		return b.tree.Insert(b.newPiece(added), target, false)
	}
}

// Delete removes the characters in r. A range running past the end is
// clipped, and an empty range is a no-op.
func (b *Buffer) Delete(r textrange.Range) error {
	if r.IsEmpty() {
		return nil
	}
	span, err := b.tree.FindNodes(r)
	if err != nil {
		return err
	}

	last := len(span.Nodes) - 1
	for i, id := range span.Nodes {
		size := b.tree.Size(id)
		start, end := b.bounds(span, i, last, id)
		p := b.tree.Value(id)

		switch {
		case start == 0 && end == size-1:
			if err := b.tree.Delete(id); err != nil {
				return err
			}
		case start > 0 && end < size-1:
			tail := b.tree.NewNode(size-1-end, piece{bufferStart: p.bufferStart + end + 1})
			b.tree.SetSize(id, start)
			b.tree.FixOnPath(id)
			if err := b.tree.Insert(tail, id, false); err != nil {
				return err
			}
		case start == 0:
			removed := end + 1
			b.tree.SetValue(id, piece{bufferStart: p.bufferStart + removed})
			b.tree.SetSize(id, size-removed)
			b.tree.FixOnPath(id)
		default:
			b.tree.SetSize(id, start)
			b.tree.FixOnPath(id)
		}
	}
	return nil
}

// Validate checks the piece tree's invariants.
func (b *Buffer) Validate() error {
	return b.tree.Validate()
}

func (b *Buffer) newPiece(added textrange.Range) ostree.NodeID {
	return b.tree.NewNode(added.Length, piece{bufferStart: added.Start})
}

// bounds returns the inclusive offsets a span covers inside its i-th node.
func (b *Buffer) bounds(span ostree.Span, i, last int, id ostree.NodeID) (start, end int) {
	end = b.tree.Size(id) - 1
	if i == 0 {
		start = span.StartPos
	}
	if i == last {
		end = span.EndPos
	}
	return start, end
}
