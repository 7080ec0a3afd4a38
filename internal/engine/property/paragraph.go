package property

import (
	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// PlaceholderParagraphReturn is the character that ends a paragraph.
const PlaceholderParagraphReturn = '\n'

// ParagraphList tracks paragraph properties with one run per paragraph.
// Every run except the last ends with a separator; the last run ends with
// one when the text does.
type ParagraphList struct {
	List[Property]
	terminated bool // last run ends with a separator
}

// NewParagraphList creates an empty paragraph list.
func NewParagraphList() *ParagraphList {
	return &ParagraphList{List: *NewList[Property]()}
}

// OnInsert widens the paragraph receiving text at r and then splits it after
// every separator in text. Both halves of a split keep the paragraph's
// property. Text appended after a final separator opens a new paragraph
// with the property of the one before it. prop is used only when the list
// is empty.
func (l *ParagraphList) OnInsert(r textrange.Range, text string, prop Property) error {
	if r.IsEmpty() {
		return nil
	}

	atEnd := r.Start == l.TotalSize()
	switch {
	case l.IsEmpty():
		if err := l.seed(r, prop); err != nil {
			return err
		}
	case atEnd && l.terminated:
		last := l.tree.Last()
		if err := l.insertRun(r.Start, r.Length, l.tree.Value(last)); err != nil {
			return err
		}
	default:
		if err := l.List.OnInsert(r, prop); err != nil {
			return err
		}
	}

	total := l.TotalSize()
	i := 0
	var last rune
	for _, ch := range text {
		if i >= r.Length {
			break
		}
		last = ch
		if ch == PlaceholderParagraphReturn {
			if next := r.Start + i + 1; next < total {
				if _, err := l.splitAt(next); err != nil {
					return err
				}
			}
		}
		i++
	}
	if atEnd {
		l.terminated = last == PlaceholderParagraphReturn
	}
	return nil
}

// OnDelete removes the positions in r. A paragraph that loses its separator
// absorbs the paragraph after it and keeps its own property.
func (l *ParagraphList) OnDelete(r textrange.Range) error {
	if r.IsEmpty() || l.IsEmpty() {
		return nil
	}
	total := l.TotalSize()
	if r.Start < 0 || r.Start >= total {
		return enginerr.NewPositionError("delete paragraphs", r.Start, enginerr.ErrOutOfRange)
	}
	span, err := l.tree.FindNodes(r)
	if err != nil {
		return err
	}
	midRun := span.StartPos > 0
	reachesEnd := r.End() >= total-1
	if err := l.remove(span); err != nil {
		return err
	}

	switch {
	case l.IsEmpty():
		l.terminated = false
	case reachesEnd:
		l.terminated = !midRun
	case midRun:
		left, err := l.tree.Find(r.Start - 1)
		if err != nil {
			return err
		}
		right, err := l.tree.Find(r.Start)
		if err != nil {
			return err
		}
		if left.Target != right.Target {
			return l.merge(left.Target, right.Target)
		}
	}
	return nil
}

// OnModify gives every paragraph intersecting r the property prop.
// Paragraphs are never split or merged by formatting.
func (l *ParagraphList) OnModify(r textrange.Range, prop Property) error {
	if r.IsEmpty() {
		return nil
	}
	if r.Start < 0 || r.Start >= l.TotalSize() {
		return enginerr.NewPositionError("modify paragraphs", r.Start, enginerr.ErrOutOfRange)
	}
	span, err := l.tree.FindNodes(r)
	if err != nil {
		return err
	}
	for _, id := range span.Nodes {
		l.tree.SetValue(id, prop.Clone())
	}
	return nil
}

// Terminated reports whether the last paragraph ends with a separator.
func (l *ParagraphList) Terminated() bool {
	return l.terminated
}
