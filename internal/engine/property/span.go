package property

import (
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// SpanList tracks character-level properties.
type SpanList struct {
	List[Property]
}

// NewSpanList creates an empty span list.
func NewSpanList() *SpanList {
	return &SpanList{List: *NewList[Property]()}
}

// OnInsert gives the positions in r the property prop. The run before r
// grows when it already carries prop; otherwise a new run is placed at
// r.Start, splitting the run it lands in.
func (l *SpanList) OnInsert(r textrange.Range, prop Property) error {
	if r.IsEmpty() {
		return nil
	}
	if l.IsEmpty() {
		return l.seed(r, prop)
	}

	id, err := l.preceding(r.Start)
	if err != nil {
		return err
	}
	if l.tree.Value(id).IsSame(prop) {
		l.enlarge(id, r.Length)
		return nil
	}

	if err := l.insertRun(r.Start, r.Length, prop); err != nil {
		return err
	}
	if err := l.compactAt(r.Start + r.Length); err != nil {
		return err
	}
	return l.compactAt(r.Start)
}
