package property

import (
	"fmt"

	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/ostree"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// Run is a maximal span of positions sharing one property.
type Run[P Value[P]] struct {
	Range    textrange.Range
	Property P
}

// List is an ordered sequence of runs covering positions [0, TotalSize).
// Runs never have zero size.
type List[P Value[P]] struct {
	tree *ostree.Tree[P]
}

// NewList creates an empty list.
func NewList[P Value[P]]() *List[P] {
	return &List[P]{tree: ostree.New[P]()}
}

// Init seeds an empty list with a single run of the given size.
// It is a no-op when size is not positive.
func (l *List[P]) Init(size int, prop P) error {
	if !l.tree.IsEmpty() {
		return fmt.Errorf("init property list: already holds %d runs: %w", l.tree.Len(), enginerr.ErrInvalidArgument)
	}
	if size <= 0 {
		return nil
	}
	return l.tree.Insert(l.tree.NewNode(size, prop.Clone()), ostree.Nil, false)
}

// RunCount returns the number of runs.
func (l *List[P]) RunCount() int {
	return l.tree.Len()
}

// TotalSize returns the number of positions covered by the runs.
func (l *List[P]) TotalSize() int {
	return l.tree.TotalSize()
}

// IsEmpty reports whether the list has no runs.
func (l *List[P]) IsEmpty() bool {
	return l.tree.IsEmpty()
}

// Runs returns every run in order.
func (l *List[P]) Runs() []Run[P] {
	runs := make([]Run[P], 0, l.tree.Len())
	pos := 0
	l.tree.Walk(func(id ostree.NodeID) bool {
		size := l.tree.Size(id)
		runs = append(runs, Run[P]{Range: textrange.New(pos, size), Property: l.tree.Value(id)})
		pos += size
		return true
	})
	return runs
}

// At returns the run containing pos.
func (l *List[P]) At(pos int) (Run[P], error) {
	res, err := l.tree.Find(pos)
	if err != nil {
		return Run[P]{}, err
	}
	return Run[P]{
		Range:    textrange.New(res.Start, l.tree.Size(res.Target)),
		Property: l.tree.Value(res.Target),
	}, nil
}

// CreateIterator returns an iterator over the runs intersecting limit,
// positioned at the run containing limit.Start. Pass textrange.From(0) to
// visit every run.
func (l *List[P]) CreateIterator(limit textrange.Range) *Iterator[P] {
	it := &Iterator[P]{list: l, limit: limit, node: ostree.Nil}
	// A start outside the list leaves the iterator exhausted.
	_ = it.Find(limit.Start)
	return it
}

// OnInsert widens the run that receives the inserted positions. Text
// inserted at r.Start joins the run that held r.Start before the edit, or
// the last run when r.Start is the end of the list.
func (l *List[P]) OnInsert(r textrange.Range, prop P) error {
	if r.IsEmpty() {
		return nil
	}
	if l.tree.IsEmpty() {
		return l.seed(r, prop)
	}
	id, err := l.following(r.Start)
	if err != nil {
		return err
	}
	l.enlarge(id, r.Length)
	return nil
}

// OnDelete keeps the list in step with a text deletion.
func (l *List[P]) OnDelete(r textrange.Range) error {
	return l.DeleteAndCompact(r)
}

// DeleteAndCompact removes the positions in r and merges the runs left
// adjacent by the deletion when their properties are the same. A range
// running past the end is clipped.
func (l *List[P]) DeleteAndCompact(r textrange.Range) error {
	if r.IsEmpty() || l.tree.IsEmpty() {
		return nil
	}
	if r.Start < 0 || r.Start >= l.tree.TotalSize() {
		return enginerr.NewPositionError("delete properties", r.Start, enginerr.ErrOutOfRange)
	}
	span, err := l.tree.FindNodes(r)
	if err != nil {
		return err
	}
	if err := l.remove(span); err != nil {
		return err
	}
	return l.compactAt(r.Start)
}

// OnModify replaces the properties of the positions in r with prop. The
// runs partially covered by r are split at its boundaries, the covered runs
// collapse into one, and the new run merges with equal neighbours. A range
// running past the end is clipped.
func (l *List[P]) OnModify(r textrange.Range, prop P) error {
	if r.IsEmpty() {
		return nil
	}
	total := l.tree.TotalSize()
	if r.Start < 0 || r.Start >= total {
		return enginerr.NewPositionError("modify properties", r.Start, enginerr.ErrOutOfRange)
	}
	end := min(r.End(), total-1)
	size := end - r.Start + 1

	if _, err := l.splitAt(r.Start); err != nil {
		return err
	}
	if end+1 < total {
		if _, err := l.splitAt(end + 1); err != nil {
			return err
		}
	}

	span, err := l.tree.FindNodes(textrange.New(r.Start, size))
	if err != nil {
		return err
	}
	first := span.Nodes[0]
	for _, id := range span.Nodes[1:] {
		if err := l.tree.Delete(id); err != nil {
			return err
		}
	}
	l.tree.SetValue(first, prop.Clone())
	l.tree.SetSize(first, size)
	l.tree.FixOnPath(first)

	if err := l.compactAt(end + 1); err != nil {
		return err
	}
	return l.compactAt(r.Start)
}

// Validate checks the underlying tree invariants and that no run is empty.
func (l *List[P]) Validate() error {
	if err := l.tree.Validate(); err != nil {
		return err
	}
	var bad error
	l.tree.Walk(func(id ostree.NodeID) bool {
		if l.tree.Size(id) <= 0 {
			bad = fmt.Errorf("run %d has size %d: %w", id, l.tree.Size(id), enginerr.ErrInvalidArgument)
			return false
		}
		return true
	})
	return bad
}

// seed creates the first run of an empty list.
func (l *List[P]) seed(r textrange.Range, prop P) error {
	if r.Start != 0 {
		return enginerr.NewPositionError("insert properties", r.Start, enginerr.ErrOutOfRange)
	}
	return l.tree.Insert(l.tree.NewNode(r.Length, prop.Clone()), ostree.Nil, false)
}

// following returns the run holding pos, or the last run when pos is the
// end of the list.
func (l *List[P]) following(pos int) (ostree.NodeID, error) {
	if pos == l.tree.TotalSize() {
		return l.tree.Last(), nil
	}
	res, err := l.tree.Find(pos)
	if err != nil {
		return ostree.Nil, err
	}
	return res.Target, nil
}

// preceding returns the run holding pos-1, or the first run when pos is 0.
func (l *List[P]) preceding(pos int) (ostree.NodeID, error) {
	if pos == 0 {
		return l.tree.First(), nil
	}
	if pos < 0 || pos > l.tree.TotalSize() {
		return ostree.Nil, enginerr.NewPositionError("insert properties", pos, enginerr.ErrOutOfRange)
	}
	res, err := l.tree.Find(pos - 1)
	if err != nil {
		return ostree.Nil, err
	}
	return res.Target, nil
}

func (l *List[P]) enlarge(id ostree.NodeID, n int) {
	l.tree.SetSize(id, l.tree.Size(id)+n)
	l.tree.FixOnPath(id)
}

// splitAt makes pos the first position of a run. The run holding pos keeps
// its head and a new run with a copy of its property takes the tail.
func (l *List[P]) splitAt(pos int) (ostree.NodeID, error) {
	res, err := l.tree.Find(pos)
	if err != nil {
		return ostree.Nil, err
	}
	if res.Offset == 0 {
		return res.Target, nil
	}
	size := l.tree.Size(res.Target)
	tail := l.tree.NewNode(size-res.Offset, l.tree.Value(res.Target).Clone())
	l.tree.SetSize(res.Target, res.Offset)
	l.tree.FixOnPath(res.Target)
	if err := l.tree.Insert(tail, res.Target, false); err != nil {
		return ostree.Nil, err
	}
	return tail, nil
}

// insertRun places a new run of the given size so that it starts at pos,
// splitting the run holding pos when needed.
func (l *List[P]) insertRun(pos, size int, prop P) error {
	id := l.tree.NewNode(size, prop.Clone())
	if pos == l.tree.TotalSize() {
		return l.tree.Insert(id, l.tree.Last(), false)
	}
	next, err := l.splitAt(pos)
	if err != nil {
		return err
	}
	return l.tree.Insert(id, next, true)
}

// compactAt merges the runs on either side of the boundary before pos when
// their properties are the same.
func (l *List[P]) compactAt(pos int) error {
	if pos <= 0 || pos >= l.tree.TotalSize() {
		return nil
	}
	left, err := l.tree.Find(pos - 1)
	if err != nil {
		return err
	}
	right, err := l.tree.Find(pos)
	if err != nil {
		return err
	}
	if left.Target == right.Target {
		return nil
	}
	if !l.tree.Value(left.Target).IsSame(l.tree.Value(right.Target)) {
		return nil
	}

	return l.merge(left.Target, right.Target)
}

// merge folds right into left, which precedes it.
func (l *List[P]) merge(left, right ostree.NodeID) error {
	size := l.tree.Size(right)
	if err := l.tree.Delete(right); err != nil {
		return err
	}
	l.enlarge(left, size)
	return nil
}

// remove drops the positions covered by span. Fully covered runs are
// deleted and partially covered ones shrink.
func (l *List[P]) remove(span ostree.Span) error {
	last := len(span.Nodes) - 1
	for i, id := range span.Nodes {
		from, to := 0, l.tree.Size(id)-1
		if i == 0 {
			from = span.StartPos
		}
		if i == last {
			to = span.EndPos
		}
		covered := to - from + 1
		if covered == l.tree.Size(id) {
			if err := l.tree.Delete(id); err != nil {
				return err
			}
			continue
		}
		l.tree.SetSize(id, l.tree.Size(id)-covered)
		l.tree.FixOnPath(id)
	}
	return nil
}
