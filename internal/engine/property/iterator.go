package property

import (
	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/ostree"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// Iterator walks the runs of a List that intersect a limit range.
type Iterator[P Value[P]] struct {
	list    *List[P]
	limit   textrange.Range
	node    ostree.NodeID // next run to return
	start   int           // absolute start of node
	version uint64
}

// Limit returns the range the iterator is restricted to.
func (it *Iterator[P]) Limit() textrange.Range {
	return it.limit
}

// Find repositions the iterator on the run containing pos and takes a new
// snapshot of the list version. The run must intersect the limit; pos
// itself may lie outside it.
func (it *Iterator[P]) Find(pos int) error {
	it.node = ostree.Nil
	it.version = it.list.tree.Version()
	res, err := it.list.tree.Find(pos)
	if err != nil {
		return err
	}
	run := textrange.New(res.Start, it.list.tree.Size(res.Target))
	if !run.IsIntersecting(it.limit) {
		return enginerr.NewPositionError("iterator find", pos, enginerr.ErrOutOfRange)
	}
	it.node = res.Target
	it.start = res.Start
	return nil
}

// HasNext reports whether Next will return a run.
func (it *Iterator[P]) HasNext() bool {
	if it.node == ostree.Nil || it.stale() {
		return false
	}
	return it.current().Range.IsIntersecting(it.limit)
}

// Next returns the pending run and advances. It fails with
// enginerr.ErrConcurrentModification when the list changed since the
// iterator was created or last repositioned, and with enginerr.ErrNotFound
// when no run remains within the limit.
func (it *Iterator[P]) Next() (Run[P], error) {
	if it.stale() {
		return Run[P]{}, enginerr.ErrConcurrentModification
	}
	if it.node == ostree.Nil {
		return Run[P]{}, enginerr.NewRangeError("iterator next", it.limit.Start, limitEnd(it.limit), enginerr.ErrNotFound)
	}
	run := it.current()
	if !run.Range.IsIntersecting(it.limit) {
		return Run[P]{}, enginerr.NewRangeError("iterator next", it.limit.Start, limitEnd(it.limit), enginerr.ErrNotFound)
	}
	it.start += run.Range.Length
	it.node = it.list.tree.Next(it.node)
	return run, nil
}

func (it *Iterator[P]) current() Run[P] {
	return Run[P]{
		Range:    textrange.New(it.start, it.list.tree.Size(it.node)),
		Property: it.list.tree.Value(it.node),
	}
}

func (it *Iterator[P]) stale() bool {
	return it.version != it.list.tree.Version()
}

func limitEnd(r textrange.Range) int {
	if r.IsInfinite() {
		return -1
	}
	return r.End()
}
