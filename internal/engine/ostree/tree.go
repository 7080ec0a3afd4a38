package ostree

import (
	"fmt"

	"github.com/dshills/docmodel/internal/engine/enginerr"
	"github.com/dshills/docmodel/internal/engine/textrange"
)

// NodeID addresses a node in the tree's arena.
type NodeID int32

// Nil is the absent node. It is black and has no children.
const Nil NodeID = -1

// Color is the red-black color of a node.
type Color uint8

const (
	Red Color = iota + 1
	Black
)

// String returns the color name.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "unknown"
	}
}

type nodeState uint8

const (
	stateFree nodeState = iota
	stateDetached
	stateLinked
)

type node[T any] struct {
	color     Color
	state     nodeState
	parent    NodeID
	left      NodeID
	right     NodeID
	size      int
	leftSize  int
	rightSize int
	value     T
}

// Tree is an order-statistics red-black tree whose nodes carry a payload of
// type T. The zero value is not usable; create trees with New.
type Tree[T any] struct {
	nodes   []node[T]
	free    []NodeID
	root    NodeID
	count   int
	version uint64
}

// Position is the result of Find.
type Position struct {
	Target NodeID // node containing the position
	Start  int    // absolute start of Target
	Offset int    // position - Start
}

// Span is the result of FindNodes.
type Span struct {
	Nodes    []NodeID // covered nodes in order
	StartPos int      // offset into the first node
	EndPos   int      // inclusive offset into the last node
}

// New creates an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{root: Nil}
}

// NewNode allocates a detached node owning size positions.
// The node joins the sequence once passed to Insert.
func (t *Tree[T]) NewNode(size int, value T) NodeID {
	n := node[T]{
		color:  Red,
		state:  stateDetached,
		parent: Nil,
		left:   Nil,
		right:  Nil,
		size:   size,
		value:  value,
	}
	if k := len(t.free); k > 0 {
		id := t.free[k-1]
		t.free = t.free[:k-1]
		t.nodes[id] = n
		return id
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// Root returns the root node, or Nil if the tree is empty.
func (t *Tree[T]) Root() NodeID {
	return t.root
}

// IsEmpty reports whether the tree has no nodes.
func (t *Tree[T]) IsEmpty() bool {
	return t.root == Nil
}

// Len returns the number of linked nodes.
func (t *Tree[T]) Len() int {
	return t.count
}

// TotalSize returns the content length of the whole tree.
func (t *Tree[T]) TotalSize() int {
	return t.total(t.root)
}

// Version returns a counter that changes on every mutation.
func (t *Tree[T]) Version() uint64 {
	return t.version
}

// Size returns the length owned directly by id.
func (t *Tree[T]) Size(id NodeID) int {
	if id == Nil {
		return 0
	}
	return t.at(id).size
}

// SetSize changes the length owned by id without touching ancestor caches.
// Call FixOnPath afterwards when id is linked.
func (t *Tree[T]) SetSize(id NodeID, size int) {
	t.at(id).size = size
	t.version++
}

// LeftSubtreeSize returns the cached total size of id's left subtree.
func (t *Tree[T]) LeftSubtreeSize(id NodeID) int {
	if id == Nil {
		return 0
	}
	return t.at(id).leftSize
}

// RightSubtreeSize returns the cached total size of id's right subtree.
func (t *Tree[T]) RightSubtreeSize(id NodeID) int {
	if id == Nil {
		return 0
	}
	return t.at(id).rightSize
}

// Value returns the payload of id.
func (t *Tree[T]) Value(id NodeID) T {
	return t.at(id).value
}

// SetValue replaces the payload of id.
func (t *Tree[T]) SetValue(id NodeID, value T) {
	t.at(id).value = value
	t.version++
}

// Color returns the color of id. Nil is black.
func (t *Tree[T]) Color(id NodeID) Color {
	if id == Nil {
		return Black
	}
	return t.nodes[id].color
}

// Parent returns the parent of id, or Nil for the root.
func (t *Tree[T]) Parent(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	return t.at(id).parent
}

// Left returns the left child of id.
func (t *Tree[T]) Left(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	return t.at(id).left
}

// Right returns the right child of id.
func (t *Tree[T]) Right(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	return t.at(id).right
}

// Find locates the node containing pos.
func (t *Tree[T]) Find(pos int) (Position, error) {
	if t.root == Nil || pos < 0 || pos >= t.TotalSize() {
		return Position{}, enginerr.NewPositionError("find", pos, enginerr.ErrOutOfRange)
	}

	id := t.root
	start := t.nodes[id].leftSize
	for id != Nil {
		n := &t.nodes[id]
		switch {
		case pos < start:
			id = n.left
			start -= t.nodes[id].rightSize + t.nodes[id].size
		case pos >= start+n.size:
			start += n.size
			id = n.right
			start += t.nodes[id].leftSize
		default:
			return Position{Target: id, Start: start, Offset: pos - start}, nil
		}
	}
	return Position{}, enginerr.NewPositionError("find", pos, enginerr.ErrOutOfRange)
}

// FindNodes returns the nodes covering r in order. A range running past the
// end of the content is clipped to the last node.
func (t *Tree[T]) FindNodes(r textrange.Range) (Span, error) {
	if r.IsEmpty() {
		return Span{}, rangeError("find nodes", r, enginerr.ErrNotFound)
	}
	first, err := t.Find(r.Start)
	if err != nil {
		return Span{}, err
	}

	var span Span
	span.StartPos = first.Offset
	remaining := r.Length
	for id := first.Target; id != Nil && remaining > 0; id = t.Next(id) {
		span.Nodes = append(span.Nodes, id)
		offset := 0
		if id == first.Target {
			offset = first.Offset
		}
		avail := t.nodes[id].size - offset
		if avail >= remaining {
			span.EndPos = offset + remaining - 1
			remaining = 0
			break
		}
		remaining -= avail
		span.EndPos = t.nodes[id].size - 1
	}

	if len(span.Nodes) == 0 {
		return Span{}, rangeError("find nodes", r, enginerr.ErrNotFound)
	}
	return span, nil
}

// Start returns the absolute start position of a linked node.
func (t *Tree[T]) Start(id NodeID) int {
	pos := t.at(id).leftSize
	for id != t.root {
		p := t.nodes[id].parent
		if t.nodes[p].right == id {
			pos += t.nodes[p].leftSize + t.nodes[p].size
		}
		id = p
	}
	return pos
}

// First returns the leftmost node, or Nil if the tree is empty.
func (t *Tree[T]) First() NodeID {
	return t.LeftMost(t.root)
}

// Last returns the rightmost node, or Nil if the tree is empty.
func (t *Tree[T]) Last() NodeID {
	return t.RightMost(t.root)
}

// LeftMost returns the leftmost descendant of id.
func (t *Tree[T]) LeftMost(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	for t.nodes[id].left != Nil {
		id = t.nodes[id].left
	}
	return id
}

// RightMost returns the rightmost descendant of id.
func (t *Tree[T]) RightMost(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	for t.nodes[id].right != Nil {
		id = t.nodes[id].right
	}
	return id
}

// Next returns the in-order successor of id, or Nil at the end.
func (t *Tree[T]) Next(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	if r := t.nodes[id].right; r != Nil {
		return t.LeftMost(r)
	}
	p := t.nodes[id].parent
	for p != Nil && t.nodes[p].right == id {
		id = p
		p = t.nodes[p].parent
	}
	return p
}

// Prev returns the in-order predecessor of id, or Nil at the start.
func (t *Tree[T]) Prev(id NodeID) NodeID {
	if id == Nil {
		return Nil
	}
	if l := t.nodes[id].left; l != Nil {
		return t.RightMost(l)
	}
	p := t.nodes[id].parent
	for p != Nil && t.nodes[p].left == id {
		id = p
		p = t.nodes[p].parent
	}
	return p
}

// Walk calls fn for each node in order until fn returns false.
func (t *Tree[T]) Walk(fn func(id NodeID) bool) {
	for id := t.First(); id != Nil; id = t.Next(id) {
		if !fn(id) {
			return
		}
	}
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[T]) Height() int {
	var height func(id NodeID) int
	height = func(id NodeID) int {
		if id == Nil {
			return 0
		}
		return 1 + max(height(t.nodes[id].left), height(t.nodes[id].right))
	}
	return height(t.root)
}

func (t *Tree[T]) at(id NodeID) *node[T] {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].state == stateFree {
		panic(fmt.Sprintf("ostree: invalid node %d", id))
	}
	return &t.nodes[id]
}

func (t *Tree[T]) total(id NodeID) int {
	if id == Nil {
		return 0
	}
	n := &t.nodes[id]
	return n.leftSize + n.size + n.rightSize
}

func rangeError(op string, r textrange.Range, err error) error {
	end := r.End()
	if r.IsInfinite() {
		end = -1
	}
	return enginerr.NewRangeError(op, r.Start, end, err)
}
