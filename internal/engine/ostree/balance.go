package ostree

import (
	"fmt"

	"github.com/dshills/docmodel/internal/engine/enginerr"
)

// Insert links the detached node id into the sequence.
//
// An empty tree takes id as its black root and ignores ref. Otherwise id is
// placed immediately before ref when before is true, or immediately after it
// when before is false. A Nil ref is resolved to the root.
func (t *Tree[T]) Insert(id, ref NodeID, before bool) error {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].state != stateDetached {
		return fmt.Errorf("insert node %d: not a detached node: %w", id, enginerr.ErrInvalidArgument)
	}
	if t.root != Nil && ref != Nil && !t.linked(ref) {
		return fmt.Errorf("insert relative to node %d: not linked: %w", ref, enginerr.ErrInvalidArgument)
	}
	t.version++

	n := &t.nodes[id]
	n.parent, n.left, n.right = Nil, Nil, Nil
	n.leftSize, n.rightSize = 0, 0
	n.state = stateLinked
	t.count++

	if t.root == Nil {
		n.color = Black
		t.root = id
		return nil
	}

	if ref == Nil {
		ref = t.root
	}

	parent := ref
	if before {
		if l := t.nodes[ref].left; l != Nil {
			parent = t.RightMost(l)
			t.nodes[parent].right = id
		} else {
			t.nodes[ref].left = id
		}
	} else {
		if r := t.nodes[ref].right; r != Nil {
			parent = t.LeftMost(r)
			t.nodes[parent].left = id
		} else {
			t.nodes[ref].right = id
		}
	}
	n.parent = parent
	n.color = Red

	t.refreshToRoot(parent)
	t.fixInsertion(id)
	return nil
}

// Delete unlinks id and releases it. The NodeID may be reused by a later
// NewNode call.
func (t *Tree[T]) Delete(id NodeID) error {
	if !t.linked(id) {
		return fmt.Errorf("delete node %d: not linked: %w", id, enginerr.ErrInvalidArgument)
	}
	t.version++

	z := id
	removedColor := t.nodes[z].color
	var child, childParent NodeID

	switch {
	case t.nodes[z].left == Nil:
		child = t.nodes[z].right
		childParent = t.nodes[z].parent
		t.transplant(z, child)
	case t.nodes[z].right == Nil:
		child = t.nodes[z].left
		childParent = t.nodes[z].parent
		t.transplant(z, child)
	default:
		// The predecessor stands in for z so that the layout matches the
		// common red-black visualizers.
		sub := t.RightMost(t.nodes[z].left)
		removedColor = t.nodes[sub].color
		child = t.nodes[sub].left
		if t.nodes[sub].parent == z {
			childParent = sub
		} else {
			childParent = t.nodes[sub].parent
			t.transplant(sub, child)
			t.nodes[sub].left = t.nodes[z].left
			t.nodes[t.nodes[sub].left].parent = sub
		}
		t.transplant(z, sub)
		t.nodes[sub].right = t.nodes[z].right
		t.nodes[t.nodes[sub].right].parent = sub
		t.nodes[sub].color = t.nodes[z].color
	}

	t.refreshToRoot(childParent)
	if removedColor == Black {
		t.fixRemoval(child, childParent)
	}
	t.release(z)
	return nil
}

// FixOnPath refreshes the cached subtree sizes from id up to the root after
// the caller changed id's size in place. It never changes the tree's shape.
func (t *Tree[T]) FixOnPath(id NodeID) {
	t.version++
	t.refreshToRoot(id)
}

func (t *Tree[T]) linked(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes) && t.nodes[id].state == stateLinked
}

func (t *Tree[T]) release(id NodeID) {
	var zero T
	t.nodes[id] = node[T]{state: stateFree, parent: Nil, left: Nil, right: Nil, value: zero}
	t.free = append(t.free, id)
	t.count--
}

// transplant puts v where u hangs from u's parent. u's own links are left as is.
func (t *Tree[T]) transplant(u, v NodeID) {
	p := t.nodes[u].parent
	switch {
	case p == Nil:
		t.root = v
	case t.nodes[p].left == u:
		t.nodes[p].left = v
	default:
		t.nodes[p].right = v
	}
	if v != Nil {
		t.nodes[v].parent = p
	}
}

// refresh recomputes id's subtree caches from its children.
func (t *Tree[T]) refresh(id NodeID) {
	n := &t.nodes[id]
	n.leftSize = t.total(n.left)
	n.rightSize = t.total(n.right)
}

func (t *Tree[T]) refreshToRoot(id NodeID) {
	for id != Nil {
		t.refresh(id)
		id = t.nodes[id].parent
	}
}

// rotateLeft:
//
//	  x                y
//	 / \              / \
//	a   y     ->     x   c
//	   / \          / \
//	  b   c        a   b
//
// The subtree total is unchanged, so only x and y need their caches redone.
func (t *Tree[T]) rotateLeft(x NodeID) {
	y := t.nodes[x].right
	b := t.nodes[y].left

	t.nodes[x].right = b
	if b != Nil {
		t.nodes[b].parent = x
	}
	t.transplant(x, y)
	t.nodes[y].left = x
	t.nodes[x].parent = y

	t.refresh(x)
	t.refresh(y)
}

// rotateRight mirrors rotateLeft.
func (t *Tree[T]) rotateRight(x NodeID) {
	y := t.nodes[x].left
	b := t.nodes[y].right

	t.nodes[x].left = b
	if b != Nil {
		t.nodes[b].parent = x
	}
	t.transplant(x, y)
	t.nodes[y].right = x
	t.nodes[x].parent = y

	t.refresh(x)
	t.refresh(y)
}

func (t *Tree[T]) fixInsertion(z NodeID) {
	for z != t.root && t.Color(t.nodes[z].parent) == Red {
		p := t.nodes[z].parent
		g := t.nodes[p].parent
		if p == t.nodes[g].left {
			uncle := t.nodes[g].right
			if t.Color(uncle) == Red {
				t.nodes[p].color = Black
				t.nodes[uncle].color = Black
				t.nodes[g].color = Red
				z = g
				continue
			}
			if z == t.nodes[p].right {
				z = p
				t.rotateLeft(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = Black
			t.nodes[g].color = Red
			t.rotateRight(g)
		} else {
			uncle := t.nodes[g].left
			if t.Color(uncle) == Red {
				t.nodes[p].color = Black
				t.nodes[uncle].color = Black
				t.nodes[g].color = Red
				z = g
				continue
			}
			if z == t.nodes[p].left {
				z = p
				t.rotateRight(z)
				p = t.nodes[z].parent
			}
			t.nodes[p].color = Black
			t.nodes[g].color = Red
			t.rotateLeft(g)
		}
	}
	t.nodes[t.root].color = Black
}

// fixRemoval restores the black height after a black node was spliced out.
// x took the removed node's place and may be Nil, so its parent is passed
// explicitly.
func (t *Tree[T]) fixRemoval(x, parent NodeID) {
	for x != t.root && t.Color(x) == Black {
		if x == t.nodes[parent].left {
			w := t.nodes[parent].right
			if t.Color(w) == Red {
				t.nodes[w].color = Black
				t.nodes[parent].color = Red
				t.rotateLeft(parent)
				w = t.nodes[parent].right
			}
			if t.Color(t.nodes[w].left) == Black && t.Color(t.nodes[w].right) == Black {
				t.nodes[w].color = Red
				x = parent
				parent = t.nodes[x].parent
				continue
			}
			if t.Color(t.nodes[w].right) == Black {
				t.nodes[t.nodes[w].left].color = Black
				t.nodes[w].color = Red
				t.rotateRight(w)
				w = t.nodes[parent].right
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = Black
			t.nodes[t.nodes[w].right].color = Black
			t.rotateLeft(parent)
			x = t.root
		} else {
			w := t.nodes[parent].left
			if t.Color(w) == Red {
				t.nodes[w].color = Black
				t.nodes[parent].color = Red
				t.rotateRight(parent)
				w = t.nodes[parent].left
			}
			if t.Color(t.nodes[w].left) == Black && t.Color(t.nodes[w].right) == Black {
				t.nodes[w].color = Red
				x = parent
				parent = t.nodes[x].parent
				continue
			}
			if t.Color(t.nodes[w].left) == Black {
				t.nodes[t.nodes[w].right].color = Black
				t.nodes[w].color = Red
				t.rotateLeft(w)
				w = t.nodes[parent].left
			}
			t.nodes[w].color = t.nodes[parent].color
			t.nodes[parent].color = Black
			t.nodes[t.nodes[w].left].color = Black
			t.rotateRight(parent)
			x = t.root
		}
	}
	if x != Nil {
		t.nodes[x].color = Black
	}
}
