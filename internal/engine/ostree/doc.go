// Package ostree provides an order-statistics red-black tree for sequences
// of variable-length runs.
//
// The tree is keyed implicitly by cumulative content length: every node owns
// Size positions and caches the total size of its left and right subtrees, so
// a node's absolute start is reconstructed while descending instead of being
// stored. Lookup by position, ranged retrieval, insertion relative to an
// existing node, and deletion are all O(log n), and none of them needs a pass
// to shift stored positions.
//
// Nodes live in an arena owned by the tree and are addressed by NodeID.
// Parent and child links are arena indices, and an absent link is Nil rather
// than a shared sentinel node, so there is no mutable state aliased between
// leaves.
//
// Basic usage:
//
//	t := ostree.New[string]()
//	a := t.NewNode(3, "abc")
//	_ = t.Insert(a, ostree.Nil, false)
//	b := t.NewNode(2, "de")
//	_ = t.Insert(b, a, false) // b follows a
//	res, _ := t.Find(4)      // res.Target == b, res.Offset == 1
//
// A Tree is not safe for concurrent use. Callers serialize edits.
package ostree
