package ostree

import "fmt"

// Validate checks the red-black and cache invariants and returns an error
// naming the first violation found.
func (t *Tree[T]) Validate() error {
	if t.root == Nil {
		if t.count != 0 {
			return fmt.Errorf("empty tree reports %d nodes", t.count)
		}
		return nil
	}
	if t.nodes[t.root].color != Black {
		return fmt.Errorf("root %d is red", t.root)
	}
	if t.nodes[t.root].parent != Nil {
		return fmt.Errorf("root %d has parent %d", t.root, t.nodes[t.root].parent)
	}

	seen := 0
	if _, _, err := t.validate(t.root, &seen); err != nil {
		return err
	}
	if seen != t.count {
		return fmt.Errorf("reachable nodes %d, count %d", seen, t.count)
	}
	return nil
}

// validate returns the subtree total and black height of id.
func (t *Tree[T]) validate(id NodeID, seen *int) (total, blackHeight int, err error) {
	if id == Nil {
		return 0, 1, nil
	}
	*seen++
	n := &t.nodes[id]
	if n.state != stateLinked {
		return 0, 0, fmt.Errorf("node %d reachable but not linked", id)
	}
	if n.size < 0 {
		return 0, 0, fmt.Errorf("node %d has negative size %d", id, n.size)
	}

	for _, child := range [2]NodeID{n.left, n.right} {
		if child == Nil {
			continue
		}
		if t.nodes[child].parent != id {
			return 0, 0, fmt.Errorf("node %d: child %d points to parent %d", id, child, t.nodes[child].parent)
		}
		if n.color == Red && t.nodes[child].color == Red {
			return 0, 0, fmt.Errorf("red node %d has red child %d", id, child)
		}
	}

	leftTotal, leftBlack, err := t.validate(n.left, seen)
	if err != nil {
		return 0, 0, err
	}
	rightTotal, rightBlack, err := t.validate(n.right, seen)
	if err != nil {
		return 0, 0, err
	}
	if leftBlack != rightBlack {
		return 0, 0, fmt.Errorf("node %d: black height %d on the left, %d on the right", id, leftBlack, rightBlack)
	}
	if n.leftSize != leftTotal {
		return 0, 0, fmt.Errorf("node %d: cached left size %d, actual %d", id, n.leftSize, leftTotal)
	}
	if n.rightSize != rightTotal {
		return 0, 0, fmt.Errorf("node %d: cached right size %d, actual %d", id, n.rightSize, rightTotal)
	}

	if n.color == Black {
		leftBlack++
	}
	return leftTotal + n.size + rightTotal, leftBlack, nil
}
