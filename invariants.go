package arbor

import (
	"fmt"

	"github.com/npillmayer/arbor/arena"
)

// Check validates structural tree invariants: sentinel shape, parent
// links, strict BST key order, the red-black properties (when active) and
// summary consistency (when a summarizer is configured).
//
// This checker is intentionally strict and meant for tests; a failure
// reports a bug in this package, never a usage error.
func (t *Tree[A]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorrupt)
	}
	if t.isRed(t.null) {
		return fmt.Errorf("%w: nil sentinel is red", ErrCorrupt)
	}
	if t.isRed(t.root) {
		return fmt.Errorf("%w: root anchor is red", ErrCorrupt)
	}
	nd := t.nd(t.null)
	if nd.left != t.null || nd.right != t.null || nd.parent != t.null {
		return fmt.Errorf("%w: nil sentinel is not self-linked", ErrCorrupt)
	}
	top := t.nd(t.root).left
	if top == t.null {
		if t.count != 0 {
			return fmt.Errorf("%w: empty tree reports %d elements", ErrCorrupt, t.count)
		}
		return nil
	}
	if t.cfg.Kind == RedBlack && t.isRed(top) {
		return fmt.Errorf("%w: true root is red", ErrCorrupt)
	}
	if t.nd(top).parent != t.root {
		return fmt.Errorf("%w: true root parent is not the anchor", ErrCorrupt)
	}
	nodes, _, err := t.checkNode(top, nil, nil)
	if err != nil {
		return err
	}
	if nodes != t.count {
		return fmt.Errorf("%w: element count %d, found %d nodes", ErrCorrupt, t.count, nodes)
	}
	return nil
}

// checkNode validates the subtree at h against exclusive key bounds and
// returns its node count and black-height.
func (t *Tree[A]) checkNode(h arena.Handle, lower, upper []byte) (nodes int, blackHeight int, err error) {
	if h == t.null {
		return 0, 1, nil
	}
	nd := t.nd(h)
	key := t.key(h)
	if lower != nil && t.cfg.Compare(key, lower) <= 0 {
		return 0, 0, fmt.Errorf("%w: key order violated (left bound)", ErrCorrupt)
	}
	if upper != nil && t.cfg.Compare(key, upper) >= 0 {
		return 0, 0, fmt.Errorf("%w: key order violated (right bound)", ErrCorrupt)
	}
	if nd.left != t.null && t.nd(nd.left).parent != h {
		return 0, 0, fmt.Errorf("%w: broken parent link (left child)", ErrCorrupt)
	}
	if nd.right != t.null && t.nd(nd.right).parent != h {
		return 0, 0, fmt.Errorf("%w: broken parent link (right child)", ErrCorrupt)
	}
	if t.cfg.Kind == RedBlack && nd.red {
		if t.isRed(nd.left) || t.isRed(nd.right) {
			return 0, 0, fmt.Errorf("%w: red node has a red child", ErrCorrupt)
		}
	}
	if t.cfg.Summarizer != nil {
		want := t.cfg.Summarizer.Summarize(key, t.elem(h), t.nd(nd.left).sum, t.nd(nd.right).sum)
		if nd.sum != want {
			return 0, 0, fmt.Errorf("%w: stale summary (%v, want %v)", ErrCorrupt, nd.sum, want)
		}
	}
	leftNodes, leftBlack, err := t.checkNode(nd.left, lower, key)
	if err != nil {
		return 0, 0, err
	}
	rightNodes, rightBlack, err := t.checkNode(nd.right, key, upper)
	if err != nil {
		return 0, 0, err
	}
	if t.cfg.Kind == RedBlack && leftBlack != rightBlack {
		return 0, 0, fmt.Errorf("%w: unequal black-heights %d != %d", ErrCorrupt, leftBlack, rightBlack)
	}
	blackHeight = leftBlack
	if !nd.red {
		blackHeight++
	}
	return leftNodes + rightNodes + 1, blackHeight, nil
}
