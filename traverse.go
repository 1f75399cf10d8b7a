package arbor

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"

	"github.com/npillmayer/arbor/arena"
)

// Order selects a traversal order for Walk.
type Order int

const (
	// PreOrder visits a node before its subtrees.
	PreOrder Order = iota
	// InOrder visits keys in ascending comparator order.
	InOrder
	// PostOrder visits a node after its subtrees; this is the only order
	// safe for destroying nodes during the walk.
	PostOrder
)

// Walk traverses the whole tree recursively, invoking fn on every node.
//
// For pre-order and in-order a non-nil error from fn aborts the walk
// immediately and is returned. Post-order always invokes fn on a node
// after its children (a child's error has already aborted the descent by
// then), so teardown callbacks see children before ancestors.
//
// Recursion depth is proportional to tree height: O(log n) for red-black
// trees, up to n for a degenerate plain BST.
func (t *Tree[A]) Walk(order Order, fn func(Ref[A]) error) error {
	if fn == nil {
		return fmt.Errorf("%w: nil callback", ErrInvalidArgument)
	}
	if order != PreOrder && order != InOrder && order != PostOrder {
		return fmt.Errorf("%w: unknown traversal order %d", ErrInvalidArgument, order)
	}
	return t.walk(t.nd(t.root).left, order, fn)
}

func (t *Tree[A]) walk(h arena.Handle, order Order, fn func(Ref[A]) error) error {
	if h == t.null {
		return nil
	}
	ref := Ref[A]{tree: t, n: h}
	switch order {
	case PreOrder:
		if err := fn(ref); err != nil {
			return err
		}
		if err := t.walk(t.nd(h).left, order, fn); err != nil {
			return err
		}
		return t.walk(t.nd(h).right, order, fn)
	case InOrder:
		if err := t.walk(t.nd(h).left, order, fn); err != nil {
			return err
		}
		if err := fn(ref); err != nil {
			return err
		}
		return t.walk(t.nd(h).right, order, fn)
	default: // PostOrder
		if err := t.walk(t.nd(h).left, order, fn); err != nil {
			return err
		}
		if err := t.walk(t.nd(h).right, order, fn); err != nil {
			return err
		}
		return fn(ref)
	}
}

// Scan iterates the tree in key order without recursion, using an explicit
// stack. fn may stop the scan early by returning stop=true; a non-nil err
// also stops the scan and is returned.
func (t *Tree[A]) Scan(fn func(Ref[A]) (stop bool, err error)) error {
	if fn == nil {
		return fmt.Errorf("%w: nil callback", ErrInvalidArgument)
	}
	s := arraystack.New()
	cur := t.nd(t.root).left
	for cur != t.null || !s.Empty() {
		for cur != t.null {
			s.Push(cur)
			cur = t.nd(cur).left
		}
		v, _ := s.Pop()
		h := v.(arena.Handle)
		stop, err := fn(Ref[A]{tree: t, n: h})
		if stop || err != nil {
			return err
		}
		cur = t.nd(h).right
	}
	return nil
}
