package arbor

import (
	"fmt"

	"github.com/npillmayer/arbor/arena"
)

// node is a tree vertex. Child and parent links are arena handles; key and
// elem address slots in the key and element byte pools (arena.None for the
// sentinels, which hold no data). All variants from plain BST to the
// augmented trees share this one layout; the augmentation payload is the
// summary field of type A.
type node[A comparable] struct {
	left, right, parent arena.Handle
	key, elem           arena.Handle
	red                 bool
	sum                 A
}

// Ref is a stable reference to a live tree node.
//
// A Ref stays valid until the node it references is removed. Deleting a
// two-child node relinks its successor in place (see the package note on
// deletion), so only references to the removed node itself are
// invalidated.
//
// The zero Ref is "no node"; IsNil reports true for it.
type Ref[A comparable] struct {
	tree *Tree[A]
	n    arena.Handle
}

// IsNil reports whether r references no live node (zero Ref, nil sentinel).
func (r Ref[A]) IsNil() bool {
	return r.tree == nil || r.n == arena.None || r.n == r.tree.null
}

// IsSentinel reports whether r is one of the tree's sentinels (or the zero
// Ref). Upward walks terminate when Parent becomes a sentinel.
func (r Ref[A]) IsSentinel() bool {
	return r.tree == nil || r.n == arena.None || r.n == r.tree.null || r.n == r.tree.root
}

// Key returns the node's key bytes. The slice aliases arena storage and is
// valid until the node is removed; callers must not modify it.
func (r Ref[A]) Key() []byte {
	assert(!r.IsNil() && !r.IsSentinel(), "Key on sentinel or empty reference")
	return r.tree.key(r.n)
}

// Elem returns the node's element payload. Aliasing rules match Key's. The
// payload may be modified in place as long as the key stays untouched.
func (r Ref[A]) Elem() []byte {
	assert(!r.IsNil() && !r.IsSentinel(), "Elem on sentinel or empty reference")
	return r.tree.elem(r.n)
}

// Summary returns the node's augmentation summary. On the nil sentinel this
// is the summarizer's Zero value.
func (r Ref[A]) Summary() A {
	if r.tree == nil || r.n == arena.None {
		var zero A
		return zero
	}
	return r.tree.nd(r.n).sum
}

// Left returns the left child reference (IsNil for a leaf edge).
func (r Ref[A]) Left() Ref[A] {
	assert(!r.IsNil(), "Left on empty reference")
	return Ref[A]{tree: r.tree, n: r.tree.nd(r.n).left}
}

// Right returns the right child reference.
func (r Ref[A]) Right() Ref[A] {
	assert(!r.IsNil(), "Right on empty reference")
	return Ref[A]{tree: r.tree, n: r.tree.nd(r.n).right}
}

// Parent returns the parent reference; for the true root this is a
// sentinel (IsSentinel reports true).
func (r Ref[A]) Parent() Ref[A] {
	assert(!r.IsNil(), "Parent on empty reference")
	return Ref[A]{tree: r.tree, n: r.tree.nd(r.n).parent}
}

// Node storage access shorthands.

func (t *Tree[A]) nd(h arena.Handle) *node[A] {
	return t.nodes.Get(h)
}

func (t *Tree[A]) key(h arena.Handle) []byte {
	return t.keys.At(t.nd(h).key)
}

func (t *Tree[A]) elem(h arena.Handle) []byte {
	return t.elems.At(t.nd(h).elem)
}

func (t *Tree[A]) isRed(h arena.Handle) bool {
	return t.nd(h).red
}

// newNode allocates a node plus its key and element slots, copying the key
// and payload bytes in. Partial allocations are unwound before an error is
// returned.
func (t *Tree[A]) newNode(parent arena.Handle, key, elem []byte) (arena.Handle, error) {
	n, err := t.nodes.Alloc()
	if err != nil {
		return arena.None, fmt.Errorf("%w: node slot: %w", ErrExhausted, err)
	}
	kh, err := t.keys.Alloc()
	if err != nil {
		t.nodes.Free(n)
		return arena.None, fmt.Errorf("%w: key slot: %w", ErrExhausted, err)
	}
	eh, err := t.elems.Alloc()
	if err != nil {
		t.keys.Free(kh)
		t.nodes.Free(n)
		return arena.None, fmt.Errorf("%w: element slot: %w", ErrExhausted, err)
	}
	copy(t.keys.At(kh), key)
	copy(t.elems.At(eh), elem)
	nd := t.nd(n)
	nd.left, nd.right, nd.parent = t.null, t.null, parent
	nd.key, nd.elem = kh, eh
	nd.red = false
	return n, nil
}

// freeNode releases a node's data slot, key slot and node slot, in that
// order. Sentinels hold no key or data.
func (t *Tree[A]) freeNode(h arena.Handle) {
	nd := t.nd(h)
	if nd.elem != arena.None {
		t.elems.Free(nd.elem)
	}
	if nd.key != arena.None {
		t.keys.Free(nd.key)
	}
	t.nodes.Free(h)
}

// minimum returns the leftmost node of the subtree rooted at h.
func (t *Tree[A]) minimum(h arena.Handle) arena.Handle {
	for t.nd(h).left != t.null {
		h = t.nd(h).left
	}
	return h
}

// maximum returns the rightmost node of the subtree rooted at h.
func (t *Tree[A]) maximum(h arena.Handle) arena.Handle {
	for t.nd(h).right != t.null {
		h = t.nd(h).right
	}
	return h
}
