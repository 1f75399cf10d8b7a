package ost

import (
	"fmt"

	"github.com/npillmayer/arbor"
)

// subtreeCount is the arbor summarizer carrying subtree sizes. A node's
// summary is the number of nodes in its subtree, itself included.
type subtreeCount struct{}

func (subtreeCount) Zero() int { return 0 }

func (subtreeCount) Summarize(key, elem []byte, left, right int) int {
	return left + right + 1
}

// Tree is a red-black tree with order-statistics queries.
type Tree struct {
	t *arbor.Tree[int]
}

// New creates an order-statistics tree from cfg. The balancing kind and
// the summarizer are fixed by this package; cfg supplies the comparator,
// the sizes and the storage options.
func New(cfg arbor.Config[int]) (*Tree, error) {
	cfg.Kind = arbor.RedBlack
	cfg.Summarizer = subtreeCount{}
	t, err := arbor.New(cfg)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("created order-statistics tree")
	return &Tree{t: t}, nil
}

// Len returns the number of elements in the tree.
func (t *Tree) Len() int { return t.t.Len() }

// Insert adds a key/element pair; see arbor.Tree.Insert.
func (t *Tree) Insert(key, elem []byte) error {
	return t.t.Insert(key, elem)
}

// Remove finds key and deletes its node; see arbor.Tree.Remove.
func (t *Tree) Remove(key, dst []byte) error {
	return t.t.Remove(key, dst)
}

// Find locates the node holding key.
func (t *Tree) Find(key []byte) (arbor.Ref[int], bool) {
	return t.t.Find(key)
}

// Select returns the node with zero-based in-order rank i. Ranks outside
// [0, Len) fail with arbor.ErrRankRange.
func (t *Tree) Select(i int) (arbor.Ref[int], error) {
	if i < 0 || i >= t.t.Len() {
		return arbor.Ref[int]{}, fmt.Errorf("%w: rank %d of %d elements", arbor.ErrRankRange, i, t.t.Len())
	}
	x := t.t.Root()
	for {
		k := x.Left().Summary()
		switch {
		case i == k:
			return x, nil
		case i < k:
			x = x.Left()
		default:
			i -= k + 1
			x = x.Right()
		}
	}
}

// Rank returns the zero-based in-order rank of the node referenced by ref.
// An empty reference fails with arbor.ErrInvalidArgument.
func (t *Tree) Rank(ref arbor.Ref[int]) (int, error) {
	if ref.IsSentinel() {
		return 0, fmt.Errorf("%w: rank of empty reference", arbor.ErrInvalidArgument)
	}
	r := ref.Left().Summary()
	for h := ref; !h.Parent().IsSentinel(); h = h.Parent() {
		if p := h.Parent(); h == p.Right() {
			r += p.Left().Summary() + 1
		}
	}
	return r, nil
}

// Check validates the engine invariants, including subtree-size summaries.
func (t *Tree) Check() error { return t.t.Check() }
