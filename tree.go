package arbor

import (
	"fmt"

	"github.com/npillmayer/arbor/arena"
)

// Tree is a balanced-BST container over arena-backed node storage.
//
// The variant (plain, red-black, augmented) is fixed at construction by
// the Config. All operations are synchronous and single-threaded.
type Tree[A comparable] struct {
	cfg   Config[A]
	nodes *arena.Pool[node[A]]
	keys  *arena.Bytes
	elems *arena.Bytes
	// root anchors the tree: its left child is the true root. null is the
	// uniform leaf sentinel, always black, self-linked.
	root, null arena.Handle
	count      int
}

// New creates an empty tree with validated configuration.
//
// With a non-negative MaxElements the tree allocates (or adopts) arenas of
// MaxElements+2 slots; with Unbounded it uses growing storage. Partial
// construction is unwound on failure.
func New[A comparable](cfg Config[A]) (*Tree[A], error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[A]{cfg: cfg, root: arena.None, null: arena.None}
	if err := t.setupPools(cfg); err != nil {
		return nil, err
	}
	if err := t.setupSentinels(); err != nil {
		return nil, err
	}
	tracer().Debugf("arbor: new %v tree, key size %d, element size %d",
		cfg.Kind, cfg.KeySize, cfg.ElemSize)
	return t, nil
}

func (t *Tree[A]) setupPools(cfg Config[A]) error {
	capacity := cfg.MaxElements + 2
	if cfg.Nodes != nil {
		if err := cfg.Nodes.pool.Bind(); err != nil {
			return fmt.Errorf("%w: node pool: %w", ErrInvalidConfig, err)
		}
		t.nodes = cfg.Nodes.pool
	} else if cfg.MaxElements == Unbounded {
		t.nodes = arena.NewUnbounded[node[A]](arena.WithHash(cfg.Hash))
	} else {
		p, err := arena.New[node[A]](capacity, arena.WithHash(cfg.Hash))
		if err != nil {
			return fmt.Errorf("%w: node pool: %w", ErrExhausted, err)
		}
		t.nodes = p
	}
	adopt := func(supplied *arena.Bytes, stride int) (*arena.Bytes, error) {
		if supplied != nil {
			if err := supplied.Bind(); err != nil {
				return nil, fmt.Errorf("%w: byte pool: %w", ErrInvalidConfig, err)
			}
			return supplied, nil
		}
		if cfg.MaxElements == Unbounded {
			return arena.NewUnboundedBytes(stride, arena.WithHash(cfg.Hash))
		}
		b, err := arena.NewBytes(capacity, stride, arena.WithHash(cfg.Hash))
		if err != nil {
			return nil, fmt.Errorf("%w: byte pool: %w", ErrExhausted, err)
		}
		return b, nil
	}
	var err error
	if t.keys, err = adopt(cfg.Keys, cfg.KeySize); err != nil {
		return err
	}
	if t.elems, err = adopt(cfg.Elems, cfg.ElemSize); err != nil {
		return err
	}
	return nil
}

// setupSentinels constructs the nil sentinel and the root anchor. Both are
// black and hold no key or data; null is self-linked so that "fell off the
// tree" checks reduce to a self-reference test.
func (t *Tree[A]) setupSentinels() error {
	null, err := t.nodes.Alloc()
	if err != nil {
		return fmt.Errorf("%w: nil sentinel: %w", ErrExhausted, err)
	}
	root, err := t.nodes.Alloc()
	if err != nil {
		t.nodes.Free(null)
		return fmt.Errorf("%w: root sentinel: %w", ErrExhausted, err)
	}
	t.null, t.root = null, root
	nd := t.nd(null)
	nd.left, nd.right, nd.parent = null, null, null
	nd.key, nd.elem = arena.None, arena.None
	nd.red = false
	if t.cfg.Summarizer != nil {
		nd.sum = t.cfg.Summarizer.Zero()
	}
	rd := t.nd(root)
	rd.left, rd.right, rd.parent = null, null, root
	rd.key, rd.elem = arena.None, arena.None
	rd.red = false
	if t.cfg.Summarizer != nil {
		rd.sum = t.cfg.Summarizer.Zero()
	}
	return nil
}

// Len returns the number of elements in the tree.
func (t *Tree[A]) Len() int { return t.count }

// Kind returns the balancing discipline the tree was configured with.
func (t *Tree[A]) Kind() Kind { return t.cfg.Kind }

// Root returns the true tree root (IsNil for an empty tree).
func (t *Tree[A]) Root() Ref[A] {
	return Ref[A]{tree: t, n: t.nd(t.root).left}
}

// Height returns the height of the tree; an empty tree has height 0.
func (t *Tree[A]) Height() int {
	return t.heightOf(t.nd(t.root).left)
}

func (t *Tree[A]) heightOf(h arena.Handle) int {
	nd := t.nd(h)
	// A self-referential node is a sentinel: we fell off the tree.
	if nd.left == h || nd.right == h || nd.parent == h {
		return 0
	}
	left := t.heightOf(nd.left)
	if right := t.heightOf(nd.right); right > left {
		left = right
	}
	return left + 1
}

// Find locates the node holding key. Absence is a normal outcome, not an
// error.
func (t *Tree[A]) Find(key []byte) (Ref[A], bool) {
	return t.findFrom(t.nd(t.root).left, key)
}

// FindIn locates key within the subtree rooted at. An IsNil at searches
// nothing.
func (t *Tree[A]) FindIn(at Ref[A], key []byte) (Ref[A], bool) {
	if at.tree != t || at.IsNil() {
		return Ref[A]{}, false
	}
	return t.findFrom(at.n, key)
}

func (t *Tree[A]) findFrom(h arena.Handle, key []byte) (Ref[A], bool) {
	for h != t.null {
		switch c := t.cfg.Compare(key, t.key(h)); {
		case c == 0:
			return Ref[A]{tree: t, n: h}, true
		case c < 0:
			h = t.nd(h).left
		default:
			h = t.nd(h).right
		}
	}
	return Ref[A]{}, false
}

// Min returns the node with the smallest key, or false for an empty tree.
func (t *Tree[A]) Min() (Ref[A], bool) {
	if t.count == 0 {
		return Ref[A]{}, false
	}
	return Ref[A]{tree: t, n: t.minimum(t.nd(t.root).left)}, true
}

// Max returns the node with the largest key, or false for an empty tree.
func (t *Tree[A]) Max() (Ref[A], bool) {
	if t.count == 0 {
		return Ref[A]{}, false
	}
	return Ref[A]{tree: t, n: t.maximum(t.nd(t.root).left)}, true
}

// Successor returns the node with the smallest key greater than ref's, or
// false if ref holds the maximum.
func (t *Tree[A]) Successor(ref Ref[A]) (Ref[A], bool) {
	if ref.tree != t || ref.IsSentinel() {
		return Ref[A]{}, false
	}
	h := ref.n
	if t.nd(h).right != t.null {
		return Ref[A]{tree: t, n: t.minimum(t.nd(h).right)}, true
	}
	p := t.nd(h).parent
	for p != t.root && h == t.nd(p).right {
		h = p
		p = t.nd(p).parent
	}
	if p == t.root {
		return Ref[A]{}, false
	}
	return Ref[A]{tree: t, n: p}, true
}

// Insert adds a key/element pair. Keys are unique: inserting an existing
// key fails with ErrDuplicateKey and leaves the tree unchanged.
func (t *Tree[A]) Insert(key, elem []byte) error {
	if len(key) != t.cfg.KeySize {
		return fmt.Errorf("%w: key length %d, want %d", ErrInvalidArgument, len(key), t.cfg.KeySize)
	}
	if len(elem) != t.cfg.ElemSize {
		return fmt.Errorf("%w: element length %d, want %d", ErrInvalidArgument, len(elem), t.cfg.ElemSize)
	}
	if t.cfg.MaxElements != Unbounded && t.count >= t.cfg.MaxElements {
		return fmt.Errorf("%w: tree at capacity %d", ErrExhausted, t.cfg.MaxElements)
	}
	parent := t.root
	asLeft := true
	for cur := t.nd(t.root).left; cur != t.null; {
		parent = cur
		switch c := t.cfg.Compare(key, t.key(cur)); {
		case c == 0:
			return ErrDuplicateKey
		case c < 0:
			cur = t.nd(cur).left
			asLeft = true
		default:
			cur = t.nd(cur).right
			asLeft = false
		}
	}
	n, err := t.newNode(parent, key, elem)
	if err != nil {
		return err
	}
	if asLeft {
		t.nd(parent).left = n
	} else {
		t.nd(parent).right = n
	}
	t.count++
	// Summaries along the insertion path first; rotations during fixup
	// maintain their own.
	t.updateSummaryPath(n)
	if t.cfg.Kind == RedBlack {
		t.nd(n).red = true
		t.insertFixup(n)
		t.nd(t.nd(t.root).left).red = false
	}
	return nil
}

// Remove finds key and deletes its node. The removed element is copied into
// dst when dst is non-nil.
func (t *Tree[A]) Remove(key []byte, dst []byte) error {
	ref, ok := t.Find(key)
	if !ok {
		return ErrNotFound
	}
	return t.Delete(ref, dst)
}

// Delete removes the node referenced by ref, copying its element into dst
// when dst is non-nil.
//
// When the node has two children its in-order successor is physically
// relinked into the node's structural position; keys and data are never
// copied between nodes. References to the successor remain valid,
// references to the removed node become invalid.
func (t *Tree[A]) Delete(ref Ref[A], dst []byte) error {
	if ref.tree != t || ref.IsSentinel() || !t.nodes.InUse(ref.n) {
		return fmt.Errorf("%w: stale or foreign node reference", ErrInvalidArgument)
	}
	if dst != nil && len(dst) < t.cfg.ElemSize {
		return fmt.Errorf("%w: destination buffer %d bytes, need %d", ErrInvalidArgument, len(dst), t.cfg.ElemSize)
	}
	z := ref.n
	if dst != nil {
		copy(dst, t.elem(z))
	}

	y := z
	yWasRed := t.nd(y).red
	var x arena.Handle
	switch {
	case t.nd(z).left == t.null:
		x = t.nd(z).right
		t.transplant(z, x)
	case t.nd(z).right == t.null:
		x = t.nd(z).left
		t.transplant(z, x)
	default:
		// Two children: splice the successor into z's position.
		y = t.minimum(t.nd(z).right)
		yWasRed = t.nd(y).red
		x = t.nd(y).right
		if t.nd(y).parent == z {
			t.nd(x).parent = y
		} else {
			t.transplant(y, x)
			t.nd(y).right = t.nd(z).right
			t.nd(t.nd(y).right).parent = y
		}
		t.transplant(z, y)
		t.nd(y).left = t.nd(z).left
		t.nd(t.nd(y).left).parent = y
		t.nd(y).red = t.nd(z).red
	}

	// Summaries from the lowest structurally changed node upward, before
	// any rebalancing rotations.
	t.updateSummaryPath(t.nd(x).parent)
	if t.cfg.Kind == RedBlack && !yWasRed {
		t.deleteFixup(x)
	}
	t.freeNode(z)
	t.count--
	// The nil sentinel's parent link is scribbled during transplant;
	// restore its self-reference.
	t.nd(t.null).parent = t.null
	return nil
}

// transplant replaces the subtree rooted at u with the subtree rooted at v
// in u's parent. v's parent link is set unconditionally, sentinel included,
// which the delete fixup relies on.
func (t *Tree[A]) transplant(u, v arena.Handle) {
	p := t.nd(u).parent
	if p == t.root {
		t.nd(t.root).left = v
	} else if u == t.nd(p).left {
		t.nd(p).left = v
	} else {
		t.nd(p).right = v
	}
	t.nd(v).parent = p
}

// Destroy releases every live node in post-order, then the sentinels. The
// tree must not be used afterwards; externally supplied arenas are
// returned to their owners emptied.
func (t *Tree[A]) Destroy() {
	tracer().Debugf("arbor: destroying tree with %d elements", t.count)
	t.destroySubtree(t.nd(t.root).left)
	t.nodes.Free(t.null)
	t.nodes.Free(t.root)
	t.root, t.null = arena.None, arena.None
	t.count = 0
}

func (t *Tree[A]) destroySubtree(h arena.Handle) {
	if h == t.null {
		return
	}
	t.destroySubtree(t.nd(h).left)
	t.destroySubtree(t.nd(h).right)
	t.freeNode(h)
}
