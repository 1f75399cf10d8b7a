package arbor

import (
	"fmt"

	"github.com/npillmayer/arbor/arena"
	"github.com/npillmayer/arbor/hashes"
)

// Kind selects the balancing discipline of a tree.
type Kind int

const (
	// Plain is an unbalanced binary search tree.
	Plain Kind = iota
	// RedBlack maintains the red-black balance invariants.
	RedBlack
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case RedBlack:
		return "red-black"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Unbounded, used as Config.MaxElements, selects dynamically growing
// storage instead of fixed-capacity arenas.
const Unbounded = -1

// Ordering is a strict total order over keys: negative for a < b, zero for
// equality, positive for a > b.
type Ordering func(a, b []byte) int

// Summarizer maintains per-node auxiliary data for augmented trees.
//
// Summarize recomputes a node's summary from its key, its element payload
// and the summaries of its two children; the engine invokes it bottom-up
// after every structural change. Zero is the summary of the nil sentinel
// and is never recomputed.
//
// For summaries to stay consistent, Summarize must depend only on its
// arguments.
type Summarizer[A comparable] interface {
	Zero() A
	Summarize(key, elem []byte, left, right A) A
}

// NodePool is an externally supplied arena for tree nodes, for callers
// that want to own node storage themselves. A pool feeds exactly one tree
// for that tree's entire lifetime.
type NodePool[A comparable] struct {
	pool *arena.Pool[node[A]]
}

// NewNodePool creates a node arena with the given slot capacity. A tree
// with maximum element count m needs m+2 slots (two are reserved for the
// sentinels).
func NewNodePool[A comparable](capacity int, opts ...arena.Option) (*NodePool[A], error) {
	p, err := arena.New[node[A]](capacity, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &NodePool[A]{pool: p}, nil
}

// Config configures a tree at construction time.
type Config[A comparable] struct {
	// Kind selects plain or red-black balancing.
	Kind Kind
	// Compare is the total order over keys. Required.
	Compare Ordering
	// KeySize is the fixed key length in bytes. Required.
	KeySize int
	// ElemSize is the fixed element payload length in bytes. Required.
	ElemSize int
	// MaxElements bounds the element count when arenas are fixed-size;
	// Unbounded selects growing storage.
	MaxElements int
	// Summarizer maintains augmentation data; nil for plain and red-black
	// trees without augmentation.
	Summarizer Summarizer[A]
	// Render, when set, turns an element payload into a debug string for
	// FprintTree. Absence is handled gracefully.
	Render func(elem []byte) string
	// Hash selects the arena probe-start hash; defaults to hashes.Mix.
	// Only used for pools the tree creates itself.
	Hash hashes.Func
	// Nodes, Keys and Elems optionally supply externally owned arenas.
	// Supplied pools must match the configured sizes and must not be
	// shared with another tree.
	Nodes *NodePool[A]
	Keys  *arena.Bytes
	Elems *arena.Bytes
}

func (cfg Config[A]) normalized() Config[A] {
	if cfg.Hash == nil {
		cfg.Hash = hashes.Mix
	}
	return cfg
}

func (cfg Config[A]) validate() error {
	if cfg.Compare == nil {
		return fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	if cfg.KeySize <= 0 {
		return fmt.Errorf("%w: key size must be positive", ErrInvalidConfig)
	}
	if cfg.ElemSize <= 0 {
		return fmt.Errorf("%w: element size must be positive", ErrInvalidConfig)
	}
	if cfg.MaxElements < Unbounded {
		return fmt.Errorf("%w: negative element bound %d", ErrInvalidConfig, cfg.MaxElements)
	}
	if cfg.Kind != Plain && cfg.Kind != RedBlack {
		return fmt.Errorf("%w: unknown tree kind %d", ErrInvalidConfig, cfg.Kind)
	}
	if cfg.MaxElements == Unbounded && cfg.Nodes != nil {
		return fmt.Errorf("%w: fixed node pool with unbounded tree", ErrInvalidConfig)
	}
	if cfg.MaxElements != Unbounded {
		want := cfg.MaxElements + 2
		if cfg.Nodes != nil && cfg.Nodes.pool.Cap() < want {
			return fmt.Errorf("%w: node pool capacity %d, need %d", ErrInvalidConfig, cfg.Nodes.pool.Cap(), want)
		}
		if cfg.Keys != nil && cfg.Keys.Cap() != Unbounded && cfg.Keys.Cap() < want {
			return fmt.Errorf("%w: key pool capacity %d, need %d", ErrInvalidConfig, cfg.Keys.Cap(), want)
		}
		if cfg.Elems != nil && cfg.Elems.Cap() != Unbounded && cfg.Elems.Cap() < want {
			return fmt.Errorf("%w: element pool capacity %d, need %d", ErrInvalidConfig, cfg.Elems.Cap(), want)
		}
	}
	if cfg.Keys != nil && cfg.Keys.Stride() != cfg.KeySize {
		return fmt.Errorf("%w: key pool stride %d, key size %d", ErrInvalidConfig, cfg.Keys.Stride(), cfg.KeySize)
	}
	if cfg.Elems != nil && cfg.Elems.Stride() != cfg.ElemSize {
		return fmt.Errorf("%w: element pool stride %d, element size %d", ErrInvalidConfig, cfg.Elems.Stride(), cfg.ElemSize)
	}
	return nil
}
