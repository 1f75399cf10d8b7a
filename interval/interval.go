package interval

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/npillmayer/arbor"
)

// Interval is a closed range [Low, High] over int64 coordinates.
type Interval struct {
	Low, High int64
}

// Overlaps reports whether iv and o share at least one point.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Low <= o.High && o.Low <= iv.High
}

func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d]", iv.Low, iv.High)
}

const (
	keySize  = 8
	elemSize = 16
	signBit  = uint64(1) << 63
)

// putOrdered writes v big-endian with the sign bit flipped, so that
// lexicographic byte order equals numeric order.
func putOrdered(dst []byte, v int64) {
	binary.BigEndian.PutUint64(dst, uint64(v)^signBit)
}

func getOrdered(src []byte) int64 {
	return int64(binary.BigEndian.Uint64(src) ^ signBit)
}

func encode(iv Interval) (key, elem []byte) {
	key = make([]byte, keySize)
	putOrdered(key, iv.Low)
	elem = make([]byte, elemSize)
	putOrdered(elem[:8], iv.Low)
	putOrdered(elem[8:], iv.High)
	return key, elem
}

func decode(elem []byte) Interval {
	assert(len(elem) == elemSize, "interval payload has wrong length")
	return Interval{Low: getOrdered(elem[:8]), High: getOrdered(elem[8:])}
}

// maxHigh is the arbor summarizer carrying the largest high endpoint of a
// subtree. The sentinel value is the minimum int64, matching "no interval
// below this node".
type maxHigh struct{}

func (maxHigh) Zero() int64 { return math.MinInt64 }

func (maxHigh) Summarize(key, elem []byte, left, right int64) int64 {
	m := getOrdered(elem[8:])
	if left > m {
		m = left
	}
	if right > m {
		m = right
	}
	return m
}

// Tree is a red-black interval tree.
//
// Intervals are keyed by their low endpoint; two intervals with the same
// low endpoint cannot coexist (the engine rejects duplicate keys).
type Tree struct {
	t *arbor.Tree[int64]
}

// New creates an interval tree. maxElements bounds the element count for
// arena-backed storage; arbor.Unbounded selects growing storage.
func New(maxElements int) (*Tree, error) {
	t, err := arbor.New(arbor.Config[int64]{
		Kind:        arbor.RedBlack,
		Compare:     bytes.Compare,
		KeySize:     keySize,
		ElemSize:    elemSize,
		MaxElements: maxElements,
		Summarizer:  maxHigh{},
		Render:      func(elem []byte) string { return decode(elem).String() },
	})
	if err != nil {
		return nil, err
	}
	tracer().Debugf("created interval tree, max elements = %d", maxElements)
	return &Tree{t: t}, nil
}

// Len returns the number of stored intervals.
func (t *Tree) Len() int { return t.t.Len() }

// Insert stores an interval. An interval with the same low endpoint as an
// existing one is rejected with arbor.ErrDuplicateKey.
func (t *Tree) Insert(iv Interval) error {
	if iv.Low > iv.High {
		return fmt.Errorf("%w: interval %v is inverted", arbor.ErrInvalidArgument, iv)
	}
	key, elem := encode(iv)
	return t.t.Insert(key, elem)
}

// Remove deletes the interval whose low endpoint matches iv's.
func (t *Tree) Remove(iv Interval) error {
	key := make([]byte, keySize)
	putOrdered(key, iv.Low)
	return t.t.Remove(key, nil)
}

// SearchOverlap returns some stored interval overlapping q, if any. Which
// of several overlapping intervals is returned is determined by the
// descent rule, not specified further; use Visit to enumerate all of them.
func (t *Tree) SearchOverlap(q Interval) (Interval, bool) {
	x := t.t.Root()
	for !x.IsNil() {
		iv := decode(x.Elem())
		if iv.Overlaps(q) {
			return iv, true
		}
		// The left subtree can only contain an overlap if its maximum
		// high endpoint reaches the query's low endpoint.
		if l := x.Left(); !l.IsNil() && l.Summary() >= q.Low {
			x = l
		} else {
			x = x.Right()
		}
	}
	return Interval{}, false
}

// Visit calls fn for every stored interval overlapping q, in ascending
// low-endpoint order. fn returning false stops the enumeration.
func (t *Tree) Visit(q Interval, fn func(Interval) bool) {
	if fn == nil {
		return
	}
	t.visit(t.t.Root(), q, fn)
}

func (t *Tree) visit(x arbor.Ref[int64], q Interval, fn func(Interval) bool) bool {
	if x.IsNil() || x.Summary() < q.Low {
		// No interval below x reaches the query.
		return true
	}
	if !t.visit(x.Left(), q, fn) {
		return false
	}
	iv := decode(x.Elem())
	if iv.Overlaps(q) && !fn(iv) {
		return false
	}
	if iv.Low > q.High {
		// Keys to the right start even later; nothing can overlap.
		return true
	}
	return t.visit(x.Right(), q, fn)
}

// Check validates the engine invariants, including subtree-max summaries.
func (t *Tree) Check() error { return t.t.Check() }

// Dot writes the tree structure in Graphviz DOT format.
func (t *Tree) Dot(w io.Writer) { t.t.Dot(w) }
