package arbor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/arbor/arena"
)

func setupTest(t *testing.T) func() {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	return teardown
}

// newByteTree creates a tree over single-byte keys and single-byte
// elements, the element mirroring the key.
func newByteTree(t *testing.T, kind Kind, maxElements int) *Tree[int] {
	t.Helper()
	tree, err := New(Config[int]{
		Kind:        kind,
		Compare:     bytes.Compare,
		KeySize:     1,
		ElemSize:    1,
		MaxElements: maxElements,
	})
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func insertByte(t *testing.T, tree *Tree[int], b byte) {
	t.Helper()
	if err := tree.Insert([]byte{b}, []byte{b}); err != nil {
		t.Fatalf("inserting %d: %v", b, err)
	}
}

func inorderKeys(t *testing.T, tree *Tree[int]) []byte {
	t.Helper()
	var keys []byte
	err := tree.Walk(InOrder, func(ref Ref[int]) error {
		keys = append(keys, ref.Key()[0])
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return keys
}

func TestInsertMaintainsInvariants(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	for _, kind := range []Kind{Plain, RedBlack} {
		tree := newByteTree(t, kind, Unbounded)
		var inserted []byte
		for _, b := range []byte{5, 3, 8, 1, 4, 7, 9} {
			insertByte(t, tree, b)
			inserted = append(inserted, b)
			if err := tree.Check(); err != nil {
				t.Fatalf("%v tree after inserting %d: %v", kind, b, err)
			}
			if tree.Len() != len(inserted) {
				t.Fatalf("%v tree length %d, want %d", kind, tree.Len(), len(inserted))
			}
		}
		if got := inorderKeys(t, tree); !bytes.Equal(got, []byte{1, 3, 4, 5, 7, 8, 9}) {
			t.Errorf("%v tree in-order keys %v", kind, got)
		}
	}
}

func TestDuplicateKeyRejected(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, 10)
	insertByte(t, tree, 42)
	if err := tree.Insert([]byte{42}, []byte{99}); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("duplicate insert: got %v", err)
	}
	if tree.Len() != 1 {
		t.Errorf("length %d after rejected duplicate", tree.Len())
	}
	ref, _ := tree.Find([]byte{42})
	if ref.Elem()[0] != 42 {
		t.Error("rejected duplicate overwrote the element")
	}
}

func TestRemoveAbsentKey(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	insertByte(t, tree, 10)
	if err := tree.Remove([]byte{11}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing absent key: got %v", err)
	}
	if tree.Len() != 1 {
		t.Errorf("length %d after failed removal", tree.Len())
	}
	if err := tree.Check(); err != nil {
		t.Error(err)
	}
}

func TestInsertArgumentErrors(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, 10)
	if err := tree.Insert([]byte{1, 2}, []byte{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("oversized key: got %v", err)
	}
	if err := tree.Insert([]byte{1}, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("missing element: got %v", err)
	}
}

func TestCapacityExhaustion(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, 5)
	for b := byte(0); b < 5; b++ {
		insertByte(t, tree, b)
	}
	if err := tree.Insert([]byte{5}, []byte{5}); !errors.Is(err, ErrExhausted) {
		t.Fatalf("insert at capacity: got %v", err)
	}
	// Freed slots are reusable.
	if err := tree.Remove([]byte{2}, nil); err != nil {
		t.Fatal(err)
	}
	insertByte(t, tree, 5)
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
	if got := inorderKeys(t, tree); !bytes.Equal(got, []byte{0, 1, 3, 4, 5}) {
		t.Errorf("in-order keys %v after recycle", got)
	}
}

func TestDeleteCopiesElement(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	for _, b := range []byte{20, 10, 30} {
		insertByte(t, tree, b)
	}
	dst := make([]byte, 1)
	if err := tree.Remove([]byte{10}, dst); err != nil {
		t.Fatal(err)
	}
	if dst[0] != 10 {
		t.Errorf("copied-out element %d, want 10", dst[0])
	}
	ref, _ := tree.Find([]byte{20})
	if err := tree.Delete(ref, nil); err != nil {
		t.Fatal(err)
	}
	if err := tree.Delete(ref, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("deleting through a stale reference: got %v", err)
	}
	short := make([]byte, 0)
	ref, _ = tree.Find([]byte{30})
	if err := tree.Delete(ref, short); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("undersized destination buffer: got %v", err)
	}
}

func TestDeleteSplicesSuccessor(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	for _, b := range []byte{50, 25, 75, 60, 90} {
		insertByte(t, tree, b)
	}
	// 75 has two children; its successor 90 gets relinked into its
	// position, so the reference to 90 stays valid.
	succ, _ := tree.Find([]byte{90})
	target, _ := tree.Find([]byte{75})
	if err := tree.Delete(target, nil); err != nil {
		t.Fatal(err)
	}
	if err := tree.Check(); err != nil {
		t.Fatal(err)
	}
	if succ.Key()[0] != 90 {
		t.Errorf("successor reference now reads key %d", succ.Key()[0])
	}
	if got := inorderKeys(t, tree); !bytes.Equal(got, []byte{25, 50, 60, 90}) {
		t.Errorf("in-order keys %v after two-child delete", got)
	}
}

func TestMinMaxSuccessor(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	if _, ok := tree.Min(); ok {
		t.Error("Min on empty tree reported a node")
	}
	for _, b := range []byte{14, 3, 99, 41, 7} {
		insertByte(t, tree, b)
	}
	min, _ := tree.Min()
	max, _ := tree.Max()
	if min.Key()[0] != 3 || max.Key()[0] != 99 {
		t.Fatalf("min %d, max %d", min.Key()[0], max.Key()[0])
	}
	var got []byte
	for ref, ok := min, true; ok; ref, ok = tree.Successor(ref) {
		got = append(got, ref.Key()[0])
	}
	if !bytes.Equal(got, []byte{3, 7, 14, 41, 99}) {
		t.Errorf("successor chain %v", got)
	}
	if _, ok := tree.Successor(max); ok {
		t.Error("maximum has a successor")
	}
}

func TestHeight(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelError)
	empty := newByteTree(t, RedBlack, Unbounded)
	if h := empty.Height(); h != 0 {
		t.Errorf("empty tree height %d", h)
	}
	// Ascending inserts degenerate a plain BST into a list; the red-black
	// tree stays logarithmic.
	plain := newByteTree(t, Plain, Unbounded)
	balanced := newByteTree(t, RedBlack, Unbounded)
	for b := byte(0); b < 100; b++ {
		insertByte(t, plain, b)
		insertByte(t, balanced, b)
	}
	if h := plain.Height(); h != 100 {
		t.Errorf("degenerate plain height %d, want 100", h)
	}
	if h := balanced.Height(); h > 14 {
		t.Errorf("red-black height %d exceeds 2*log2(101)", h)
	}
}

func TestAdoptedPools(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	nodes, err := NewNodePool[int](12)
	if err != nil {
		t.Fatal(err)
	}
	keys, err := arena.NewBytes(12, 1)
	if err != nil {
		t.Fatal(err)
	}
	elems, err := arena.NewBytes(12, 1)
	if err != nil {
		t.Fatal(err)
	}
	cfg := Config[int]{
		Kind:        RedBlack,
		Compare:     bytes.Compare,
		KeySize:     1,
		ElemSize:    1,
		MaxElements: 10,
		Nodes:       nodes,
		Keys:        keys,
		Elems:       elems,
	}
	tree, err := New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for b := byte(0); b < 10; b++ {
		insertByte(t, tree, b)
	}
	if keys.Len() != 10 {
		t.Errorf("adopted key pool holds %d slots, want 10", keys.Len())
	}
	tree.Destroy()
	if keys.Len() != 0 || elems.Len() != 0 {
		t.Errorf("destroyed tree left %d keys, %d elements allocated", keys.Len(), elems.Len())
	}
	// A pool feeds one tree only.
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("reusing bound pools: got %v", err)
	}
}

func TestConfigValidation(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	base := Config[int]{Compare: bytes.Compare, KeySize: 8, ElemSize: 8, MaxElements: 10}
	cases := []struct {
		name   string
		mutate func(*Config[int])
	}{
		{"missing comparator", func(c *Config[int]) { c.Compare = nil }},
		{"zero key size", func(c *Config[int]) { c.KeySize = 0 }},
		{"negative elem size", func(c *Config[int]) { c.ElemSize = -4 }},
		{"negative bound", func(c *Config[int]) { c.MaxElements = -3 }},
		{"unknown kind", func(c *Config[int]) { c.Kind = Kind(77) }},
	}
	for _, tc := range cases {
		cfg := base
		tc.mutate(&cfg)
		if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: got %v", tc.name, err)
		}
	}
	keys, err := arena.NewBytes(12, 4)
	if err != nil {
		t.Fatal(err)
	}
	cfg := base
	cfg.Keys = keys
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("stride mismatch: got %v", err)
	}
}

func TestFindIn(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	for _, b := range []byte{50, 25, 75, 10, 30, 60, 90} {
		insertByte(t, tree, b)
	}
	sub, ok := tree.Find([]byte{75})
	if !ok {
		t.Fatal("subtree root not found")
	}
	if _, ok := tree.FindIn(sub, []byte{90}); !ok {
		t.Error("key 90 not found below 75")
	}
	if _, ok := tree.FindIn(sub, []byte{10}); ok {
		t.Error("key 10 found below 75")
	}
	if _, ok := tree.FindIn(Ref[int]{}, []byte{50}); ok {
		t.Error("search below the zero reference found a node")
	}
}
