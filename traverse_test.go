package arbor

import (
	"bytes"
	"errors"
	"testing"
)

// walkOrder collects keys in the given order, failing the test on a walk
// error.
func walkOrder(t *testing.T, tree *Tree[int], order Order) []byte {
	t.Helper()
	var keys []byte
	err := tree.Walk(order, func(ref Ref[int]) error {
		keys = append(keys, ref.Key()[0])
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return keys
}

func TestWalkOrders(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	// This insertion sequence settles into the complete tree
	//         4
	//       2   6
	//      1 3 5 7
	for _, b := range []byte{4, 2, 6, 1, 3, 5, 7} {
		insertByte(t, tree, b)
	}
	if got := walkOrder(t, tree, PreOrder); !bytes.Equal(got, []byte{4, 2, 1, 3, 6, 5, 7}) {
		t.Errorf("pre-order %v", got)
	}
	if got := walkOrder(t, tree, InOrder); !bytes.Equal(got, []byte{1, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("in-order %v", got)
	}
	if got := walkOrder(t, tree, PostOrder); !bytes.Equal(got, []byte{1, 3, 2, 5, 7, 6, 4}) {
		t.Errorf("post-order %v", got)
	}
}

func TestWalkAborts(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	for _, b := range []byte{4, 2, 6, 1, 3, 5, 7} {
		insertByte(t, tree, b)
	}
	boom := errors.New("boom")
	visited := 0
	err := tree.Walk(InOrder, func(ref Ref[int]) error {
		visited++
		if ref.Key()[0] == 3 {
			return boom
		}
		return nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("aborted walk returned %v", err)
	}
	if visited != 3 {
		t.Errorf("callback ran %d times, want 3", visited)
	}
	// Post-order visits children before their ancestor sees the error.
	visited = 0
	err = tree.Walk(PostOrder, func(ref Ref[int]) error {
		visited++
		return boom
	})
	if !errors.Is(err, boom) || visited != 1 {
		t.Errorf("post-order abort: err %v after %d visits", err, visited)
	}
}

func TestWalkArgumentErrors(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	if err := tree.Walk(InOrder, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil callback: got %v", err)
	}
	if err := tree.Walk(Order(9), func(Ref[int]) error { return nil }); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown order: got %v", err)
	}
}

func TestScan(t *testing.T) {
	teardown := setupTest(t)
	defer teardown()
	tree := newByteTree(t, RedBlack, Unbounded)
	for _, b := range []byte{60, 20, 80, 10, 40, 70, 90, 30, 50} {
		insertByte(t, tree, b)
	}
	var keys []byte
	err := tree.Scan(func(ref Ref[int]) (bool, error) {
		keys = append(keys, ref.Key()[0])
		return false, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(keys, walkOrder(t, tree, InOrder)) {
		t.Errorf("scan order %v disagrees with in-order walk", keys)
	}
	// Early stop is not an error.
	keys = keys[:0]
	err = tree.Scan(func(ref Ref[int]) (bool, error) {
		keys = append(keys, ref.Key()[0])
		return len(keys) == 3, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(keys, []byte{10, 20, 30}) {
		t.Errorf("stopped scan visited %v", keys)
	}
	boom := errors.New("boom")
	if err := tree.Scan(func(Ref[int]) (bool, error) { return false, boom }); !errors.Is(err, boom) {
		t.Errorf("failing scan returned %v", err)
	}
	if err := tree.Scan(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil callback: got %v", err)
	}
}
