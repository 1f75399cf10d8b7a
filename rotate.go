package arbor

import "github.com/npillmayer/arbor/arena"

// rotateLeft performs the standard single rotation about x:
//
//	  x               y
//	a   y    =>     x   c
//	  b c         a b
//
// After relinking, the summaries of x and y are recomputed in that order:
// x first, since the rotation made it y's child and each node now augments
// over a different subtree.
func (t *Tree[A]) rotateLeft(x arena.Handle) {
	y := t.nd(x).right
	assert(y != t.null, "rotateLeft requires a right child")
	t.nd(x).right = t.nd(y).left
	if t.nd(y).left != t.null {
		t.nd(t.nd(y).left).parent = x
	}
	t.nd(y).parent = t.nd(x).parent
	p := t.nd(x).parent
	if p == t.root {
		t.nd(t.root).left = y
	} else if x == t.nd(p).left {
		t.nd(p).left = y
	} else {
		t.nd(p).right = y
	}
	t.nd(y).left = x
	t.nd(x).parent = y
	t.updateSummary(x)
	t.updateSummary(y)
}

// rotateRight is the mirror of rotateLeft.
func (t *Tree[A]) rotateRight(x arena.Handle) {
	y := t.nd(x).left
	assert(y != t.null, "rotateRight requires a left child")
	t.nd(x).left = t.nd(y).right
	if t.nd(y).right != t.null {
		t.nd(t.nd(y).right).parent = x
	}
	t.nd(y).parent = t.nd(x).parent
	p := t.nd(x).parent
	if p == t.root {
		t.nd(t.root).left = y
	} else if x == t.nd(p).right {
		t.nd(p).right = y
	} else {
		t.nd(p).left = y
	}
	t.nd(y).right = x
	t.nd(x).parent = y
	t.updateSummary(x)
	t.updateSummary(y)
}

// updateSummary recomputes one node's summary from its payload and child
// summaries. Sentinels are never recomputed: the nil sentinel's summary
// stays the Zero value permanently.
func (t *Tree[A]) updateSummary(h arena.Handle) {
	if t.cfg.Summarizer == nil || h == t.null || h == t.root {
		return
	}
	nd := t.nd(h)
	nd.sum = t.cfg.Summarizer.Summarize(t.key(h), t.elem(h), t.nd(nd.left).sum, t.nd(nd.right).sum)
}

// updateSummaryPath recomputes summaries from a node up to the root
// anchor. Called after an insert (from the new leaf) and after the
// structural part of a delete (from the lowest changed node), before any
// rebalancing rotations run.
func (t *Tree[A]) updateSummaryPath(from arena.Handle) {
	if t.cfg.Summarizer == nil {
		return
	}
	for h := from; h != t.root && h != t.null; h = t.nd(h).parent {
		t.updateSummary(h)
	}
}
