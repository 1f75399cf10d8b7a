package arbor

import "github.com/npillmayer/arbor/arena"

// insertFixup restores the red-black invariants after linking a freshly
// red-colored leaf. Standard CLRS cases; the root anchor is black, which
// terminates the loop at the true root without special-casing.
func (t *Tree[A]) insertFixup(z arena.Handle) {
	for t.isRed(t.nd(z).parent) {
		p := t.nd(z).parent
		g := t.nd(p).parent
		if p == t.nd(g).left {
			uncle := t.nd(g).right
			if t.isRed(uncle) {
				t.nd(p).red = false
				t.nd(uncle).red = false
				t.nd(g).red = true
				z = g
				continue
			}
			if z == t.nd(p).right {
				z = p
				t.rotateLeft(z)
				p = t.nd(z).parent
				g = t.nd(p).parent
			}
			t.nd(p).red = false
			t.nd(g).red = true
			t.rotateRight(g)
		} else {
			uncle := t.nd(g).left
			if t.isRed(uncle) {
				t.nd(p).red = false
				t.nd(uncle).red = false
				t.nd(g).red = true
				z = g
				continue
			}
			if z == t.nd(p).left {
				z = p
				t.rotateRight(z)
				p = t.nd(z).parent
				g = t.nd(p).parent
			}
			t.nd(p).red = false
			t.nd(g).red = true
			t.rotateLeft(g)
		}
	}
}

// deleteFixup resolves the "extra black" on x after a black node was
// spliced out. Four symmetric sibling cases per side, following CLRS. x
// may be the nil sentinel; transplant has set its parent link for exactly
// this walk.
func (t *Tree[A]) deleteFixup(x arena.Handle) {
	for x != t.nd(t.root).left && !t.isRed(x) {
		p := t.nd(x).parent
		if x == t.nd(p).left {
			w := t.nd(p).right
			if t.isRed(w) { // case 1: red sibling
				t.nd(w).red = false
				t.nd(p).red = true
				t.rotateLeft(p)
				w = t.nd(p).right
			}
			if !t.isRed(t.nd(w).left) && !t.isRed(t.nd(w).right) { // case 2: black sibling, black nephews
				t.nd(w).red = true
				x = p
				continue
			}
			if !t.isRed(t.nd(w).right) { // case 3: near nephew red
				t.nd(t.nd(w).left).red = false
				t.nd(w).red = true
				t.rotateRight(w)
				w = t.nd(p).right
			}
			// case 4: far nephew red
			t.nd(w).red = t.nd(p).red
			t.nd(p).red = false
			t.nd(t.nd(w).right).red = false
			t.rotateLeft(p)
			x = t.nd(t.root).left
		} else {
			w := t.nd(p).left
			if t.isRed(w) { // case 1
				t.nd(w).red = false
				t.nd(p).red = true
				t.rotateRight(p)
				w = t.nd(p).left
			}
			if !t.isRed(t.nd(w).right) && !t.isRed(t.nd(w).left) { // case 2
				t.nd(w).red = true
				x = p
				continue
			}
			if !t.isRed(t.nd(w).left) { // case 3
				t.nd(t.nd(w).right).red = false
				t.nd(w).red = true
				t.rotateLeft(w)
				w = t.nd(p).left
			}
			// case 4
			t.nd(w).red = t.nd(p).red
			t.nd(p).red = false
			t.nd(t.nd(w).left).red = false
			t.rotateRight(p)
			x = t.nd(t.root).left
		}
	}
	t.nd(x).red = false
}
