package arbor

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/npillmayer/arbor/arena"
)

// Dot outputs the internal structure of the tree in Graphviz DOT format
// (for debugging purposes). Red nodes are drawn red, black nodes gray;
// leaf edges to the nil sentinel are omitted.
func (t *Tree[A]) Dot(w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12,style=filled];\n")
	t.dotNode(w, t.nd(t.root).left)
	io.WriteString(w, "}\n")
}

func (t *Tree[A]) dotNode(w io.Writer, h arena.Handle) {
	if h == t.null {
		return
	}
	fill := "gray"
	if t.isRed(h) {
		fill = "red"
	}
	fmt.Fprintf(w, "\t\"%d\" [label=\"%s\" fillcolor=%s fontcolor=white];\n",
		h, t.renderNode(h), fill)
	if left := t.nd(h).left; left != t.null {
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\";\n", h, left)
	}
	if right := t.nd(h).right; right != t.null {
		fmt.Fprintf(w, "\t\"%d\" -> \"%d\";\n", h, right)
	}
	t.dotNode(w, t.nd(h).left)
	t.dotNode(w, t.nd(h).right)
}

// FprintTree writes an indented right-to-left view of the tree, one node
// per line, red nodes colorized on capable terminals.
func (t *Tree[A]) FprintTree(w io.Writer) {
	t.printNode(w, t.nd(t.root).left, 0)
}

var (
	redPrinter   = color.New(color.FgRed)
	blackPrinter = color.New(color.Faint)
)

func (t *Tree[A]) printNode(w io.Writer, h arena.Handle, depth int) {
	if h == t.null {
		return
	}
	t.printNode(w, t.nd(h).right, depth+1)
	printer := blackPrinter
	if t.isRed(h) {
		printer = redPrinter
	}
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth), printer.Sprint(t.renderNode(h)))
	t.printNode(w, t.nd(h).left, depth+1)
}

func (t *Tree[A]) renderNode(h arena.Handle) string {
	if t.cfg.Render != nil {
		return t.cfg.Render(t.elem(h))
	}
	return hex.EncodeToString(t.key(h))
}
