/*
Package arbor provides a unified balanced binary-search-tree substrate.

One engine carries four derived structures: plain BSTs, red-black trees,
interval trees and order-statistics trees. The variants share a single
node representation, rotation and deletion machinery; augmented variants
(see packages interval and ost) inject a Summarizer that the engine invokes
during rotations and fixups to maintain per-node auxiliary data.

Nodes live in arena slot pools (see package arena) and are addressed by
integer handles. Two sentinel nodes exist per tree: a nil sentinel acting
as the uniform leaf marker (always black, never holding data) and a root
anchor whose left child is the true tree root, which removes root
special-casing from the rotation code.

Trees are single-threaded: no internal locking, and concurrent access to
one tree instance is undefined. Recursive traversal consumes stack space
proportional to tree height: O(log n) for red-black trees, input-dependent
for plain BSTs under adversarial insertion order.

A note on deletion: removing a node with two children physically relinks
the in-order successor into the removed node's structural position. Keys
and data are never copied between nodes, so references to the successor
stay valid across the delete; references to the removed node do not.
Callers holding node references across deletions should re-query.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package arbor

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'arbor'
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
