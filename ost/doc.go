/*
Package ost provides an order-statistics tree on top of the arbor engine.

Every node carries the size of its subtree as an arbor summary, giving
rank queries in both directions: Select maps a zero-based in-order rank
to a node, Rank maps a node back to its rank. Both run in O(log n) on the
red-black balanced tree.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package ost

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'arbor'
func tracer() tracing.Trace {
	return tracing.Select("arbor")
}
