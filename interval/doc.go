/*
Package interval provides an interval tree on top of the arbor engine.

Intervals are closed [low, high] ranges keyed by their low endpoint. Each
node carries the maximum high endpoint of its subtree as an arbor summary,
which lets overlap searches prune subtrees that cannot contain a match.

SearchOverlap returns *some* overlapping interval, following the classic
descent rule: go left exactly when the left subtree's maximum high reaches
the query's low endpoint. Callers needing every overlap use Visit.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package interval

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
