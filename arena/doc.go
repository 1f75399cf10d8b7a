/*
Package arena provides fixed-capacity slot pools for tree nodes and the
data elements they reference.

A pool manages a contiguous region of fixed-size slots together with a
per-slot in-use marker. Allocation picks a probe start by hashing a
pseudo-random seed and then probes linearly (with wraparound) for the first
free slot; this keeps allocation close to O(1) even when the pool fills up,
at the cost of non-deterministic slot placement. Slot identity is irrelevant
to the structures built on top, so the skew is harmless.

Slots are addressed by integer handles rather than raw pointers. Handles
stay stable for the lifetime of the pool, including growth of unbounded
pools.

Two pool flavors exist: Pool[T] holds typed records (tree nodes), Bytes
holds fixed-stride byte payloads (element data, key slabs). Unbounded pools
trade the probing discipline for append-and-free-list bookkeeping with an
identical calling contract.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package arena

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
