package arena

import "math/rand"

// Bytes is a slot pool over a contiguous byte slab with a fixed stride.
//
// Slot i occupies slab[i*stride : (i+1)*stride]. The allocation discipline
// is the same as Pool's: hashed-random probe start with linear probing for
// fixed pools, append plus free list for unbounded ones.
type Bytes struct {
	slab      []byte
	stride    int
	used      []bool
	inUse     int
	unbounded bool
	freeList  []Handle
	hash      func(p []byte) uint32
	rng       *rand.Rand
	bound     bool
	hib       *hibernated
}

// NewBytes creates a fixed-capacity byte pool holding capacity slots of
// stride bytes each.
func NewBytes(capacity, stride int, opts ...Option) (*Bytes, error) {
	if capacity <= 0 || stride <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg := newPoolConfig(opts)
	return &Bytes{
		slab:   make([]byte, capacity*stride),
		stride: stride,
		used:   make([]bool, capacity),
		hash:   cfg.hash,
		rng:    rand.New(rand.NewSource(cfg.seed)),
	}, nil
}

// NewUnboundedBytes creates a byte pool without a capacity limit.
func NewUnboundedBytes(stride int, opts ...Option) (*Bytes, error) {
	if stride <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg := newPoolConfig(opts)
	return &Bytes{
		stride:    stride,
		unbounded: true,
		hash:      cfg.hash,
		rng:       rand.New(rand.NewSource(cfg.seed)),
	}, nil
}

// Alloc reserves a free slot and returns its handle. The slot bytes are
// zeroed.
func (b *Bytes) Alloc() (Handle, error) {
	assert(b.hib == nil, "arena: hibernated pools cannot be used")
	if b.unbounded {
		if n := len(b.freeList); n > 0 {
			h := b.freeList[n-1]
			b.freeList = b.freeList[:n-1]
			clear(b.slot(h))
			b.used[h] = true
			b.inUse++
			return h, nil
		}
		b.slab = append(b.slab, make([]byte, b.stride)...)
		b.used = append(b.used, true)
		b.inUse++
		return Handle(len(b.used) - 1), nil
	}
	n := len(b.used)
	start := probeStart(b.rng, b.hash, n)
	for i := range n {
		idx := (start + i) % n
		if !b.used[idx] {
			clear(b.slot(Handle(idx)))
			b.used[idx] = true
			b.inUse++
			return Handle(idx), nil
		}
	}
	return None, ErrPoolFull
}

// Free releases a slot.
func (b *Bytes) Free(h Handle) {
	assert(b.hib == nil, "arena: hibernated pools cannot be used")
	assert(h >= 0 && int(h) < len(b.used), "arena: handle out of range")
	assert(b.used[h], "arena: double free")
	b.used[h] = false
	b.inUse--
	if b.unbounded {
		b.freeList = append(b.freeList, h)
	}
}

// At returns the stride-sized payload slice for h. The slice aliases pool
// storage and is valid until the slot is freed or the pool hibernates.
func (b *Bytes) At(h Handle) []byte {
	assert(b.hib == nil, "arena: hibernated pools cannot be used")
	return b.slot(h)
}

func (b *Bytes) slot(h Handle) []byte {
	off := int(h) * b.stride
	return b.slab[off : off+b.stride : off+b.stride]
}

// Stride returns the slot payload size in bytes.
func (b *Bytes) Stride() int { return b.stride }

// InUse reports whether h addresses a live slot.
func (b *Bytes) InUse(h Handle) bool {
	return b.hib == nil && h >= 0 && int(h) < len(b.used) && b.used[h]
}

// Len returns the number of slots currently in use.
func (b *Bytes) Len() int { return b.inUse }

// Cap returns the slot capacity, or -1 for unbounded pools.
func (b *Bytes) Cap() int {
	if b.unbounded {
		return -1
	}
	return len(b.used)
}

// Bind marks the pool as owned by a single consumer.
func (b *Bytes) Bind() error {
	if b.bound {
		return ErrBound
	}
	b.bound = true
	return nil
}
