package arena

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/npillmayer/arbor/hashes"
)

// Handle addresses a slot within a pool.
//
// Handles are plain indices and remain valid until the slot is freed. A
// handle obtained from one pool must never be used with another.
type Handle int32

// None is the invalid handle.
const None Handle = -1

// Option configures a pool at construction time.
type Option func(*poolConfig)

type poolConfig struct {
	hash hashes.Func
	seed int64
}

// WithHash replaces the probe-start hash function. The default is
// hashes.Mix.
func WithHash(h hashes.Func) Option {
	return func(cfg *poolConfig) {
		if h != nil {
			cfg.hash = h
		}
	}
}

// WithSeed fixes the pseudo-random probe seed source, making slot placement
// reproducible. Intended for tests.
func WithSeed(seed int64) Option {
	return func(cfg *poolConfig) {
		cfg.seed = seed
	}
}

func newPoolConfig(opts []Option) poolConfig {
	cfg := poolConfig{
		hash: hashes.Mix,
		seed: time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// probeStart hashes a pseudo-random 32-bit seed and reduces it modulo n.
func probeStart(rng *rand.Rand, h hashes.Func, n int) int {
	var seed [4]byte
	binary.LittleEndian.PutUint32(seed[:], rng.Uint32())
	return int(h(seed[:]) % uint32(n))
}

// Pool is a slot pool of typed records.
//
// A fixed pool never reallocates; an unbounded pool grows by append and
// recycles freed handles through a free list. In both modes handles are
// stable and Get is O(1).
type Pool[T any] struct {
	storage   []T
	used      []bool
	inUse     int
	unbounded bool
	freeList  []Handle
	hash      hashes.Func
	rng       *rand.Rand
	bound     bool
}

// New creates a fixed-capacity pool.
func New[T any](capacity int, opts ...Option) (*Pool[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	cfg := newPoolConfig(opts)
	return &Pool[T]{
		storage: make([]T, capacity),
		used:    make([]bool, capacity),
		hash:    cfg.hash,
		rng:     rand.New(rand.NewSource(cfg.seed)),
	}, nil
}

// NewUnbounded creates a pool without a capacity limit.
func NewUnbounded[T any](opts ...Option) *Pool[T] {
	cfg := newPoolConfig(opts)
	return &Pool[T]{
		unbounded: true,
		hash:      cfg.hash,
		rng:       rand.New(rand.NewSource(cfg.seed)),
	}
}

// Alloc reserves a free slot and returns its handle. The slot content is
// zeroed.
//
// A fixed pool returns ErrPoolFull only when the linear probe wraps all the
// way around without finding a free marker. Callers that track element
// counts against capacity will never see this error.
func (p *Pool[T]) Alloc() (Handle, error) {
	if p.unbounded {
		if n := len(p.freeList); n > 0 {
			h := p.freeList[n-1]
			p.freeList = p.freeList[:n-1]
			var zero T
			p.storage[h] = zero
			p.used[h] = true
			p.inUse++
			return h, nil
		}
		var zero T
		p.storage = append(p.storage, zero)
		p.used = append(p.used, true)
		p.inUse++
		return Handle(len(p.storage) - 1), nil
	}
	n := len(p.storage)
	start := probeStart(p.rng, p.hash, n)
	for i := range n {
		idx := (start + i) % n
		if !p.used[idx] {
			var zero T
			p.storage[idx] = zero
			p.used[idx] = true
			p.inUse++
			return Handle(idx), nil
		}
	}
	return None, ErrPoolFull
}

// Free releases a slot. The handle must have been produced by this pool;
// no validation is performed beyond an in-use assertion.
func (p *Pool[T]) Free(h Handle) {
	assert(h >= 0 && int(h) < len(p.storage), "arena: handle out of range")
	assert(p.used[h], "arena: double free")
	p.used[h] = false
	p.inUse--
	if p.unbounded {
		p.freeList = append(p.freeList, h)
	}
}

// Get returns the slot record for h.
func (p *Pool[T]) Get(h Handle) *T {
	return &p.storage[h]
}

// InUse reports whether h addresses a live slot.
func (p *Pool[T]) InUse(h Handle) bool {
	return int(h) < len(p.used) && h >= 0 && p.used[h]
}

// Len returns the number of slots currently in use.
func (p *Pool[T]) Len() int { return p.inUse }

// Cap returns the slot capacity, or -1 for unbounded pools.
func (p *Pool[T]) Cap() int {
	if p.unbounded {
		return -1
	}
	return len(p.storage)
}

// Bind marks the pool as owned by a single consumer. Binding an already
// bound pool fails; pools must not be shared between owners.
func (p *Pool[T]) Bind() error {
	if p.bound {
		return ErrBound
	}
	p.bound = true
	return nil
}
