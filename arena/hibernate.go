package arena

import (
	"github.com/pierrec/lz4/v4"
)

// hibernated carries the compressed state of a byte pool.
//
// Slab and markers are compressed independently; a nil compressed buffer
// means the column was incompressible and is kept verbatim in raw.
type hibernated struct {
	slabLen    int
	usedLen    int
	slab, used []byte
	slabRaw    bool
	usedRaw    bool
}

func compressColumn(data []byte) (out []byte, raw bool) {
	if len(data) == 0 {
		return nil, false
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, dst, nil)
	if err != nil || written == 0 {
		// Incompressible block; keep a verbatim copy.
		cp := make([]byte, len(data))
		copy(cp, data)
		return cp, true
	}
	return dst[:written:written], false
}

func decompressColumn(data []byte, raw bool, size int) []byte {
	out := make([]byte, size)
	if size == 0 {
		return out
	}
	if raw {
		copy(out, data)
		return out
	}
	n, err := lz4.UncompressBlock(data, out)
	assert(err == nil && n == size, "arena: hibernated column is corrupt")
	return out
}

// Hibernate compresses the pool's slab and marker storage and releases the
// originals. A hibernated pool rejects all slot operations until Boot is
// called.
//
// Hibernating twice is a programming error.
func (b *Bytes) Hibernate() {
	assert(b.hib == nil, "arena: pool is already hibernated")
	markers := make([]byte, len(b.used))
	for i, u := range b.used {
		if u {
			markers[i] = 1
		}
	}
	hib := &hibernated{
		slabLen: len(b.slab),
		usedLen: len(b.used),
	}
	hib.slab, hib.slabRaw = compressColumn(b.slab)
	hib.used, hib.usedRaw = compressColumn(markers)
	b.slab = nil
	b.used = nil
	b.hib = hib
}

// Boot restores a hibernated pool to its usable state.
func (b *Bytes) Boot() {
	if b.hib == nil {
		return
	}
	hib := b.hib
	b.slab = decompressColumn(hib.slab, hib.slabRaw, hib.slabLen)
	markers := decompressColumn(hib.used, hib.usedRaw, hib.usedLen)
	b.used = make([]bool, hib.usedLen)
	for i, m := range markers {
		b.used[i] = m != 0
	}
	b.hib = nil
}

// Hibernated reports whether the pool is currently hibernated.
func (b *Bytes) Hibernated() bool { return b.hib != nil }
