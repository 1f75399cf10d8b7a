package hashes

import (
	"encoding/binary"
	"hash/fnv"
)

// Func is a 32-bit hash over a byte slice.
//
// The arena allocator hashes a pseudo-random seed with a Func to select a
// probe start slot. Distribution quality only affects probe-chain length,
// never correctness.
type Func func(p []byte) uint32

// Splitmix64 finalizer constants (Vigna, 2014).
const (
	mixShift1 = 30
	mixMul1   = 0xbf58476d1ce4e5b9
	mixShift2 = 27
	mixMul2   = 0x94d049bb133111eb
	mixShift3 = 31
)

// Mix folds p into a 64-bit lane and applies the splitmix64 finalizer,
// returning the low 32 bits xor-folded with the high 32 bits.
func Mix(p []byte) uint32 {
	var v uint64
	for len(p) >= 8 {
		v ^= binary.LittleEndian.Uint64(p)
		v = mix64(v)
		p = p[8:]
	}
	if len(p) > 0 {
		var tail [8]byte
		copy(tail[:], p)
		v ^= binary.LittleEndian.Uint64(tail[:])
		v = mix64(v)
	}
	return uint32(v) ^ uint32(v>>32)
}

func mix64(v uint64) uint64 {
	v ^= v >> mixShift1
	v *= mixMul1
	v ^= v >> mixShift2
	v *= mixMul2
	v ^= v >> mixShift3
	return v
}

// FNV1a is the 32-bit FNV-1a hash.
func FNV1a(p []byte) uint32 {
	h := fnv.New32a()
	_, _ = h.Write(p)
	return h.Sum32()
}

// DJB2 is the classic Bernstein polynomial hash (h = h*33 + c).
func DJB2(p []byte) uint32 {
	var h uint32 = 5381
	for _, c := range p {
		h = h*33 + uint32(c)
	}
	return h
}
