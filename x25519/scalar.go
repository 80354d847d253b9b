package x25519

import (
	"encoding/binary"

	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// A scalar is four 256-bit secret scalars, one per lane, as eight
// 32-bit little-endian words held in the low half of each 64-bit lane.
// Scalars are plain bit strings: there is no modular structure, and
// clamping (RFC 7748) is applied by the scalar multiplication
// functions, never by callers.
type scalar [8]simd.Vec4

// Load the four 32-byte little-endian strings, one per lane.
func (k *scalar) fromBytes(b *[4][32]byte) {
	for w := 0; w < 8; w++ {
		k[w] = simd.FromLanes(
			uint64(binary.LittleEndian.Uint32(b[0][4*w:])),
			uint64(binary.LittleEndian.Uint32(b[1][4*w:])),
			uint64(binary.LittleEndian.Uint32(b[2][4*w:])),
			uint64(binary.LittleEndian.Uint32(b[3][4*w:])))
	}
}

// Clamp per RFC 7748: clear the low three bits, clear bit 255, set
// bit 254. In place, all lanes.
func (k *scalar) clamp() {
	k[0] = k[0].And(simd.Splat(0xFFFFFFF8))
	k[7] = k[7].And(simd.Splat(0x7FFFFFFF)).Or(simd.Splat(0x40000000))
}

// Recode the scalar into 64 signed base-16 digits in [-8, 8], stored
// as bytes (two's complement on 8 bits) in the low byte of each lane.
// The recoding is left-to-right with a carry: a digit above 8 is
// replaced by digit-16 and the carry moves to the next digit. The
// scalar must be clamped; its top nibble is then at most 7, so the
// last digit absorbs the final carry without exceeding 8.
func signedNibbles(e *[64]simd.Vec4, k *scalar) {
	vNib := simd.Splat(0xF)
	for i := 0; i < 8; i++ {
		for n := 0; n < 8; n++ {
			e[8*i+n] = k[i].Shr(uint(4 * n)).And(vNib)
		}
	}

	v8 := simd.Splat(8)
	vByte := simd.Splat(0xFF)
	carry := simd.Zero()
	for i := 0; i < 63; i++ {
		e[i] = e[i].Add(carry)
		carry = e[i].Add(v8).Shr(4)
		e[i] = e[i].Sub(carry.Shl(4)).And(vByte)
	}
	e[63] = e[63].Add(carry).And(vByte)
}
