package field

import (
	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// This file implements computations in the field of integers modulo
// p = 2^255 - 19, carried out on the scaled modulus p' = 64*p =
// 2^261 - 1216. Elements use a reduced radix of 2^29 with nine limbs;
// every limb is a 4-lane vector, so each value holds four independent
// field elements. Working modulo p' instead of p makes the reduction
// after a multiplication a single small-constant fold per limb (the
// excess above 2^261 is multiplied by 1216 and added back into the
// low end).
//
// All functions below are constant-time: fixed operation sequences, no
// data-dependent branches or memory accesses. Parameter order is
// destination first (similar to mathematical notation: "r = a + b").
// Unless otherwise stated, source and destination operands may be the
// same objects.
//
// Limb magnitudes follow a lazy reduction discipline. A "reduced"
// value has all limbs of at most 29 bits, except possibly the low limb
// which may carry a small excess left by the folding step. Additive
// operations may grow limbs further; the next multiplicative operation
// absorbs the growth.

const (
	// number of 29-bit limbs per lane
	nlimbs = 9
	bits29 = 29
	mask29 = 0x1FFFFFFF
	// 2^261 - p' (the folding constant)
	constC = 1216
	// least significant 29-bit limb of p' = 2^261 - 1216
	lswp29 = 0x1FFFFB40
)

var (
	vMask29 = simd.Splat(mask29)
	vConstC = simd.Splat(constC)
	// limbs of 2*p' (low limb, then the eight all-ones limbs)
	vTwoPLo = simd.Splat(lswp29 * 2)
	vTwoPHi = simd.Splat(mask29 * 2)
)

// r = a + b, without reduction. Limbs grow by at most one bit; the
// caller must make sure the operands leave room for that.
func gfp_add(r, a, b *[9]simd.Vec4) {
	r[0] = a[0].Add(b[0])
	r[1] = a[1].Add(b[1])
	r[2] = a[2].Add(b[2])
	r[3] = a[3].Add(b[3])
	r[4] = a[4].Add(b[4])
	r[5] = a[5].Add(b[5])
	r[6] = a[6].Add(b[6])
	r[7] = a[7].Add(b[7])
	r[8] = a[8].Add(b[8])
}

// r = 2*p' + a - b, limb-wise, without carry propagation. Adding 2*p'
// keeps every limb nonnegative for reduced inputs. The result must go
// through a carry-propagating operation (such as a multiplication)
// before its limbs can be assumed reduced again.
func gfp_sub(r, a, b *[9]simd.Vec4) {
	r[0] = vTwoPLo.Add(a[0].Sub(b[0]))
	r[1] = vTwoPHi.Add(a[1].Sub(b[1]))
	r[2] = vTwoPHi.Add(a[2].Sub(b[2]))
	r[3] = vTwoPHi.Add(a[3].Sub(b[3]))
	r[4] = vTwoPHi.Add(a[4].Sub(b[4]))
	r[5] = vTwoPHi.Add(a[5].Sub(b[5]))
	r[6] = vTwoPHi.Add(a[6].Sub(b[6]))
	r[7] = vTwoPHi.Add(a[7].Sub(b[7]))
	r[8] = vTwoPHi.Add(a[8].Sub(b[8]))
}

// r = 2*p' + a - b with full carry propagation and a folding step, so
// the result is reduced.
func gfp_sbc(r, a, b *[9]simd.Vec4) {
	r0 := vTwoPLo.Add(a[0].Sub(b[0]))
	r1 := vTwoPHi.Add(a[1].Sub(b[1]))
	r2 := vTwoPHi.Add(a[2].Sub(b[2]))
	r3 := vTwoPHi.Add(a[3].Sub(b[3]))
	r4 := vTwoPHi.Add(a[4].Sub(b[4]))
	r5 := vTwoPHi.Add(a[5].Sub(b[5]))
	r6 := vTwoPHi.Add(a[6].Sub(b[6]))
	r7 := vTwoPHi.Add(a[7].Sub(b[7]))
	r8 := vTwoPHi.Add(a[8].Sub(b[8]))

	// carry propagation
	r1 = r1.Add(r0.Shr(bits29))
	r0 = r0.And(vMask29)
	r2 = r2.Add(r1.Shr(bits29))
	r1 = r1.And(vMask29)
	r3 = r3.Add(r2.Shr(bits29))
	r2 = r2.And(vMask29)
	r4 = r4.Add(r3.Shr(bits29))
	r3 = r3.And(vMask29)
	r5 = r5.Add(r4.Shr(bits29))
	r4 = r4.And(vMask29)
	r6 = r6.Add(r5.Shr(bits29))
	r5 = r5.And(vMask29)
	r7 = r7.Add(r6.Shr(bits29))
	r6 = r6.And(vMask29)
	r8 = r8.Add(r7.Shr(bits29))
	r7 = r7.And(vMask29)

	// fold the excess above 2^261 back into the low limb
	r0 = r0.Add(r8.Shr(bits29).Mul32(vConstC))
	r8 = r8.And(vMask29)

	r[0] = r0
	r[1] = r1
	r[2] = r2
	r[3] = r3
	r[4] = r4
	r[5] = r5
	r[6] = r6
	r[7] = r7
	r[8] = r8
}

// r = a * b mod p'. Product scanning in two passes so that the 64-bit
// accumulator never overflows, then the 1216-fold reduction. Inputs may
// have limbs of up to about 31 bits (one unreduced addition on each
// operand is fine).
func gfp_mul(r, a, b *[9]simd.Vec4) {
	a0, a1, a2 := a[0], a[1], a[2]
	a3, a4, a5 := a[3], a[4], a[5]
	a6, a7, a8 := a[6], a[7], a[8]
	b0, b1, b2 := b[0], b[1], b[2]
	b3, b4, b5 := b[3], b[4], b[5]
	b6, b7, b8 := b[6], b[7], b[8]

	// first pass: columns 0..8 of the schoolbook product
	t0 := a0.Mul32(b0)

	t1 := a0.Mul32(b1)
	t1 = t1.Mac(a1, b0)

	t2 := a0.Mul32(b2)
	t2 = t2.Mac(a1, b1)
	t2 = t2.Mac(a2, b0)

	t3 := a0.Mul32(b3)
	t3 = t3.Mac(a1, b2)
	t3 = t3.Mac(a2, b1)
	t3 = t3.Mac(a3, b0)

	t4 := a0.Mul32(b4)
	t4 = t4.Mac(a1, b3)
	t4 = t4.Mac(a2, b2)
	t4 = t4.Mac(a3, b1)
	t4 = t4.Mac(a4, b0)

	t5 := a0.Mul32(b5)
	t5 = t5.Mac(a1, b4)
	t5 = t5.Mac(a2, b3)
	t5 = t5.Mac(a3, b2)
	t5 = t5.Mac(a4, b1)
	t5 = t5.Mac(a5, b0)

	t6 := a0.Mul32(b6)
	t6 = t6.Mac(a1, b5)
	t6 = t6.Mac(a2, b4)
	t6 = t6.Mac(a3, b3)
	t6 = t6.Mac(a4, b2)
	t6 = t6.Mac(a5, b1)
	t6 = t6.Mac(a6, b0)

	t7 := a0.Mul32(b7)
	t7 = t7.Mac(a1, b6)
	t7 = t7.Mac(a2, b5)
	t7 = t7.Mac(a3, b4)
	t7 = t7.Mac(a4, b3)
	t7 = t7.Mac(a5, b2)
	t7 = t7.Mac(a6, b1)
	t7 = t7.Mac(a7, b0)

	t8 := a0.Mul32(b8)
	t8 = t8.Mac(a1, b7)
	t8 = t8.Mac(a2, b6)
	t8 = t8.Mac(a3, b5)
	t8 = t8.Mac(a4, b4)
	t8 = t8.Mac(a5, b3)
	t8 = t8.Mac(a6, b2)
	t8 = t8.Mac(a7, b1)
	t8 = t8.Mac(a8, b0)

	accu := t8.Shr(bits29)
	t8 = t8.And(vMask29)

	// second pass: columns 9..16, with carry extraction between columns
	// so the accumulator stays within 64 bits
	accu = accu.Mac(a1, b8)
	accu = accu.Mac(a2, b7)
	accu = accu.Mac(a3, b6)
	accu = accu.Mac(a4, b5)
	accu = accu.Mac(a5, b4)
	accu = accu.Mac(a6, b3)
	accu = accu.Mac(a7, b2)
	accu = accu.Mac(a8, b1)
	r0 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a2, b8)
	accu = accu.Mac(a3, b7)
	accu = accu.Mac(a4, b6)
	accu = accu.Mac(a5, b5)
	accu = accu.Mac(a6, b4)
	accu = accu.Mac(a7, b3)
	accu = accu.Mac(a8, b2)
	r1 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a3, b8)
	accu = accu.Mac(a4, b7)
	accu = accu.Mac(a5, b6)
	accu = accu.Mac(a6, b5)
	accu = accu.Mac(a7, b4)
	accu = accu.Mac(a8, b3)
	r2 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a4, b8)
	accu = accu.Mac(a5, b7)
	accu = accu.Mac(a6, b6)
	accu = accu.Mac(a7, b5)
	accu = accu.Mac(a8, b4)
	r3 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a5, b8)
	accu = accu.Mac(a6, b7)
	accu = accu.Mac(a7, b6)
	accu = accu.Mac(a8, b5)
	r4 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a6, b8)
	accu = accu.Mac(a7, b7)
	accu = accu.Mac(a8, b6)
	r5 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a7, b8)
	accu = accu.Mac(a8, b7)
	r6 := accu.And(vMask29)
	accu = accu.Shr(bits29)

	accu = accu.Mac(a8, b8)
	r7 := accu.And(vMask29)
	r8 := accu.Shr(bits29)

	// reduction: the upper half (one unit of r0 is worth 2^261) is
	// multiplied by 1216 and added into the lower half
	accu = t0.Mac(r0, vConstC)
	r0 = accu.And(vMask29)

	accu = t1.Add(accu.Shr(bits29))
	accu = accu.Mac(r1, vConstC)
	r1 = accu.And(vMask29)

	accu = t2.Add(accu.Shr(bits29))
	accu = accu.Mac(r2, vConstC)
	r2 = accu.And(vMask29)

	accu = t3.Add(accu.Shr(bits29))
	accu = accu.Mac(r3, vConstC)
	r3 = accu.And(vMask29)

	accu = t4.Add(accu.Shr(bits29))
	accu = accu.Mac(r4, vConstC)
	r4 = accu.And(vMask29)

	accu = t5.Add(accu.Shr(bits29))
	accu = accu.Mac(r5, vConstC)
	r5 = accu.And(vMask29)

	accu = t6.Add(accu.Shr(bits29))
	accu = accu.Mac(r6, vConstC)
	r6 = accu.And(vMask29)

	accu = t7.Add(accu.Shr(bits29))
	accu = accu.Mac(r7, vConstC)
	r7 = accu.And(vMask29)

	accu = t8.Add(accu.Shr(bits29))
	accu = accu.Mac(r8, vConstC)
	r8 = accu.And(vMask29)

	accu = accu.Shr(bits29)
	r0 = r0.Mac(accu, vConstC)

	r[0] = r0
	r[1] = r1
	r[2] = r2
	r[3] = r3
	r[4] = r4
	r[5] = r5
	r[6] = r6
	r[7] = r7
	r[8] = r8
}

// r = b * a mod p', for an unsigned constant b of at most 29 bits.
func gfp_mul29(r, a *[9]simd.Vec4, b uint32) {
	vb := simd.Splat(uint64(b))

	accu := a[0].Mul32(vb)
	r0 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[1], vb)
	r1 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[2], vb)
	r2 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[3], vb)
	r3 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[4], vb)
	r4 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[5], vb)
	r5 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[6], vb)
	r6 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[7], vb)
	r7 := accu.And(vMask29)
	accu = accu.Shr(bits29)
	accu = accu.Mac(a[8], vb)
	r8 := accu.And(vMask29)

	accu = vConstC.Mul32(accu.Shr(bits29))
	r0 = r0.Add(accu.And(vMask29))
	r1 = r1.Add(accu.Shr(bits29))

	r[0] = r0
	r[1] = r1
	r[2] = r2
	r[3] = r3
	r[4] = r4
	r[5] = r5
	r[6] = r6
	r[7] = r7
	r[8] = r8
}

// r = a^2 mod p'. Same structure as gfp_mul, with the cross terms
// computed once and doubled.
func gfp_sqr(r, a *[9]simd.Vec4) {
	a0, a1, a2 := a[0], a[1], a[2]
	a3, a4, a5 := a[3], a[4], a[5]
	a6, a7, a8 := a[6], a[7], a[8]

	// first pass
	t0 := a0.Mul32(a0)

	accu := a0.Mul32(a1)
	t1 := accu.Shl(1)

	accu = a0.Mul32(a2)
	t2 := accu.Shl(1)
	t2 = t2.Mac(a1, a1)

	accu = a0.Mul32(a3)
	accu = accu.Mac(a1, a2)
	t3 := accu.Shl(1)

	accu = a0.Mul32(a4)
	accu = accu.Mac(a1, a3)
	t4 := accu.Shl(1)
	t4 = t4.Mac(a2, a2)

	accu = a0.Mul32(a5)
	accu = accu.Mac(a1, a4)
	accu = accu.Mac(a2, a3)
	t5 := accu.Shl(1)

	accu = a0.Mul32(a6)
	accu = accu.Mac(a1, a5)
	accu = accu.Mac(a2, a4)
	t6 := accu.Shl(1)
	t6 = t6.Mac(a3, a3)

	accu = a0.Mul32(a7)
	accu = accu.Mac(a1, a6)
	accu = accu.Mac(a2, a5)
	accu = accu.Mac(a3, a4)
	t7 := accu.Shl(1)

	accu = a0.Mul32(a8)
	accu = accu.Mac(a1, a7)
	accu = accu.Mac(a2, a6)
	accu = accu.Mac(a3, a5)
	t8 := accu.Shl(1)
	t8 = t8.Mac(a4, a4)

	temp := t8.Shr(bits29)
	t8 = t8.And(vMask29)

	// second pass
	accu = a1.Mul32(a8)
	accu = accu.Mac(a2, a7)
	accu = accu.Mac(a3, a6)
	accu = accu.Mac(a4, a5)
	temp = temp.Add(accu.Shl(1))
	r0 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a2.Mul32(a8)
	accu = accu.Mac(a3, a7)
	accu = accu.Mac(a4, a6)
	temp = temp.Add(accu.Shl(1))
	temp = temp.Mac(a5, a5)
	r1 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a3.Mul32(a8)
	accu = accu.Mac(a4, a7)
	accu = accu.Mac(a5, a6)
	temp = temp.Add(accu.Shl(1))
	r2 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a4.Mul32(a8)
	accu = accu.Mac(a5, a7)
	temp = temp.Add(accu.Shl(1))
	temp = temp.Mac(a6, a6)
	r3 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a5.Mul32(a8)
	accu = accu.Mac(a6, a7)
	temp = temp.Add(accu.Shl(1))
	r4 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a6.Mul32(a8)
	temp = temp.Add(accu.Shl(1))
	temp = temp.Mac(a7, a7)
	r5 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	accu = a7.Mul32(a8)
	temp = temp.Add(accu.Shl(1))
	r6 := temp.And(vMask29)
	temp = temp.Shr(bits29)

	temp = temp.Mac(a8, a8)
	r7 := temp.And(vMask29)
	r8 := temp.Shr(bits29)

	// reduction, as in gfp_mul
	accu = t0.Mac(r0, vConstC)
	r0 = accu.And(vMask29)

	accu = t1.Add(accu.Shr(bits29))
	accu = accu.Mac(r1, vConstC)
	r1 = accu.And(vMask29)

	accu = t2.Add(accu.Shr(bits29))
	accu = accu.Mac(r2, vConstC)
	r2 = accu.And(vMask29)

	accu = t3.Add(accu.Shr(bits29))
	accu = accu.Mac(r3, vConstC)
	r3 = accu.And(vMask29)

	accu = t4.Add(accu.Shr(bits29))
	accu = accu.Mac(r4, vConstC)
	r4 = accu.And(vMask29)

	accu = t5.Add(accu.Shr(bits29))
	accu = accu.Mac(r5, vConstC)
	r5 = accu.And(vMask29)

	accu = t6.Add(accu.Shr(bits29))
	accu = accu.Mac(r6, vConstC)
	r6 = accu.And(vMask29)

	accu = t7.Add(accu.Shr(bits29))
	accu = accu.Mac(r7, vConstC)
	r7 = accu.And(vMask29)

	accu = t8.Add(accu.Shr(bits29))
	accu = accu.Mac(r8, vConstC)
	r8 = accu.And(vMask29)

	accu = accu.Shr(bits29)
	r0 = r0.Mac(accu, vConstC)

	r[0] = r0
	r[1] = r1
	r[2] = r2
	r[3] = r3
	r[4] = r4
	r[5] = r5
	r[6] = r6
	r[7] = r7
	r[8] = r8
}

// r = a^(2^255-21) mod p', which is 1/a modulo the underlying prime
// 2^255-19 (Fermat; the exponent is p-2 and p divides p'). The addition
// chain is fixed: 254 squarings and 11 multiplications, all
// data-independent. For a == 0 the result is 0, which has no meaning as
// an inverse; callers must not rely on inverting zero.
func gfp_inv(r, a *[9]simd.Vec4) {
	var t0, t1, t2, t3 [9]simd.Vec4

	gfp_sqr(&t0, a)        // a^2
	gfp_sqr(&t1, &t0)      // a^4
	gfp_sqr(&t1, &t1)      // a^8
	gfp_mul(&t1, a, &t1)   // a^9
	gfp_mul(&t0, &t0, &t1) // a^11
	gfp_sqr(&t2, &t0)      // a^22
	gfp_mul(&t1, &t1, &t2) // a^31 = a^(2^5-1)
	gfp_sqr(&t2, &t1)
	for i := 0; i < 4; i++ {
		gfp_sqr(&t2, &t2)
	}
	gfp_mul(&t1, &t2, &t1) // a^(2^10-1)
	gfp_sqr(&t2, &t1)
	for i := 0; i < 9; i++ {
		gfp_sqr(&t2, &t2)
	}
	gfp_mul(&t2, &t2, &t1) // a^(2^20-1)
	gfp_sqr(&t3, &t2)
	for i := 0; i < 19; i++ {
		gfp_sqr(&t3, &t3)
	}
	gfp_mul(&t2, &t3, &t2) // a^(2^40-1)
	gfp_sqr(&t2, &t2)
	for i := 0; i < 9; i++ {
		gfp_sqr(&t2, &t2)
	}
	gfp_mul(&t1, &t2, &t1) // a^(2^50-1)
	gfp_sqr(&t2, &t1)
	for i := 0; i < 49; i++ {
		gfp_sqr(&t2, &t2)
	}
	gfp_mul(&t2, &t2, &t1) // a^(2^100-1)
	gfp_sqr(&t3, &t2)
	for i := 0; i < 99; i++ {
		gfp_sqr(&t3, &t3)
	}
	gfp_mul(&t2, &t3, &t2) // a^(2^200-1)
	gfp_sqr(&t2, &t2)
	for i := 0; i < 49; i++ {
		gfp_sqr(&t2, &t2)
	}
	gfp_mul(&t1, &t2, &t1) // a^(2^250-1)
	gfp_sqr(&t1, &t1)
	for i := 0; i < 4; i++ {
		gfp_sqr(&t1, &t1)
	}
	gfp_mul(r, &t1, &t0) // a^(2^255-21)
}

// Conditionally exchange r and a, per lane, under flag. Flag lanes
// MUST be 0 or 1. The exchange is done with xor masking; the memory
// access pattern does not depend on the flag.
func gfp_cswap(r, a *[9]simd.Vec4, flag simd.Vec4) {
	mask := simd.Zero().Sub(flag)
	for i := 0; i < nlimbs; i++ {
		x := r[i].Xor(a[i]).And(mask)
		r[i] = r[i].Xor(x)
		a[i] = a[i].Xor(x)
	}
}

// Bring a value to its canonical representation in [0, 2^255-19),
// in place. The input may occupy the full 9x29-bit layout plus the
// usual small excess in the low limb. The fold-and-carry step runs
// twice: the first pass can leave the top limb one unit above the
// 23-bit threshold.
func gfp_modp(a *[9]simd.Vec4) {
	vMask23 := simd.Splat(0x7FFFFF)
	v19 := simd.Splat(19)

	a0, a1, a2 := a[0], a[1], a[2]
	a3, a4, a5 := a[3], a[4], a[5]
	a6, a7, a8 := a[6], a[7], a[8]

	for pass := 0; pass < 2; pass++ {
		// split off everything above bit 254 (8*29 + 23) and fold it
		// back multiplied by 19, then propagate carries
		temp := a8.Shr(23)
		a8 = a8.And(vMask23)
		a0 = a0.Add(temp.Mul32(v19))
		a1 = a1.Add(a0.Shr(bits29))
		a0 = a0.And(vMask29)
		a2 = a2.Add(a1.Shr(bits29))
		a1 = a1.And(vMask29)
		a3 = a3.Add(a2.Shr(bits29))
		a2 = a2.And(vMask29)
		a4 = a4.Add(a3.Shr(bits29))
		a3 = a3.And(vMask29)
		a5 = a5.Add(a4.Shr(bits29))
		a4 = a4.And(vMask29)
		a6 = a6.Add(a5.Shr(bits29))
		a5 = a5.And(vMask29)
		a7 = a7.Add(a6.Shr(bits29))
		a6 = a6.And(vMask29)
		a8 = a8.Add(a7.Shr(bits29))
		a7 = a7.And(vMask29)
	}

	a[0] = a0
	a[1] = a1
	a[2] = a2
	a[3] = a3
	a[4] = a4
	a[5] = a5
	a[6] = a6
	a[7] = a7
	a[8] = a8
}
