package field

import (
	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// Fp4 is four elements of GF(2^255-19), one per vector lane, in the
// 9-limb radix-2^29 representation described in field.go. The zero
// value is zero in all four lanes.
//
// Methods follow the "chainable" pattern: the destination is the
// receiver, operands are parameters, and the receiver is returned.
// The receiver may be the same object as any operand.
type Fp4 [9]simd.Vec4

// NLimbs is the number of 29-bit limbs per lane.
const NLimbs = nlimbs

// Set copies a into d.
func (d *Fp4) Set(a *Fp4) *Fp4 {
	*d = *a
	return d
}

// SetZero sets d to zero in all lanes.
func (d *Fp4) SetZero() *Fp4 {
	*d = Fp4{}
	return d
}

// SetSmall sets all four lanes of d to the integer x (x < 2^29).
func (d *Fp4) SetSmall(x uint32) *Fp4 {
	*d = Fp4{}
	d[0] = simd.Splat(uint64(x))
	return d
}

// SplatLimbs sets all four lanes of d to the value with the given
// 29-bit limbs (little-endian limb order).
func (d *Fp4) SplatLimbs(limbs *[9]uint64) *Fp4 {
	for i := 0; i < nlimbs; i++ {
		d[i] = simd.Splat(limbs[i])
	}
	return d
}

// SetLaneLimbs sets lane ln of d to the value with the given 29-bit
// limbs, leaving the other lanes unchanged.
func (d *Fp4) SetLaneLimbs(ln int, limbs *[9]uint64) *Fp4 {
	for i := 0; i < nlimbs; i++ {
		d[i][ln] = limbs[i]
	}
	return d
}

// LaneLimbs returns the limbs of lane ln of a.
func (a *Fp4) LaneLimbs(ln int) [9]uint64 {
	var r [9]uint64
	for i := 0; i < nlimbs; i++ {
		r[i] = a[i][ln]
	}
	return r
}

// Add sets d to a+b (no reduction; see gfp_add).
func (d *Fp4) Add(a, b *Fp4) *Fp4 {
	gfp_add((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a), (*[9]simd.Vec4)(b))
	return d
}

// Sub sets d to 2*p'+a-b without carry propagation (see gfp_sub).
func (d *Fp4) Sub(a, b *Fp4) *Fp4 {
	gfp_sub((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a), (*[9]simd.Vec4)(b))
	return d
}

// Sbc sets d to a-b, reduced (see gfp_sbc).
func (d *Fp4) Sbc(a, b *Fp4) *Fp4 {
	gfp_sbc((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a), (*[9]simd.Vec4)(b))
	return d
}

// Mul sets d to a*b mod p'.
func (d *Fp4) Mul(a, b *Fp4) *Fp4 {
	gfp_mul((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a), (*[9]simd.Vec4)(b))
	return d
}

// Mul29 sets d to b*a mod p', for a constant b of at most 29 bits.
func (d *Fp4) Mul29(a *Fp4, b uint32) *Fp4 {
	gfp_mul29((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a), b)
	return d
}

// Sqr sets d to a^2 mod p'.
func (d *Fp4) Sqr(a *Fp4) *Fp4 {
	gfp_sqr((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a))
	return d
}

// Inv sets d to 1/a (modulo the prime 2^255-19). If a lane of a is
// zero, the corresponding lane of d is set to zero, which is not a
// meaningful inverse.
func (d *Fp4) Inv(a *Fp4) *Fp4 {
	gfp_inv((*[9]simd.Vec4)(d), (*[9]simd.Vec4)(a))
	return d
}

// FinalReduce brings d, in place, to the canonical representation in
// [0, 2^255-19) in every lane.
func (d *Fp4) FinalReduce() *Fp4 {
	gfp_modp((*[9]simd.Vec4)(d))
	return d
}

// CSwap exchanges a and b per lane wherever the corresponding lane of
// flag is 1, and leaves them alone where it is 0. Flag lanes MUST be
// 0 or 1. Constant-time.
func CSwap(a, b *Fp4, flag simd.Vec4) {
	gfp_cswap((*[9]simd.Vec4)(a), (*[9]simd.Vec4)(b), flag)
}
