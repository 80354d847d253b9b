package x25519

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// Fixed-base scalar multiplication on the twisted Edwards curve
// -x^2 + y^2 = 1 + d*x^2*y^2 (d = -121665/121666), birationally
// equivalent to curve25519, four lanes at a time.

// extPoint is a point in extended coordinates (X:Y:Z:E:H) with
// x = X/Z, y = Y/Z and E*H = T = X*Y/Z. Splitting T into two factors
// saves a multiplication per addition.
type extPoint struct {
	x, y, z, e, h field.Fp4
}

// Set p to the neutral element (0, 1).
func (p *extPoint) setIdentity() {
	p.x.SetZero()
	p.y.SetSmall(1)
	p.z.SetSmall(1)
	p.e.SetZero()
	p.h.SetSmall(1)
}

// r = p + q, unified mixed addition. q is in Duif form:
// q.x = (y+x)/2, q.y = (y-x)/2, q.z = d*x*y for an affine point (x, y).
// r and p may be the same object; q must not overlap them.
func tedAdd(r, p *extPoint, q *proPoint) {
	var t field.Fp4

	t.Mul(&p.e, &p.h)
	r.e.Sub(&p.y, &p.x)
	r.h.Add(&p.y, &p.x)
	r.x.Mul(&r.e, &q.y)
	r.y.Mul(&r.h, &q.x)
	r.e.Sub(&r.y, &r.x)
	r.h.Add(&r.y, &r.x)
	r.x.Mul(&t, &q.z)
	t.Sbc(&p.z, &r.x)
	r.x.Add(&p.z, &r.x)
	r.z.Mul(&t, &r.x)
	r.y.Mul(&r.x, &r.h)
	r.x.Mul(&r.e, &t)
}

// r = 2*p ("dbl-2008-hwcd" shape, a = -1). r and p may be the same
// object.
func tedDbl(r, p *extPoint) {
	var t field.Fp4

	r.e.Sqr(&p.x)
	r.h.Sqr(&p.y)
	t.Sbc(&r.e, &r.h)
	r.h.Add(&r.e, &r.h)
	r.x.Add(&p.x, &p.y)
	r.e.Sqr(&r.x)
	r.e.Sub(&r.h, &r.e)
	r.y.Sqr(&p.z)
	r.y.Mul29(&r.y, 2)
	r.y.Add(&t, &r.y)
	r.x.Mul(&r.e, &r.y)
	r.z.Mul(&r.y, &t)
	r.y.Mul(&t, &r.h)
}

// Load into r the Duif-form entry for digit b at comb position pos,
// in constant time: every table entry for the position is touched, the
// wanted one is selected with masks. b holds per lane a signed base-16
// digit in [-8, 8] as a byte (see signedNibbles); digit 0 selects the
// neutral element, whose Duif form is (1/2, 1/2, 0), and a negative
// digit selects the negated entry (swapped x/y, negated z), again by
// masked swaps driven by the digit's sign bit.
func queryTable(r *proPoint, pos int, b simd.Vec4) {
	one := simd.Splat(1)

	// per-lane |b| and sign from the byte encoding
	bsign := b.Shr(7)
	bmask := simd.Zero().Sub(bsign)
	babs := b.Xor(bmask.And(simd.Splat(0xFF))).Add(bsign)

	// equality masks: m[i] is all-ones in the lanes where |b| == i
	var m [9]simd.Vec4
	for i := 0; i < 9; i++ {
		t := babs.Xor(simd.Splat(uint64(i))).Sub(one).Shr(32)
		m[i] = t.Or(t.Shl(32))
	}

	for l := 0; l < field.NLimbs; l++ {
		xl := m[0].And(simd.Splat(halfLimbs[l]))
		yl := xl
		zl := simd.Zero()
		for j := 0; j < 8; j++ {
			ent := &baseTable[pos][j]
			xl = xl.Xor(m[j+1].And(simd.Splat(ent.u[l])))
			yl = yl.Xor(m[j+1].And(simd.Splat(ent.v[l])))
			zl = zl.Xor(m[j+1].And(simd.Splat(ent.w[l])))
		}
		r.x[l] = xl
		r.y[l] = yl
		r.z[l] = zl
	}

	// negate where the digit is negative: (u, v, w) -> (v, u, -w)
	field.CSwap(&r.x, &r.y, bsign)
	var zero, t field.Fp4
	t.Sub(&zero, &r.z)
	field.CSwap(&r.z, &t, bsign)
}

// tedMulFixbase computes k*B for the Edwards base point B using a
// fixed-base comb over the precomputed Duif table: the scalar is
// recoded into 64 signed base-16 digits, the odd-position digits are
// accumulated first, the accumulator is doubled four times, then the
// even-position digits are accumulated. The scalar is clamped here.
// Only the Y and Z coordinates of the result are produced (the x-only
// Montgomery mapping needs nothing else); they are placed in r.y and
// r.z.
func tedMulFixbase(r *proPoint, k *scalar) {
	tableInit()

	kp := *k
	kp.clamp()
	var e [64]simd.Vec4
	signedNibbles(&e, &kp)

	var h extPoint
	h.setIdentity()
	var q proPoint
	for i := 1; i < 64; i += 2 {
		queryTable(&q, i>>1, e[i])
		tedAdd(&h, &h, &q)
	}
	tedDbl(&h, &h)
	tedDbl(&h, &h)
	tedDbl(&h, &h)
	tedDbl(&h, &h)
	for i := 0; i < 64; i += 2 {
		queryTable(&q, i>>1, e[i])
		tedAdd(&h, &h, &q)
	}

	r.y.Set(&h.y)
	r.z.Set(&h.z)
}
