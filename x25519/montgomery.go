package x25519

import (
	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// Montgomery x-only arithmetic on curve25519 (y^2 = x^3 + 486662*x^2
// + x), four lanes at a time.

// proPoint is a projective x-only point: the x-coordinate is X/Z. The
// y slot is not a coordinate; it is scratch space for the ladder step,
// placed in the point so a step needs no extra allocations. proPoint
// also doubles as the carrier of a Duif-form Edwards operand (see
// edwards.go), which uses all three slots.
type proPoint struct {
	x, y, z field.Fp4
}

// One step of the Montgomery ladder: on input p = x(kP), q = x((k+1)P),
// on output p = x(2kP), q = x((2k+1)P), with xd the affine x-coordinate
// of the difference q - p (the ladder input point). 18 field operations
// using the two y slots as scratch; (A-2)/4 = 121665 enters through a
// single small-constant multiplication.
func ladderStep(p, q *proPoint, xd *field.Fp4) {
	tmp1 := &p.y
	tmp2 := &q.y

	tmp1.Add(&p.x, &p.z)
	p.x.Sbc(&p.x, &p.z)
	tmp2.Add(&q.x, &q.z)
	q.x.Sub(&q.x, &q.z)
	p.z.Sqr(tmp1)
	q.z.Mul(tmp2, &p.x)
	tmp2.Mul(&q.x, tmp1)
	tmp1.Sqr(&p.x)
	p.x.Mul(&p.z, tmp1)
	tmp1.Sub(&p.z, tmp1)
	q.x.Mul29(tmp1, 121665)
	q.x.Add(&q.x, &p.z)
	p.z.Mul(&q.x, tmp1)
	tmp1.Add(tmp2, &q.z)
	q.x.Sqr(tmp1)
	tmp1.Sbc(tmp2, &q.z)
	tmp2.Sqr(tmp1)
	q.z.Mul(tmp2, xd)
}

// Conditionally exchange the x and z coordinates of p and q, per lane.
// Only bit 0 of each flag lane is considered.
func cswapPoint(p, q *proPoint, flag simd.Vec4) {
	b := flag.And(simd.Splat(1))
	field.CSwap(&p.x, &q.x, b)
	field.CSwap(&p.z, &q.z, b)
}

// montMulVarbase computes r = x(k*P) for the point P with affine
// x-coordinate x, per lane. The scalar is clamped here. The ladder
// walks bits 254 down to 0; the swap state is carried across
// iterations so each iteration performs a single conditional swap
// (against the xor of the current and previous key bits).
func montMulVarbase(r *field.Fp4, k *scalar, x *field.Fp4) {
	kp := *k
	kp.clamp()

	var p1, p2 proPoint
	p1.x.SetSmall(1)
	p1.z.SetZero()
	p2.x.Set(x)
	p2.z.SetSmall(1)

	s := simd.Zero()
	for i := 254; i >= 0; i-- {
		b := kp[i>>5].Shr(uint(i & 31))
		s = s.Xor(b)
		cswapPoint(&p1, &p2, s)
		ladderStep(&p1, &p2, x)
		s = b
	}
	cswapPoint(&p1, &p2, s)

	// r = X/Z (y slot of p2 is free scratch here)
	p2.y.Inv(&p1.z)
	r.Mul(&p2.y, &p1.x)
}

// montMulFixbase computes r = x(k*G) for the curve base point G
// (u = 9), per lane, going through the fixed-base twisted Edwards comb
// and mapping back with u = (Z+Y)/(Z-Y).
func montMulFixbase(r *field.Fp4, k *scalar) {
	var p proPoint
	tedMulFixbase(&p, k)

	p.x.Sbc(&p.z, &p.y)
	p.x.Inv(&p.x)
	var t field.Fp4
	t.Add(&p.z, &p.y)
	r.Mul(&t, &p.x)
}
