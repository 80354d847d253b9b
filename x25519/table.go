package x25519

import (
	"sync"

	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/mpi"
)

// Precomputed table for the fixed-base comb: for each of the 32 byte
// positions of a scalar and each digit j in 1..8, the affine point
// j * 256^pos * B in Duif form ((y+x)/2, (y-x)/2, d*x*y), stored as
// canonical 29-bit limbs. The table is derived from the base point at
// first use; the only hardcoded curve values are the two affine
// coordinates of B.

// Affine coordinates of the Edwards base point B (the point of order
// 2^252 + 27742317777372353535851937790883648493 whose Montgomery
// u-coordinate is 9), as little-endian 32-bit words.
var basePointX = [8]uint32{
	0x8F25D51A, 0xC9562D60, 0x9525A7B2, 0x692CC760,
	0xFDD6DC5C, 0xC0A4E231, 0xCD6E53FE, 0x216936D3,
}

var basePointY = [8]uint32{
	0x66666658, 0x66666666, 0x66666666, 0x66666666,
	0x66666666, 0x66666666, 0x66666666, 0x66666666,
}

type duifEntry struct {
	u, v, w [9]uint64
}

var (
	tableOnce sync.Once
	baseTable [32][8]duifEntry
	// canonical limbs of 1/2 = 2^254 - 9 (the neutral element's Duif
	// u and v)
	halfLimbs [9]uint64
)

func tableInit() {
	tableOnce.Do(genTable)
}

// Splat the value with the given little-endian 32-bit words into all
// four lanes of d.
func splatWords(d *field.Fp4, w *[8]uint32) {
	var l29 [9]uint32
	mpi.Conv32to29(l29[:], w[:])
	var limbs [9]uint64
	for i := range limbs {
		limbs[i] = uint64(l29[i])
	}
	d.SplatLimbs(&limbs)
}

// Duif form of the extended point p: normalize to affine, then
// ((y+x)/2, (y-x)/2, d*x*y), each brought to canonical limbs (lane 0;
// all lanes are equal during table generation).
func duifFromExt(p *extPoint, half, d *field.Fp4) duifEntry {
	var zi, ax, ay, t field.Fp4

	zi.Inv(&p.z)
	ax.Mul(&p.x, &zi)
	ay.Mul(&p.y, &zi)

	var ent duifEntry
	t.Add(&ay, &ax)
	t.Mul(&t, half)
	t.FinalReduce()
	ent.u = t.LaneLimbs(0)
	t.Sbc(&ay, &ax)
	t.Mul(&t, half)
	t.FinalReduce()
	ent.v = t.LaneLimbs(0)
	t.Mul(d, &ax)
	t.Mul(&t, &ay)
	t.FinalReduce()
	ent.w = t.LaneLimbs(0)
	return ent
}

func duifToProPoint(r *proPoint, ent *duifEntry) {
	r.x.SplatLimbs(&ent.u)
	r.y.SplatLimbs(&ent.v)
	r.z.SplatLimbs(&ent.w)
}

func genTable() {
	// 1/2 and d = -121665/121666, computed in the field
	var half, d, t, zero field.Fp4
	t.SetSmall(2)
	half.Inv(&t)
	half.FinalReduce()
	halfLimbs = half.LaneLimbs(0)

	t.SetSmall(121666)
	t.Inv(&t)
	d.SetSmall(121665)
	d.Mul(&d, &t)
	d.Sbc(&zero, &d)

	// p = 256^pos * B, extended coordinates (z = 1 initially, so
	// e = x and h = y satisfy e*h = x*y/z)
	var p extPoint
	splatWords(&p.x, &basePointX)
	splatWords(&p.y, &basePointY)
	p.z.SetSmall(1)
	p.e.Set(&p.x)
	p.h.Set(&p.y)

	for pos := 0; pos < 32; pos++ {
		acc := p
		for j := 0; j < 8; j++ {
			baseTable[pos][j] = duifFromExt(&acc, &half, &d)
			if j < 7 {
				var step proPoint
				duifToProPoint(&step, &baseTable[pos][0])
				tedAdd(&acc, &acc, &step)
			}
		}
		for i := 0; i < 8; i++ {
			tedDbl(&p, &p)
		}
	}
}
