package field

import (
	"encoding/binary"
	"fmt"
	"math/big"

	sha256 "github.com/minio/sha256-simd"
)

// =====================================================================
// Custom PRNG (based on SHA-256) for reproducible tests.

type prng struct {
	buf [32]byte
	ptr int
}

// Initialize the PRNG with an explicit seed.
func (p *prng) init(seed string) {
	p.buf = sha256.Sum256([]byte(seed))
	p.ptr = 0
}

// Fill the provided slice with pseudorandom bytes from the PRNG.
func (p *prng) generate(d []byte) {
	n := len(d)
	for n > 0 {
		c := len(p.buf) - p.ptr
		if c == 0 {
			p.buf = sha256.Sum256(p.buf[:])
			p.ptr = 0
			c = len(p.buf)
		}
		if c > n {
			c = n
		}
		copy(d, p.buf[p.ptr:p.ptr+c])
		d = d[c:]
		n -= c
		p.ptr += c
	}
}

// Fill all limbs and lanes of d with random values of at most nbits
// bits each (nbits <= 32).
func (p *prng) mkfp(d *Fp4, nbits uint) {
	var bb [4]byte
	mask := (uint64(1) << nbits) - 1
	for i := 0; i < NLimbs; i++ {
		for ln := 0; ln < 4; ln++ {
			p.generate(bb[:])
			d[i][ln] = uint64(binary.LittleEndian.Uint32(bb[:])) & mask
		}
	}
}

// =====================================================================
// big.Int reference helpers.

// Modulus p = 2^255 - 19 and the scaled modulus p' = 64*p = 2^261 - 1216.
func refModuli() (p, pp big.Int) {
	var c big.Int
	c.SetUint64(19)
	p.SetUint64(1).Lsh(&p, 255).Sub(&p, &c)
	pp.Lsh(&p, 6)
	return
}

// The exact (unreduced) integer held in lane ln of a.
func fpLaneToInt(a *Fp4, ln int) big.Int {
	var x, y big.Int
	for i := NLimbs - 1; i >= 0; i-- {
		y.SetUint64(a[i][ln])
		x.Lsh(&x, 29).Add(&x, &y)
	}
	return x
}

// The value of lane ln of a, reduced modulo m.
func fpLaneToBig(a *Fp4, ln int, m *big.Int) big.Int {
	x := fpLaneToInt(a, ln)
	x.Mod(&x, m)
	return x
}

// Hexadecimal representation of lane ln of a (limbs, most significant
// first).
func fpLaneToString(a *Fp4, ln int) string {
	s := "0x"
	for i := NLimbs - 1; i >= 0; i-- {
		s += fmt.Sprintf("%08X", a[i][ln])
	}
	return s
}
