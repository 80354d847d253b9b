package x25519

import (
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

// Generate four random 32-byte strings, one per lane.
func (p *prng) mkkeys(d *[4][32]byte) {
	for i := 0; i < 4; i++ {
		p.generate(d[i][:])
	}
}

// =====================================================================

// Modulus p = 2^255 - 19.
func refPrime() big.Int {
	var p, c big.Int
	c.SetUint64(19)
	p.SetUint64(1).Lsh(&p, 255).Sub(&p, &c)
	return p
}

// Parse a little-endian hexadecimal string into a 32-byte array.
func hexToKey(s string) [32]byte {
	var r [32]byte
	for i := 0; i < 32; i++ {
		r[i] = hexByte(s[2*i])<<4 | hexByte(s[2*i+1])
	}
	return r
}

func hexByte(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
