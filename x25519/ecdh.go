// Package x25519 implements the X25519 Diffie-Hellman function of
// RFC 7748 for four independent keys at a time: every operation takes
// four 32-byte inputs and produces four 32-byte outputs, processed in
// parallel lanes of the underlying vectorized field arithmetic. All
// secret-dependent computation is constant-time.
package x25519

import (
	"encoding/binary"

	"github.com/ulhaocheng/AVXECC/internal/field"
	"github.com/ulhaocheng/AVXECC/internal/mpi"
)

// Load four little-endian 32-byte field element encodings, one per
// lane. Bit 255 of each input is taken as given: values produced by
// this package are canonical and never set it, and no validation is
// performed on peer-provided values (RFC 7748 requires none).
func feFromBytes(d *field.Fp4, b *[4][32]byte) {
	for ln := 0; ln < 4; ln++ {
		var w [8]uint32
		for i := 0; i < 8; i++ {
			w[i] = binary.LittleEndian.Uint32(b[ln][4*i:])
		}
		var l29 [9]uint32
		mpi.Conv32to29(l29[:], w[:])
		var limbs [9]uint64
		for i := range limbs {
			limbs[i] = uint64(l29[i])
		}
		d.SetLaneLimbs(ln, &limbs)
	}
}

// Encode the four lanes of a as little-endian 32-byte strings. The
// value must already be canonical (FinalReduce).
func feToBytes(a *field.Fp4) [4][32]byte {
	var r [4][32]byte
	for ln := 0; ln < 4; ln++ {
		limbs := a.LaneLimbs(ln)
		var l29 [9]uint32
		for i := range l29 {
			l29[i] = uint32(limbs[i])
		}
		var w [8]uint32
		mpi.Conv29to32(w[:], l29[:])
		for i := 0; i < 8; i++ {
			binary.LittleEndian.PutUint32(r[ln][4*i:], w[i])
		}
	}
	return r
}

// KeyGen computes the four public keys corresponding to the four
// private keys in sk. Private keys are arbitrary 32-byte strings;
// clamping is applied internally. The outputs are canonical field
// element encodings.
func KeyGen(sk *[4][32]byte) [4][32]byte {
	var k scalar
	k.fromBytes(sk)

	var u field.Fp4
	montMulFixbase(&u, &k)
	u.FinalReduce()
	return feToBytes(&u)
}

// SharedSecret computes the four shared secrets from the four private
// keys in sk and the four peer public keys in pk, lane by lane. The
// outputs are canonical field element encodings. No check is made for
// low-order peer values; callers needing contributory behavior must
// reject an all-zero result themselves (RFC 7748 section 6.1).
func SharedSecret(sk, pk *[4][32]byte) [4][32]byte {
	var k scalar
	k.fromBytes(sk)
	var x field.Fp4
	feFromBytes(&x, pk)

	var u field.Fp4
	montMulVarbase(&u, &k, &x)
	u.FinalReduce()
	return feToBytes(&u)
}
