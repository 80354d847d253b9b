package field

import (
	"math/big"
	"testing"

	"github.com/ulhaocheng/AVXECC/internal/simd"
)

// Tests for the 4-lane GF(2^255-19) arithmetic on p' = 2^261 - 1216.

// =====================================================================

func TestFp4Add(t *testing.T) {
	var rng prng
	rng.init("test add Fp4")
	var a, b, c Fp4
	for i := 0; i < 10000; i++ {
		rng.mkfp(&a, 29)
		rng.mkfp(&b, 29)
		c.Add(&a, &b)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToInt(&a, ln)
			zb := fpLaneToInt(&b, ln)
			zc := fpLaneToInt(&c, ln)
			var zd big.Int
			zd.Add(&za, &zb)
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR add (lane %d):\na = %s\nb = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&b, ln), fpLaneToString(&c, ln))
			}
		}
	}
}

func TestFp4Sub(t *testing.T) {
	var rng prng
	rng.init("test sub Fp4")
	var a, b, c Fp4
	_, pp := refModuli()
	var twopp big.Int
	twopp.Lsh(&pp, 1)
	for i := 0; i < 10000; i++ {
		rng.mkfp(&a, 29)
		rng.mkfp(&b, 29)
		c.Sub(&a, &b)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToInt(&a, ln)
			zb := fpLaneToInt(&b, ln)
			zc := fpLaneToInt(&c, ln)
			var zd big.Int
			zd.Add(&twopp, &za)
			zd.Sub(&zd, &zb)
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR sub (lane %d):\na = %s\nb = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&b, ln), fpLaneToString(&c, ln))
			}
		}
	}
}

func TestFp4Sbc(t *testing.T) {
	var rng prng
	rng.init("test sbc Fp4")
	var a, b, c Fp4
	_, pp := refModuli()
	for i := 0; i < 10000; i++ {
		rng.mkfp(&a, 29)
		rng.mkfp(&b, 29)
		c.Sbc(&a, &b)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToBig(&a, ln, &pp)
			zb := fpLaneToBig(&b, ln, &pp)
			zc := fpLaneToBig(&c, ln, &pp)
			var zd big.Int
			zd.Sub(&za, &zb).Mod(&zd, &pp)
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR sbc (lane %d):\na = %s\nb = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&b, ln), fpLaneToString(&c, ln))
			}
			// limbs must be back below 2^29 (modulo the small
			// excess allowed in the low limb)
			for j := 1; j < NLimbs; j++ {
				if c[j][ln] > 0x1FFFFFFF {
					t.Fatalf("ERR sbc: unreduced limb %d (lane %d): %016X\n", j, ln, c[j][ln])
				}
			}
		}
	}
}

func TestFp4Mul(t *testing.T) {
	var rng prng
	rng.init("test mul Fp4")
	var a, b, c Fp4
	_, pp := refModuli()
	for i := 0; i < 10000; i++ {
		// also exercise the extra headroom left for unreduced
		// additive results
		nbits := uint(29)
		if i&3 == 0 {
			nbits = 30
		}
		rng.mkfp(&a, nbits)
		rng.mkfp(&b, nbits)
		c.Mul(&a, &b)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToBig(&a, ln, &pp)
			zb := fpLaneToBig(&b, ln, &pp)
			zc := fpLaneToBig(&c, ln, &pp)
			var zd big.Int
			zd.Mul(&za, &zb).Mod(&zd, &pp)
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR mul (lane %d):\na = %s\nb = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&b, ln), fpLaneToString(&c, ln))
			}
		}
	}
}

func TestFp4Sqr(t *testing.T) {
	var rng prng
	rng.init("test sqr Fp4")
	var a, c, d Fp4
	_, pp := refModuli()
	for i := 0; i < 10000; i++ {
		nbits := uint(29)
		if i&3 == 0 {
			nbits = 30
		}
		rng.mkfp(&a, nbits)
		c.Sqr(&a)
		d.Mul(&a, &a)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToBig(&a, ln, &pp)
			zc := fpLaneToBig(&c, ln, &pp)
			zd := fpLaneToBig(&d, ln, &pp)
			var ze big.Int
			ze.Mul(&za, &za).Mod(&ze, &pp)
			if zc.Cmp(&ze) != 0 {
				t.Fatalf("ERR sqr (lane %d):\na = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&c, ln))
			}
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR sqr/mul mismatch (lane %d):\na = %s\n", ln, fpLaneToString(&a, ln))
			}
		}
	}
}

func TestFp4Mul29(t *testing.T) {
	var rng prng
	rng.init("test mul29 Fp4")
	var a, c Fp4
	_, pp := refModuli()
	var bb [4]byte
	for i := 0; i < 10000; i++ {
		rng.mkfp(&a, 29)
		rng.generate(bb[:])
		b := (uint32(bb[0]) | uint32(bb[1])<<8 | uint32(bb[2])<<16 | uint32(bb[3])<<24) & 0x1FFFFFFF
		c.Mul29(&a, b)
		for ln := 0; ln < 4; ln++ {
			za := fpLaneToBig(&a, ln, &pp)
			zc := fpLaneToBig(&c, ln, &pp)
			var zb, zd big.Int
			zb.SetUint64(uint64(b))
			zd.Mul(&za, &zb).Mod(&zd, &pp)
			if zc.Cmp(&zd) != 0 {
				t.Fatalf("ERR mul29 (lane %d):\na = %s\nb = %08X\nc = %s\n", ln, fpLaneToString(&a, ln), b, fpLaneToString(&c, ln))
			}
		}
	}
}

func TestFp4Inv(t *testing.T) {
	var rng prng
	rng.init("test inv Fp4")
	var a, c, d Fp4
	p, _ := refModuli()
	for i := 0; i < 300; i++ {
		rng.mkfp(&a, 29)
		c.Inv(&a)
		d.Mul(&a, &c)
		for ln := 0; ln < 4; ln++ {
			zd := fpLaneToBig(&d, ln, &p)
			if zd.Cmp(big.NewInt(1)) != 0 {
				t.Fatalf("ERR inv (lane %d):\na = %s\nc = %s\n", ln, fpLaneToString(&a, ln), fpLaneToString(&c, ln))
			}
		}
	}

	// inverting zero yields zero (no meaning, but well-defined)
	a.SetZero()
	c.Inv(&a)
	for ln := 0; ln < 4; ln++ {
		zc := fpLaneToBig(&c, ln, &p)
		if zc.Sign() != 0 {
			t.Fatalf("ERR inv(0) (lane %d): c = %s\n", ln, fpLaneToString(&c, ln))
		}
	}
}

func TestFp4CSwap(t *testing.T) {
	var rng prng
	rng.init("test cswap Fp4")
	var a, b Fp4
	for i := 0; i < 1000; i++ {
		rng.mkfp(&a, 29)
		rng.mkfp(&b, 29)
		sa, sb := a, b

		// swap lanes 1 and 3 only
		CSwap(&a, &b, simd.FromLanes(0, 1, 0, 1))
		for ln := 0; ln < 4; ln++ {
			wantA, wantB := &sa, &sb
			if ln == 1 || ln == 3 {
				wantA, wantB = &sb, &sa
			}
			for j := 0; j < NLimbs; j++ {
				if a[j][ln] != (*wantA)[j][ln] || b[j][ln] != (*wantB)[j][ln] {
					t.Fatalf("ERR cswap (lane %d, limb %d)\n", ln, j)
				}
			}
		}
	}
}

func TestFp4FinalReduce(t *testing.T) {
	var rng prng
	rng.init("test final reduce Fp4")
	var a, b, c Fp4
	p, pp := refModuli()
	for i := 0; i < 10000; i++ {
		// feed values straight out of a multiplication, the shape
		// FinalReduce receives in practice
		rng.mkfp(&a, 30)
		rng.mkfp(&b, 30)
		c.Mul(&a, &b)
		want := make([]big.Int, 4)
		for ln := 0; ln < 4; ln++ {
			w := fpLaneToBig(&c, ln, &pp)
			w.Mod(&w, &p)
			want[ln] = w
		}
		c.FinalReduce()
		for ln := 0; ln < 4; ln++ {
			zc := fpLaneToInt(&c, ln)
			if zc.Cmp(&p) >= 0 {
				t.Fatalf("ERR final reduce: out of range (lane %d):\nc = %s\n", ln, fpLaneToString(&c, ln))
			}
			if zc.Cmp(&want[ln]) != 0 {
				t.Fatalf("ERR final reduce (lane %d):\nc = %s\n", ln, fpLaneToString(&c, ln))
			}
		}
	}
}

// =====================================================================
// Benchmarks.

func BenchmarkFp4Add(b *testing.B) {
	var rng prng
	rng.init("bench add Fp4")
	var x, y Fp4
	rng.mkfp(&x, 29)
	rng.mkfp(&y, 29)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Add(&x, &y)
	}
}

func BenchmarkFp4Mul(b *testing.B) {
	var rng prng
	rng.init("bench mul Fp4")
	var x, y Fp4
	rng.mkfp(&x, 29)
	rng.mkfp(&y, 29)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Mul(&x, &y)
	}
}

func BenchmarkFp4Sqr(b *testing.B) {
	var rng prng
	rng.init("bench sqr Fp4")
	var x Fp4
	rng.mkfp(&x, 29)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Sqr(&x)
	}
}

func BenchmarkFp4Inv(b *testing.B) {
	var rng prng
	rng.init("bench inv Fp4")
	var x Fp4
	rng.mkfp(&x, 29)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x.Inv(&x)
	}
}
