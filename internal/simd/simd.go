package simd

// This file implements a vector of four 64-bit unsigned integer lanes,
// which is the unit of data parallelism for the whole module: every field
// element limb and every scalar word carries four independent instances,
// one per lane. This implementation is portable (no assembly, no platform
// SIMD); each operation is a fixed straight-line sequence over the four
// lanes, so it is constant-time as long as the basic 64-bit integer
// operations of the platform are.

// Vec4 is a packed vector of four 64-bit lanes. The zero value is the
// all-zero vector.
type Vec4 [4]uint64

// Zero returns the all-zero vector.
func Zero() Vec4 {
	return Vec4{0, 0, 0, 0}
}

// Splat returns the vector with x in every lane.
func Splat(x uint64) Vec4 {
	return Vec4{x, x, x, x}
}

// FromLanes returns the vector with the given per-lane values
// (x0 is lane 0).
func FromLanes(x0, x1, x2, x3 uint64) Vec4 {
	return Vec4{x0, x1, x2, x3}
}

// Lane returns the value of lane i (0 <= i <= 3).
func (v Vec4) Lane(i int) uint64 {
	return v[i]
}

// Add returns the lane-wise sum v + w (wrapping modulo 2^64).
func (v Vec4) Add(w Vec4) Vec4 {
	return Vec4{v[0] + w[0], v[1] + w[1], v[2] + w[2], v[3] + w[3]}
}

// Sub returns the lane-wise difference v - w (wrapping modulo 2^64).
func (v Vec4) Sub(w Vec4) Vec4 {
	return Vec4{v[0] - w[0], v[1] - w[1], v[2] - w[2], v[3] - w[3]}
}

// Mul32 returns the lane-wise product of the low 32 bits of v and w,
// as a full 64-bit result per lane. These are the semantics of the
// packed 32x32->64 multiplication found on common vector units.
func (v Vec4) Mul32(w Vec4) Vec4 {
	const m = 0xFFFFFFFF
	return Vec4{
		(v[0] & m) * (w[0] & m),
		(v[1] & m) * (w[1] & m),
		(v[2] & m) * (w[2] & m),
		(v[3] & m) * (w[3] & m),
	}
}

// Mac returns v + x*y, with the multiplication semantics of Mul32.
func (v Vec4) Mac(x, y Vec4) Vec4 {
	return v.Add(x.Mul32(y))
}

// Xor returns the lane-wise exclusive or of v and w.
func (v Vec4) Xor(w Vec4) Vec4 {
	return Vec4{v[0] ^ w[0], v[1] ^ w[1], v[2] ^ w[2], v[3] ^ w[3]}
}

// And returns the lane-wise conjunction of v and w.
func (v Vec4) And(w Vec4) Vec4 {
	return Vec4{v[0] & w[0], v[1] & w[1], v[2] & w[2], v[3] & w[3]}
}

// Or returns the lane-wise disjunction of v and w.
func (v Vec4) Or(w Vec4) Vec4 {
	return Vec4{v[0] | w[0], v[1] | w[1], v[2] | w[2], v[3] | w[3]}
}

// Shl returns each lane shifted left by n bits (n < 64).
func (v Vec4) Shl(n uint) Vec4 {
	return Vec4{v[0] << n, v[1] << n, v[2] << n, v[3] << n}
}

// Shr returns each lane logically shifted right by n bits (n < 64).
func (v Vec4) Shr(n uint) Vec4 {
	return Vec4{v[0] >> n, v[1] >> n, v[2] >> n, v[3] >> n}
}

// Permute returns the vector whose lane k is lane ik of v. Index
// arguments MUST be in 0..3; they select lanes, not secret data.
func (v Vec4) Permute(i0, i1, i2, i3 int) Vec4 {
	return Vec4{v[i0], v[i1], v[i2], v[i3]}
}
