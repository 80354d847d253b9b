// Package mpi provides word-size conversions and formatting for the
// multi-precision integers exchanged at the package boundaries: the
// 8x32-bit little-endian layout of wire-format values, and the 9x29-bit
// reduced-radix layout used by the field arithmetic.
package mpi

import (
	"fmt"
	"strings"
)

// Conv32to29 repacks the little-endian 32-bit words of a into
// little-endian 29-bit words, filling all of r. Bits of a beyond the
// capacity of r are discarded; if a runs out first, the remaining words
// of r are zero.
func Conv32to29(r []uint32, a []uint32) {
	var acc uint64
	bits := 0
	j := 0
	for i := range r {
		for bits < 29 && j < len(a) {
			acc |= uint64(a[j]) << uint(bits)
			bits += 32
			j++
		}
		r[i] = uint32(acc) & 0x1FFFFFFF
		acc >>= 29
		if bits >= 29 {
			bits -= 29
		} else {
			bits = 0
		}
	}
}

// Conv29to32 repacks the little-endian 29-bit words of a (high bits of
// each word must be clear) into little-endian 32-bit words, filling all
// of r. Bits beyond the capacity of r are discarded; missing source
// words read as zero.
func Conv29to32(r []uint32, a []uint32) {
	var acc uint64
	bits := 0
	j := 0
	for i := range r {
		for bits < 32 && j < len(a) {
			acc |= uint64(a[j]) << uint(bits)
			bits += 29
			j++
		}
		r[i] = uint32(acc)
		acc >>= 32
		if bits >= 32 {
			bits -= 32
		} else {
			bits = 0
		}
	}
}

// ToString returns the hexadecimal representation (with "0x" prefix,
// most significant word first) of the little-endian 29-bit words of a.
func ToString(a []uint32) string {
	var sb strings.Builder
	sb.WriteString("0x")
	for i := len(a) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%08X", a[i])
	}
	return sb.String()
}
