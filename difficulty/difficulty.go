// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package difficulty implements the proof-of-work acceptance predicate
// (spec.md §4.3): does a candidate hash satisfy a given difficulty
// target. The check needs exact, overflow-aware 256-bit arithmetic,
// which is why it is built on github.com/holiman/uint256 rather than
// math/big — uint256.Int is a fixed-width 256-bit integer with
// explicit overflow-reporting Mul/Add, matching the widening
// multiplications the predicate performs without the heap allocation
// and arbitrary-precision bookkeeping math/big carries for a size that
// never varies.
package difficulty

import "github.com/holiman/uint256"

// Target is the difficulty value a hash must satisfy. Represented as a
// full 256-bit integer for arithmetic convenience, but values above
// 2^128-1 are never produced by this core (difficulty is a u128
// quantity per spec.md §4.3); Satisfies still computes correctly for
// any non-negative value uint256.Int can hold.
type Target = uint256.Int

// NewTarget builds a Target from a uint64 difficulty value.
func NewTarget(d uint64) *Target {
	return uint256.NewInt(d)
}

// le128ToInt decodes a little-endian 16-byte half of a hash into a
// uint256.Int (uint256.SetBytes expects big-endian input, so the slice
// is reversed first).
func le128ToInt(b []byte) *uint256.Int {
	rev := make([]byte, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return new(uint256.Int).SetBytes(rev)
}

// Satisfies reports whether hash (a 32-byte CryptoNote hash,
// interpreted as a 256-bit little-endian integer split into a low and
// a high 128-bit half) meets difficulty target — i.e. hash * target
// does not overflow 256 bits.
//
// The product is computed in two widening 128x128->256 steps instead
// of one 256x256 multiply: hi = hash[16:32] as a 128-bit value, lo =
// hash[0:16]. hi*target is checked for overflow of the 128-bit range
// first (a cheap early-out: if hi*target alone already exceeds 2^128,
// shifting it into the upper half of a 256-bit product is guaranteed
// to overflow, so hash plainly fails regardless of lo). Otherwise the
// full product hi*target<<128 + lo*target is assembled and accepted
// iff that final addition does not overflow 256 bits, which is
// equivalent to hash*target < 2^256, the standard difficulty
// acceptance rule.
func Satisfies(hash [32]byte, target *Target) bool {
	lo := le128ToInt(hash[0:16])
	hi := le128ToInt(hash[16:32])

	twoPow128 := new(uint256.Int).Lsh(uint256.NewInt(1), 128)

	hiProduct, overflow := new(uint256.Int).MulOverflow(hi, target)
	if overflow || hiProduct.Cmp(twoPow128) >= 0 {
		return false
	}

	loProduct, overflow := new(uint256.Int).MulOverflow(lo, target)
	if overflow {
		return false
	}

	shifted := new(uint256.Int).Lsh(hiProduct, 128)
	_, overflow = new(uint256.Int).AddOverflow(shifted, loProduct)
	return !overflow
}
