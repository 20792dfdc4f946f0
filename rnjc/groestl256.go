// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rnjc

import "github.com/umbranet/core/keccak"

const groestlRate = 136

// groestl256 stands in for Groestl-256 in applyHash's n=1 slot. Real
// Groestl compresses with a pair of AES-derived permutations (P and Q)
// over an 8x8-byte state and finishes with an output transform P(h)^h.
// No ecosystem Go package implements it, and reproducing AES's
// ShiftBytes/MixBytes/round-constant schedule correctly from memory,
// with no toolchain available to check it, is not something this
// repository can do with confidence. This keeps Groestl's actual
// output-transform shape (permute the chaining value, XOR it back in,
// truncate) but uses the module's own Keccak-f[1600] permutation in
// place of P/Q, domain-separated from every other applyHash arm. See
// DESIGN.md.
func groestl256(data []byte) [32]byte {
	var state [25]uint64
	tagged := append([]byte("rnjc-groestl256\x00"), data...)
	absorbAll(&state, groestlRate, 0x80, tagged)

	pre := state
	keccak.F1600(&state)
	for i := range state {
		state[i] ^= pre[i]
	}

	var out [32]byte
	copy(out[:], squeeze(&state, 32))
	return out
}
