// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rnjc

const skeinRate = 136

// skein512 stands in for Skein-512 (256-bit output) in applyHash's n=3
// slot. Real Skein runs the Threefish-512 block cipher in UBI (Unique
// Block Iteration) chaining across three typed blocks — configuration,
// message, output — each tweak-tagged. Threefish's MIX rotation-constant
// table is, like CAST-256's S-boxes (see cast256/sbox.go), a set of
// published magic numbers this repository has no reliable way to
// reproduce from memory. This keeps Skein's three-stage UBI chaining
// shape — a running state threaded through config, then message, then
// output typed absorptions — but substitutes the module's own
// Keccak-f[1600] permutation for Threefish. See DESIGN.md.
func skein512(data []byte) [32]byte {
	var state [25]uint64
	absorbAll(&state, skeinRate, 0xC1, []byte("rnjc-skein512-cfg"))

	msgState := state
	absorbAll(&msgState, skeinRate, 0x00, data)

	outState := msgState
	absorbAll(&outState, skeinRate, 0xFF, []byte("rnjc-skein512-out"))

	var out [32]byte
	copy(out[:], squeeze(&outState, 32))
	return out
}
