// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rnjc

import (
	"github.com/decred/dcrd/crypto/blake256"
	"github.com/zeebo/blake3"
)

// applyHash dispatches to one of the four digest families RNJC's
// scratchpad mixing and final step select between (spec.md §4.2),
// selected by n mod 4.
//
//	0: Blake-256     — github.com/decred/dcrd/crypto/blake256
//	1: Groestl-256    — hand-written, see groestl256.go
//	2: JH-256         — substituted by BLAKE3 (github.com/zeebo/blake3);
//	                    no ecosystem Go JH implementation exists, so
//	                    BLAKE3 fills JH's slot.
//	3: Skein-512      — hand-written, see skein512.go
func applyHash(data []byte, n byte) [32]byte {
	switch n & 3 {
	case 0:
		h := blake256.New()
		h.Write(data)
		var out [32]byte
		copy(out[:], h.Sum(nil))
		return out
	case 1:
		return groestl256(data)
	case 2:
		h := blake3.New()
		h.Write(data)
		var out [32]byte
		copy(out[:], h.Sum(nil))
		return out
	default:
		return skein512(data)
	}
}
