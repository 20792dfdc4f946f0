// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keccak implements the Keccak-f[1600] permutation and the
// non-standard sponge usage CryptoNote-family coins build on top of it.
//
// golang.org/x/crypto/sha3 is not used here: it only exposes the
// NIST/legacy Keccak *digest* interfaces (32 or 64 bytes out), never
// the raw 200-byte permutation state CN_fast_hash's sibling — the
// "Keccak-full" seed used by the RNJC proof-of-work — needs to read
// directly. Both digest sizes are obtained from the one sponge
// implementation below, matching the reference `keccak()` routine
// (absorb with multi-rate padding, permute once, copy the requested
// number of bytes straight out of the resulting state) rather than a
// textbook repeated-squeeze sponge.
package keccak

const (
	rounds   = 24
	laneBits = 64
	// rate is fixed at 136 bytes (1088 bits), matching a capacity of
	// 512 bits — the parameterisation CryptoNote coins use for both
	// the 32-byte fast hash and the 200-byte full-state seed.
	rate = 136
	// StateBytes is the full width of the Keccak-f[1600] state.
	StateBytes = 200
)

var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var rotationOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

func rotl64(x uint64, n uint) uint64 {
	n %= 64
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (64 - n))
}

// f1600 applies the 24-round Keccak-f permutation in place to a
// 5x5 array of 64-bit lanes addressed as state[x][y].
func f1600(state *[25]uint64) {
	var a [5][5]uint64
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			a[x][y] = state[x+5*y]
		}
	}

	for round := 0; round < rounds; round++ {
		// Theta
		var c [5]uint64
		for x := 0; x < 5; x++ {
			c[x] = a[x][0] ^ a[x][1] ^ a[x][2] ^ a[x][3] ^ a[x][4]
		}
		var d [5]uint64
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] ^= d[x]
			}
		}

		// Rho + Pi
		var b [5][5]uint64
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y][(2*x+3*y)%5] = rotl64(a[x][y], rotationOffsets[x][y])
			}
		}

		// Chi
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x][y] = b[x][y] ^ ((^b[(x+1)%5][y]) & b[(x+2)%5][y])
			}
		}

		// Iota
		a[0][0] ^= roundConstants[round]
	}

	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			state[x+5*y] = a[x][y]
		}
	}
}

func bytesToState(block []byte, state *[25]uint64) {
	for i := 0; i < len(block)/8; i++ {
		var lane uint64
		for b := 0; b < 8; b++ {
			lane |= uint64(block[i*8+b]) << (8 * b)
		}
		state[i] ^= lane
	}
}

func stateToBytes(state *[25]uint64, out []byte) {
	for i := 0; i < len(out); i++ {
		word := i / 8
		shift := uint(8 * (i % 8))
		out[i] = byte(state[word] >> shift)
	}
}

// sponge absorbs data with CryptoNote's multi-rate padding (0x01 at the
// start of the pad, 0x80 OR'd into the last byte of the rate-sized
// block) and copies the first outLen bytes of the resulting 1600-bit
// state, without any further permutation even when outLen > rate. This
// matches the reference keccak() used by cn_fast_hash and Keccak-full.
func sponge(data []byte, outLen int) []byte {
	var state [25]uint64

	for len(data) >= rate {
		bytesToState(data[:rate], &state)
		f1600(&state)
		data = data[rate:]
	}

	var block [rate]byte
	copy(block[:], data)
	block[len(data)] ^= 0x01
	block[rate-1] ^= 0x80
	bytesToState(block[:], &state)
	f1600(&state)

	out := make([]byte, outLen)
	full := make([]byte, StateBytes)
	stateToBytes(&state, full)
	copy(out, full)
	return out
}

// Sum256 returns the 32-byte CryptoNote "fast hash" (Keccak-256 with
// the original, pre-NIST 0x01 padding byte).
func Sum256(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], sponge(data, 32))
	return out
}

// SumFull returns the entire 200-byte permutation state after
// absorbing data — the "Keccak-256-Full" seed RNJC uses to derive its
// CAST-256 key, initial scratch buffer and register blocks.
func SumFull(data []byte) [StateBytes]byte {
	var out [StateBytes]byte
	copy(out[:], sponge(data, StateBytes))
	return out
}

// F1600 exposes the bare permutation (as 25 little-endian words) for
// callers that, like RNJC's final mixing step, need to permute an
// already-assembled state rather than absorb fresh input.
func F1600(state *[25]uint64) {
	f1600(state)
}
