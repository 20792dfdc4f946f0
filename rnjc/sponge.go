// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rnjc

import "github.com/umbranet/core/keccak"

// bytesToWords and wordsToBytes pack/unpack a little-endian byte slice
// into/out of the Keccak-f[1600] lane layout the keccak package's
// exported F1600 operates on.
func bytesToWords(b []byte) []uint64 {
	n := len(b) / 8
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		var v uint64
		for j := 0; j < 8; j++ {
			v |= uint64(b[i*8+j]) << (8 * uint(j))
		}
		out[i] = v
	}
	return out
}

func wordsToBytes(w []uint64, out []byte) {
	for i := range out {
		word := i / 8
		shift := uint(8 * (i % 8))
		out[i] = byte(w[word] >> shift)
	}
}

func xorBlock(state *[25]uint64, block []byte) {
	for i, w := range bytesToWords(block) {
		state[i] ^= w
	}
}

// absorbAll XORs data into state in rateBytes-sized chunks, permuting
// after every chunk including a final, zero-padded chunk tagged with
// domainByte in its last byte and a 0x01 start-of-pad marker — the
// same multi-rate padding convention the keccak package's own sponge
// uses, parameterised here so groestl256 and skein512 can each claim a
// distinct domain separation.
func absorbAll(state *[25]uint64, rateBytes int, domainByte byte, data []byte) {
	block := make([]byte, rateBytes)
	for len(data) >= rateBytes {
		copy(block, data[:rateBytes])
		xorBlock(state, block)
		keccak.F1600(state)
		data = data[rateBytes:]
	}
	for i := range block {
		block[i] = 0
	}
	copy(block, data)
	block[len(data)] ^= 0x01
	block[rateBytes-1] ^= domainByte
	xorBlock(state, block)
	keccak.F1600(state)
}

func squeeze(state *[25]uint64, n int) []byte {
	out := make([]byte, 200)
	wordsToBytes(state[:], out)
	return out[:n]
}
