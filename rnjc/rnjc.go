// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rnjc implements RNJC, the memory-hard proof-of-work hash
// used in block validation (spec.md §4.2): a Keccak-full-seeded,
// CAST-256-driven scratchpad walk with a four-way op dispatch per
// main-loop step (one op being applyHash), a two-level self-recursive
// step, and a final applyHash over the permuted state.
package rnjc

import (
	"encoding/binary"
	"math/bits"

	"github.com/umbranet/core/cast256"
	"github.com/umbranet/core/keccak"
)

const (
	memory          = 1 << 20
	iterations      = 1024
	recursionDepth  = 2
	recursionIter   = 4
	blockSize       = 16
	initSizeBlocks  = 8
	initSizeBytes   = initSizeBlocks * blockSize // 128
	scratchBlockCnt = memory / blockSize
)

// Hash computes RNJC(data).
func Hash(data []byte) [32]byte {
	return hashRecursive(data, recursionDepth)
}

func e2i(a [blockSize]byte, count int) int {
	return int(binary.LittleEndian.Uint64(a[:8]) / blockSize % uint64(count))
}

func swap16(a, b *[blockSize]byte) {
	*a, *b = *b, *a
}

func xor16(dst *[blockSize]byte, src [blockSize]byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func cast256Key(lo [blockSize]byte) [cast256.KeySize]byte {
	var key [cast256.KeySize]byte
	copy(key[:blockSize], lo[:])
	return key
}

func hashRecursive(data []byte, depth uint32) [32]byte {
	state := keccak.SumFull(data)

	var initKeyFull [cast256.KeySize]byte
	copy(initKeyFull[:], state[0:32])
	cipher := cast256.NewCipher(initKeyFull)

	var text [initSizeBlocks][blockSize]byte
	for j := 0; j < initSizeBlocks; j++ {
		copy(text[j][:], state[64+j*blockSize:64+(j+1)*blockSize])
	}

	scratch := make([]byte, memory)
	for i := 0; i < memory/initSizeBytes; i++ {
		for j := 0; j < initSizeBlocks; j++ {
			text[j] = cipher.Encrypt(text[j])
		}
		for j := 0; j < initSizeBlocks; j++ {
			copy(scratch[i*initSizeBytes+j*blockSize:i*initSizeBytes+(j+1)*blockSize], text[j][:])
		}
	}

	var a, b, c [blockSize]byte
	for i := 0; i < blockSize; i++ {
		a[i] = state[i] ^ state[32+i]
		b[i] = state[16+i] ^ state[48+i]
	}

	for i := 0; i < iterations; i++ {
		j := e2i(a, scratchBlockCnt)
		copy(c[:], scratch[j*blockSize:(j+1)*blockSize])

		n := (uint32(a[0]) ^ (uint32(i) * depth)) & 3
		switch n {
		case 0:
			ciph := cast256.NewCipher(cast256Key(a))
			c = ciph.Encrypt(c)
		case 1:
			a1 := binary.LittleEndian.Uint64(a[:8])
			c1 := binary.LittleEndian.Uint64(c[:8])
			hi, lo := bits.Mul64(a1, c1)
			// byte-swap the two 64-bit halves of the 128-bit product
			d0, d1 := hi, lo
			b0 := binary.LittleEndian.Uint64(b[:8])
			b1 := binary.LittleEndian.Uint64(b[8:])
			binary.LittleEndian.PutUint64(b[:8], b0+d0)
			binary.LittleEndian.PutUint64(b[8:], b1+d1)
		case 2:
			h := applyHash(c[:], a[0]&3)
			copy(c[:], h[:blockSize])
		default:
			ciph := cast256.NewCipher(cast256Key(a))
			c = ciph.Decrypt(c)
		}

		xor16(&b, c)
		swap16(&b, &c)
		copy(scratch[j*blockSize:(j+1)*blockSize], c[:])
		swap16(&a, &b)
	}

	if depth > 0 {
		for i := 0; i < recursionIter; i++ {
			j := e2i(a, scratchBlockCnt)
			recursed := hashRecursive(a[:], depth-1)
			if i%2 == 0 {
				copy(c[:], recursed[:blockSize])
			} else {
				copy(c[:], recursed[blockSize:])
			}
			xor16(&b, c)
			swap16(&b, &c)
			copy(scratch[j*blockSize:(j+1)*blockSize], c[:])
			swap16(&a, &b)
		}
	}

	var text2 [initSizeBlocks][blockSize]byte
	for j := 0; j < initSizeBlocks; j++ {
		copy(text2[j][:], state[64+j*blockSize:64+(j+1)*blockSize])
	}
	var reexpandKey [cast256.KeySize]byte
	copy(reexpandKey[:], state[32:64])
	reexpandCipher := cast256.NewCipher(reexpandKey)
	for i := 0; i < memory/initSizeBytes; i++ {
		for j := 0; j < initSizeBlocks; j++ {
			var blk [blockSize]byte
			copy(blk[:], text2[j][:])
			for k := 0; k < blockSize; k++ {
				blk[k] ^= scratch[i*initSizeBytes+j*blockSize+k]
			}
			text2[j] = reexpandCipher.Encrypt(blk)
		}
	}
	for j := 0; j < initSizeBlocks; j++ {
		copy(state[64+j*blockSize:64+(j+1)*blockSize], text2[j][:])
	}

	var words [25]uint64
	for i := 0; i < 25; i++ {
		words[i] = binary.LittleEndian.Uint64(state[i*8 : i*8+8])
	}
	keccak.F1600(&words)
	for i := 0; i < 25; i++ {
		binary.LittleEndian.PutUint64(state[i*8:i*8+8], words[i])
	}

	return applyHash(state[:], state[0]&3)
}
