// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package block implements the block header, mining blob, and Merkle
// tree-hash a miner hashes against the RNJC proof-of-work target
// (spec.md §3, §6).
package block

import "github.com/umbranet/core/keccak"

// treeHashCount returns the largest power of two strictly less than
// count, for count >= 3 — the width of the balanced prefix the
// unbalanced tail folds into before the regular power-of-two reduction
// takes over.
func treeHashCount(count int) int {
	pow := 2
	for pow < count {
		pow <<= 1
	}
	return pow >> 1
}

// TreeHash computes the CryptoNote Merkle root over a non-empty list of
// 32-byte hashes (spec.md §3's "Merkle root", §8 scenario 3). A single
// hash returns itself unchanged; two hashes hash their concatenation
// once; three or more fold an unbalanced binary tree whose leaves past
// the largest power of two are paired first, then reduce the resulting
// power-of-two-wide row pairwise until one hash remains.
func TreeHash(hashes [][32]byte) [32]byte {
	switch len(hashes) {
	case 0:
		panic("block: TreeHash called with no hashes")
	case 1:
		return hashes[0]
	case 2:
		var buf [64]byte
		copy(buf[:32], hashes[0][:])
		copy(buf[32:], hashes[1][:])
		return keccak.Sum256(buf[:])
	default:
		cnt := treeHashCount(len(hashes))
		buf := make([]byte, cnt*32)

		balanced := 2*cnt - len(hashes)
		for i := 0; i < balanced; i++ {
			copy(buf[i*32:(i+1)*32], hashes[i][:])
		}

		i := balanced
		for j := balanced; j < cnt; j++ {
			var pair [64]byte
			copy(pair[:32], hashes[i][:])
			copy(pair[32:], hashes[i+1][:])
			merged := keccak.Sum256(pair[:])
			copy(buf[j*32:(j+1)*32], merged[:])
			i += 2
		}

		for cnt > 2 {
			cnt >>= 1
			i := 0
			for j := 0; j < cnt*32; j += 32 {
				merged := keccak.Sum256(buf[i : i+64])
				copy(buf[j:j+32], merged[:])
				i += 64
			}
		}

		return keccak.Sum256(buf[:64])
	}
}
