// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package block

import (
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/transaction"
	"github.com/umbranet/core/varint"
)

// timestampIntervalSeconds is the rounding granularity the mining blob
// applies to a block's timestamp (spec.md §6).
const timestampIntervalSeconds = 600

// roundedTimestampOffset is added back after flooring to the interval,
// so the rounded value always lands on the half-interval mark.
const roundedTimestampOffset = 300

// zeroHash is the Merkle root substituted when a block carries no
// non-miner transactions (spec.md §6).
var zeroHash [32]byte

// Header is a block header (spec.md §3 "Block"). Invariant: the last
// element of HashCheckpoints is the claimed PoW hash — callers append
// it only after computing RNJC(MiningBlob(...)).
type Header struct {
	MajorVersion    uint8
	MinorVersion    uint8
	Timestamp       uint64
	PrevID          [32]byte
	MinerSpecific   *curve.Point
	Iterations      uint32
	HashCheckpoints [][32]byte
}

// Block pairs a header with its miner transaction and the hashes of
// every other transaction it includes.
type Block struct {
	Header    Header
	MinerTx   *transaction.Transaction
	TxHashes  [][32]byte
	MinerHash [32]byte
}

// roundTimestamp applies the mining blob's timestamp rounding rule:
// flooring to the nearest 10-minute boundary, then re-centering on the
// boundary's midpoint (spec.md §6).
func roundTimestamp(t uint64) uint64 {
	return t - (t % timestampIntervalSeconds) + roundedTimestampOffset
}

// MiningBlob returns the deterministic byte sequence a miner hashes
// with RNJC to produce a candidate proof-of-work hash (spec.md §6):
// major_version, minor_version, the rounded timestamp, prev_id,
// miner_specific pubkey, the Merkle root of tx_hashes (the zero hash if
// tx_hashes is empty), and a varint of the tx_hashes count. The miner
// transaction hash is not folded into this root.
func (b Block) MiningBlob() []byte {
	buf := varint.Serialize(uint64(b.Header.MajorVersion))
	buf = append(buf, varint.Serialize(uint64(b.Header.MinorVersion))...)
	buf = append(buf, varint.Serialize(roundTimestamp(b.Header.Timestamp))...)
	buf = append(buf, b.Header.PrevID[:]...)

	minerSpecific := curve.PointCompress(b.Header.MinerSpecific)
	buf = append(buf, minerSpecific[:]...)

	root := zeroHash
	if len(b.TxHashes) > 0 {
		root = TreeHash(b.TxHashes)
	}
	buf = append(buf, root[:]...)

	buf = append(buf, varint.Serialize(uint64(len(b.TxHashes)))...)
	return buf
}

// serialize returns the full header encoding the block identity hash
// binds to — every field MiningBlob covers, plus Iterations and the
// HashCheckpoints vector the mining blob cannot include (its last
// element is the PoW hash MiningBlob is hashed to produce).
func (h Header) serialize() []byte {
	buf := varint.Serialize(uint64(h.MajorVersion))
	buf = append(buf, varint.Serialize(uint64(h.MinorVersion))...)
	buf = append(buf, varint.Serialize(h.Timestamp)...)
	buf = append(buf, h.PrevID[:]...)

	minerSpecific := curve.PointCompress(h.MinerSpecific)
	buf = append(buf, minerSpecific[:]...)

	buf = append(buf, varint.Serialize(uint64(h.Iterations))...)
	buf = append(buf, varint.Serialize(uint64(len(h.HashCheckpoints)))...)
	for _, c := range h.HashCheckpoints {
		buf = append(buf, c[:]...)
	}
	return buf
}

// Hash returns the block's identity hash (the hash callers reference by
// height/prev_id): the full header, followed by the Merkle root over
// {miner_tx_hash} ∪ tx_hashes and a varint of that set's size, all under
// one CN fast hash. Unlike MiningBlob's Merkle root this one is never
// substituted with the zero hash — a block always has a miner
// transaction, so the set folded into the tree is never empty.
func (b Block) Hash() [32]byte {
	hashes := make([][32]byte, 0, len(b.TxHashes)+1)
	hashes = append(hashes, b.MinerHash)
	hashes = append(hashes, b.TxHashes...)

	buf := b.Header.serialize()
	root := TreeHash(hashes)
	buf = append(buf, root[:]...)
	buf = append(buf, varint.Serialize(uint64(len(hashes)))...)

	return keccak.Sum256(buf)
}
