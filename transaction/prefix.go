// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transaction

import (
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/varint"
)

// Hash returns the deterministic transaction-prefix hash a RingCT
// signature's pre-MLSAG hash binds to (spec.md §4.8's tx_prefix_hash).
// Field order: version, unlock delta, inputs (key image, relative
// offsets), outputs (amount, key), tx public key, additional tx public
// keys, encrypted payment ID.
func (p Prefix) Hash() [32]byte {
	buf := varint.Serialize(p.Version)
	buf = append(buf, varint.Serialize(uint64(p.UnlockDelta))...)

	buf = append(buf, varint.Serialize(uint64(len(p.Inputs)))...)
	for _, in := range p.Inputs {
		buf = append(buf, in.KeyImage[:]...)
		buf = append(buf, varint.Serialize(uint64(len(in.KeyOffsets)))...)
		for _, off := range in.KeyOffsets {
			buf = append(buf, varint.Serialize(off)...)
		}
	}

	buf = append(buf, varint.Serialize(uint64(len(p.Outputs)))...)
	for _, out := range p.Outputs {
		buf = append(buf, varint.Serialize(out.Amount)...)
		keyBytes := curve.PointCompress(out.Key)
		buf = append(buf, keyBytes[:]...)
	}

	txPubBytes := curve.PointCompress(p.TxPublicKey)
	buf = append(buf, txPubBytes[:]...)

	buf = append(buf, varint.Serialize(uint64(len(p.AdditionalTxPublicKeys)))...)
	for _, k := range p.AdditionalTxPublicKeys {
		kb := curve.PointCompress(k)
		buf = append(buf, kb[:]...)
	}

	if p.HasPaymentID {
		buf = append(buf, 1)
		buf = append(buf, p.EncryptedPaymentID[:]...)
	} else {
		buf = append(buf, 0)
	}

	return keccak.Sum256(buf)
}
