// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringct

import (
	"encoding/binary"

	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// ECDHTuple is the XOR-masked (mask, amount) pair attached to an
// output so only its receiver can recover the committed value
// (spec.md §4.8: "ECDH-encoded (mask, amount) pairs ... obtained by
// XOR-masking with H_s(\"commitment_mask\" ‖ d) and
// first8(H_s(\"amount\" ‖ d))").
type ECDHTuple struct {
	Mask   [32]byte
	Amount [8]byte
}

func ecdhMaskKey(d *curve.Point) [32]byte {
	dc := curve.PointCompress(d)
	buf := append([]byte("commitment_mask"), dc[:]...)
	return keccak.Sum256(buf)
}

func ecdhAmountKey(d *curve.Point) [32]byte {
	dc := curve.PointCompress(d)
	buf := append([]byte("amount"), dc[:]...)
	return keccak.Sum256(buf)
}

// EncodeECDH masks mask and amount against the derivation point d so
// only the party that can recompute d (the receiver) can undo it.
func EncodeECDH(mask *curve.Scalar, amount uint64, d *curve.Point) ECDHTuple {
	maskKey := ecdhMaskKey(d)
	mb := mask.Bytes()
	var encMask [32]byte
	for i := range encMask {
		encMask[i] = mb[i] ^ maskKey[i]
	}

	var amountBytes [8]byte
	binary.LittleEndian.PutUint64(amountBytes[:], amount)
	amountKey := ecdhAmountKey(d)
	var encAmount [8]byte
	for i := range encAmount {
		encAmount[i] = amountBytes[i] ^ amountKey[i]
	}

	return ECDHTuple{Mask: encMask, Amount: encAmount}
}

// DecodeECDH reverses EncodeECDH given the same derivation point.
func DecodeECDH(t ECDHTuple, d *curve.Point) (mask *curve.Scalar, amount uint64) {
	maskKey := ecdhMaskKey(d)
	var mb [32]byte
	for i := range mb {
		mb[i] = t.Mask[i] ^ maskKey[i]
	}
	mask = curve.ScalarFromBytesModOrder(mb)

	amountKey := ecdhAmountKey(d)
	var ab [8]byte
	for i := range ab {
		ab[i] = t.Amount[i] ^ amountKey[i]
	}
	amount = binary.LittleEndian.Uint64(ab[:])
	return mask, amount
}
