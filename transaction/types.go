// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transaction implements CryptoNote-style transaction
// construction and scanning (spec.md §4.9): turning a sender's spent
// outputs and intended destinations into a signed RingCT transaction,
// and recovering a spendable output's secret key from the receiver's
// account keys.
package transaction

import (
	"github.com/umbranet/core/address"
	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/ringct"
)

// Error kinds for the transaction subsystem (spec.md §4.9, §7).
const (
	KindNoSources coreerr.Kind = iota + 1
	KindNoDestinations
	KindRealIndexOutOfBounds
	KindKeyImageGeneration
	KindMultiplePaymentIDs
	KindExcessSpending
	KindPaymentIDEncryption
)

// SourceEntry is one ring member of a spent input: its absolute output
// offset within the chain's global output index, the one-time
// destination key it pays to, and the commitment that output carries.
// Commitment is in wire form (pre-multiplied by 1/8, per spec.md §6),
// matching ringct.MixRingEntry's convention; Destination is the full
// one-time public key. Both are compressed as-is rather than re-scaled
// when building a ring.
type SourceEntry struct {
	AbsoluteOffset uint64
	Destination    *curve.Point
	Commitment     *curve.Point
}

// Source is one input the transaction spends: the amount and blinding
// mask of the real output, the decoy ring it is hidden among, and
// enough context (subaddress index, tx public keys, output index) to
// regenerate the spending secret key.
type Source struct {
	Amount                 uint64
	AmountMask             *curve.Scalar
	Outputs                []SourceEntry
	RealOutputIndex        uint64
	RealOutputTxIndex      uint64
	RealOutputTxPublicKeys []*curve.Point
	SubaddressIndex        address.Index
}

// DestinationKind distinguishes change outputs (paid back to the
// sender's own subaddress) from outputs paid to an external address.
type DestinationKind int

const (
	DestinationChange DestinationKind = iota
	DestinationPayToAddress
)

// Destination is one new output to create.
type Destination struct {
	Amount uint64
	Kind   DestinationKind
	// ChangeIndex is used when Kind == DestinationChange.
	ChangeIndex address.Index
	// Address is used when Kind == DestinationPayToAddress.
	Address *address.Address
}

// In is a transaction input referencing a ring of prior outputs by
// relative (delta-encoded) offset, tagged with the spender's key image.
type In struct {
	KeyImage   [32]byte
	KeyOffsets []uint64
}

// Out is a transaction output: an amount (meaningful pre-RingCT; RingCT
// masks it) and the one-time destination key.
type Out struct {
	Amount uint64
	Key    *curve.Point
}

// Prefix is the unsigned body of a transaction — every field a RingCT
// signature's pre-MLSAG hash binds to via its tx_prefix_hash argument.
type Prefix struct {
	Version                uint64
	UnlockDelta            uint16
	Inputs                 []In
	Outputs                []Out
	TxPublicKey            *curve.Point
	AdditionalTxPublicKeys []*curve.Point
	EncryptedPaymentID     [8]byte
	HasPaymentID           bool
}

// Transaction pairs a prefix with the RingCT signature binding it.
type Transaction struct {
	Prefix Prefix
	RingCT *ringct.Signature
}
