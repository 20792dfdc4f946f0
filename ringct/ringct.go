// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ringct implements the composite RingCT signature (spec.md
// §4.8): the binder that glues MLSAG ring signatures over (output-key,
// commitment) rows, Pedersen commitments, ECDH-encoded output amounts,
// Bulletproof range proofs and fee balancing into one verifiable
// transaction signature.
package ringct

import (
	"encoding/binary"
	"io"

	"github.com/umbranet/core/bulletproof"
	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
	"github.com/umbranet/core/mlsag"
)

// Error kinds for the ringct subsystem.
const (
	KindShapeMismatch coreerr.Kind = iota + 1
	KindBalanceMismatch
	KindInvalidSignatureType
)

// Type distinguishes the signature variants a RingCT transaction may
// carry. Only the Bulletproof-ranged variants are implemented; Null
// (pre-RingCT, plaintext amounts) is rejected by verification per
// spec.md §4.8 step 1.
type Type int

const (
	TypeNull Type = iota
	TypeBulletproof
	TypeBulletproof2
)

// MixRingEntry is one ring member of one input's decoy set: a
// destination public key and the output commitment bound to it.
type MixRingEntry struct {
	Dest       [32]byte
	Commitment [32]byte
}

// Base holds everything about a RingCT signature except the actual
// proofs: the parts the pre-MLSAG message hash is computed over.
type Base struct {
	Type              Type
	MixRing           [][]MixRingEntry // MixRing[input][ringRow]
	OutputCommitments [][32]byte       // 1/8-scaled, one per bulletproof V slot
	ECDHExchange      []ECDHTuple
	Fee               uint64
}

// Signature is a complete RingCT signature: the base fields plus the
// range proofs, per-input pseudo-commitments and per-input MLSAGs.
type Signature struct {
	Base             Base
	Bulletproofs     []*bulletproof.Proof
	InputCommitments [][32]byte // pseudo-commitments, 1/8-scaled
	MLSAG            []*mlsag.Signature
}

func zero() *curve.Scalar { return scalarFromUint64(0) }

func scalarFromUint64(v uint64) *curve.Scalar {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:8], v)
	return curve.ScalarFromBytesModOrder(b)
}

// preMLSAGHash computes the message every per-input MLSAG signs over:
// spec.md §4.8, "H_s(type ‖ H_s(fee ‖ ΣECDH ‖ Σout commitments) ‖
// H_s(Σbulletproof bytes) ‖ tx_prefix_hash)".
func preMLSAGHash(sig *Signature, txPrefixHash [32]byte) [32]byte {
	if sig.Base.Type == TypeNull {
		return keccak.Sum256([]byte{byte(sig.Base.Type)})
	}

	var baseBuf []byte
	baseBuf = append(baseBuf, byte(sig.Base.Type))
	baseBuf = append(baseBuf, varintFee(sig.Base.Fee)...)
	for _, e := range sig.Base.ECDHExchange {
		baseBuf = append(baseBuf, e.Mask[:]...)
		baseBuf = append(baseBuf, e.Amount[:]...)
	}
	for _, c := range sig.Base.OutputCommitments {
		baseBuf = append(baseBuf, c[:]...)
	}
	baseHash := curve.HashToScalar(keccak.Sum256(baseBuf)).Bytes()

	var bpBuf []byte
	for _, p := range sig.Bulletproofs {
		bpBuf = appendProofBytes(bpBuf, p)
	}
	bpHash := curve.HashToScalar(keccak.Sum256(bpBuf)).Bytes()

	var outer []byte
	outer = append(outer, byte(sig.Base.Type))
	outer = append(outer, baseHash...)
	outer = append(outer, bpHash...)
	outer = append(outer, txPrefixHash[:]...)
	return keccak.Sum256(outer)
}

func varintFee(fee uint64) []byte {
	var b [10]byte
	n := binary.PutUvarint(b[:], fee)
	return b[:n]
}

// appendProofBytes serialises a Bulletproof's fields in the wire order
// spec.md §6 names: "A, S, T1, T2, tau_x, mu, L*, R*, a, b, t".
func appendProofBytes(dst []byte, p *bulletproof.Proof) []byte {
	app := func(pt *curve.Point) {
		c := curve.PointCompress(pt)
		dst = append(dst, c[:]...)
	}
	apps := func(s *curve.Scalar) {
		dst = append(dst, s.Bytes()...)
	}
	app(p.A)
	app(p.S)
	app(p.T1)
	app(p.T2)
	apps(p.TauX)
	apps(p.Mu)
	for _, l := range p.L {
		app(l)
	}
	for _, r := range p.R {
		app(r)
	}
	apps(p.ADash)
	apps(p.BDash)
	apps(p.T)
	return dst
}

// VerifyMultiple checks a batch of RingCT signatures (spec.md §4.8
// verify_multiple): every signature's MLSAGs and its commitment
// balance are checked individually, then every signature's
// Bulletproofs are verified together as a single batch.
func VerifyMultiple(rng io.Reader, signatures []*Signature, txPrefixHashes [][32]byte) error {
	if len(signatures) != len(txPrefixHashes) {
		return coreerr.New(coreerr.RingCT, KindShapeMismatch, "signature count does not match prefix-hash count")
	}

	var allProofs []*bulletproof.Proof
	for idx, sig := range signatures {
		if sig.Base.Type == TypeNull {
			return coreerr.New(coreerr.RingCT, KindInvalidSignatureType, "null signature type is not verifiable")
		}
		if len(sig.Base.MixRing) != len(sig.MLSAG) || len(sig.MLSAG) != len(sig.InputCommitments) {
			return coreerr.New(coreerr.RingCT, KindShapeMismatch, "mixRing/MLSAG/input-commitment count mismatch")
		}
		if len(sig.Bulletproofs) == 0 || len(sig.Base.OutputCommitments) != len(sig.Bulletproofs[0].V) {
			return coreerr.New(coreerr.RingCT, KindShapeMismatch, "output-commitment count does not match bulletproof V count")
		}

		message := preMLSAGHash(sig, txPrefixHashes[idx])

		for i, sigMLSAG := range sig.MLSAG {
			pseudo, err := curve.PointDecompress(sig.InputCommitments[i])
			if err != nil {
				return coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid pseudo-commitment encoding")
			}
			pseudoFull := curve.MulByCofactor(pseudo)

			matrix := make(mlsag.Ring, len(sig.Base.MixRing[i]))
			for r, entry := range sig.Base.MixRing[i] {
				commitment, err := curve.PointDecompress(entry.Commitment)
				if err != nil {
					return coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid mix-ring commitment encoding")
				}
				diff := new(curve.Point).Subtract(curve.MulByCofactor(commitment), pseudoFull)
				matrix[r] = [][32]byte{entry.Dest, curve.PointCompress(diff)}
			}

			ok, err := mlsag.Verify(message, matrix, sigMLSAG)
			if err != nil {
				return err
			}
			if !ok {
				return coreerr.New(coreerr.RingCT, KindShapeMismatch, "MLSAG verification failed")
			}
		}

		sumIn := curve.Identity()
		for _, c := range sig.InputCommitments {
			p, err := curve.PointDecompress(c)
			if err != nil {
				return coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid input-commitment encoding")
			}
			sumIn = new(curve.Point).Add(sumIn, curve.MulByCofactor(p))
		}

		sumOut := curve.Identity()
		for _, c := range sig.Base.OutputCommitments {
			p, err := curve.PointDecompress(c)
			if err != nil {
				return coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid output-commitment encoding")
			}
			sumOut = new(curve.Point).Add(sumOut, curve.MulByCofactor(p))
		}
		feeTerm := new(curve.Point).ScalarMult(scalarFromUint64(sig.Base.Fee), curve.H())
		sumOut = new(curve.Point).Add(sumOut, feeTerm)

		if sumIn.Equal(sumOut) != 1 {
			return coreerr.New(coreerr.RingCT, KindBalanceMismatch, "sum of inputs does not equal sum of outputs plus fee")
		}

		allProofs = append(allProofs, sig.Bulletproofs...)
	}

	return bulletproof.VerifyMultiple(rng, allProofs)
}
