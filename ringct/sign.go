// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringct

import (
	"io"

	"github.com/umbranet/core/bulletproof"
	"github.com/umbranet/core/coreerr"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/mlsag"
)

// Input is one spent output: the row it occupies in its own mix ring,
// the owner's spend secret for that row, the blinding mask the real
// output was committed with, and the amount it commits to.
type Input struct {
	MixRing   []MixRingEntry
	RealIndex int
	SpendKey  *curve.Scalar
	RealMask  *curve.Scalar
	Amount    uint64
}

// Output is one new output being created: its amount and the DH
// derivation point used to ECDH-mask its commitment toward the
// receiver (spec.md §4.4's `Derivation`).
type Output struct {
	Amount     uint64
	Derivation *curve.Point
}

// Sign assembles a complete RingCT signature (spec.md §4.8): it
// balances pseudo-commitment masks against the Bulletproof's output
// masks, signs each input's 2-column MLSAG over (destination key,
// commitment difference), and binds everything under the pre-MLSAG
// hash.
func Sign(rng io.Reader, sigType Type, inputs []Input, outputs []Output, fee uint64, txPrefixHash [32]byte) (*Signature, error) {
	if len(inputs) == 0 {
		return nil, coreerr.New(coreerr.RingCT, KindShapeMismatch, "no inputs")
	}
	if len(outputs) == 0 {
		return nil, coreerr.New(coreerr.RingCT, KindShapeMismatch, "no outputs")
	}

	amounts := make([]uint64, len(outputs))
	for i, o := range outputs {
		amounts[i] = o.Amount
	}
	proof, outMasks, err := bulletproof.ProveMultiple(rng, amounts)
	if err != nil {
		return nil, err
	}

	outputCommitments := make([][32]byte, len(proof.V))
	for i, v := range proof.V {
		outputCommitments[i] = curve.PointCompress(v)
	}

	ecdh := make([]ECDHTuple, len(outputs))
	for i, o := range outputs {
		ecdh[i] = EncodeECDH(outMasks[i], o.Amount, o.Derivation)
	}

	pseudoMasks, err := BalancePseudoMasks(rng, outMasks, len(inputs))
	if err != nil {
		return nil, err
	}

	inputCommitments := make([][32]byte, len(inputs))
	mixRings := make([][]MixRingEntry, len(inputs))
	for i, in := range inputs {
		c := Commitment{Mask: pseudoMasks[i], Amount: in.Amount}
		inputCommitments[i] = curve.PointCompress(curve.MulByInvEight(c.Point()))
		mixRings[i] = in.MixRing
	}

	sig := &Signature{
		Base: Base{
			Type:              sigType,
			MixRing:           mixRings,
			OutputCommitments: outputCommitments,
			ECDHExchange:      ecdh,
			Fee:               fee,
		},
		Bulletproofs:     []*bulletproof.Proof{proof},
		InputCommitments: inputCommitments,
	}

	message := preMLSAGHash(sig, txPrefixHash)

	mlsagSigs := make([]*mlsag.Signature, len(inputs))
	for i, in := range inputs {
		pseudo, err := curve.PointDecompress(inputCommitments[i])
		if err != nil {
			return nil, coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid pseudo-commitment encoding")
		}
		pseudoFull := curve.MulByCofactor(pseudo)

		matrix := make(mlsag.Ring, len(in.MixRing))
		for r, entry := range in.MixRing {
			commitment, err := curve.PointDecompress(entry.Commitment)
			if err != nil {
				return nil, coreerr.New(coreerr.RingCT, KindShapeMismatch, "invalid mix-ring commitment encoding")
			}
			diff := new(curve.Point).Subtract(curve.MulByCofactor(commitment), pseudoFull)
			matrix[r] = [][32]byte{entry.Dest, curve.PointCompress(diff)}
		}

		secondKey := new(curve.Scalar).Subtract(in.RealMask, pseudoMasks[i])
		signerKeys := []*curve.Scalar{in.SpendKey, secondKey}

		mlsagSig, err := mlsag.Sign(rng, message, matrix, in.RealIndex, signerKeys)
		if err != nil {
			return nil, err
		}
		mlsagSigs[i] = mlsagSig
	}
	sig.MLSAG = mlsagSigs

	return sig, nil
}
