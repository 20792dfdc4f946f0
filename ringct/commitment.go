// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ringct

import (
	"io"

	"github.com/umbranet/core/curve"
)

// Commitment is a Pedersen commitment C = mask*G + amount*H (spec.md
// glossary: "hiding amount, binding to amount given mask").
type Commitment struct {
	Mask   *curve.Scalar
	Amount uint64
}

// CommitToValue draws a fresh random mask and commits to amount.
func CommitToValue(rng io.Reader, amount uint64) (Commitment, error) {
	mask, err := curve.ScalarRandom(rng)
	if err != nil {
		return Commitment{}, err
	}
	return Commitment{Mask: mask, Amount: amount}, nil
}

// Point returns the full (non-cofactor-scaled) commitment point.
func (c Commitment) Point() *curve.Point {
	mg := new(curve.Point).ScalarBaseMult(c.Mask)
	vh := new(curve.Point).ScalarMult(scalarFromUint64(c.Amount), curve.H())
	return new(curve.Point).Add(mg, vh)
}

// WireCompressed returns the 1/8-scaled compressed encoding stored on
// the wire (spec.md §6: "points ... pre-multiplied by 1/8 at the
// producer; consumers multiply by 8 upon receipt").
func (c Commitment) WireCompressed() [32]byte {
	return curve.PointCompress(curve.MulByInvEight(c.Point()))
}

// BalancePseudoMasks draws numInputs-1 random masks and derives the
// final one so that the pseudo-commitment masks sum to the same total
// as outputMasks, the precondition RingCT construction needs for
// Σ inputs == Σ outputs + fee·H to hold once amounts also balance.
func BalancePseudoMasks(rng io.Reader, outputMasks []*curve.Scalar, numInputs int) ([]*curve.Scalar, error) {
	if numInputs == 0 {
		return nil, nil
	}
	sumOut := zero()
	for _, m := range outputMasks {
		sumOut = new(curve.Scalar).Add(sumOut, m)
	}

	masks := make([]*curve.Scalar, numInputs)
	sumOthers := zero()
	for i := 0; i < numInputs-1; i++ {
		m, err := curve.ScalarRandom(rng)
		if err != nil {
			return nil, err
		}
		masks[i] = m
		sumOthers = new(curve.Scalar).Add(sumOthers, m)
	}
	masks[numInputs-1] = new(curve.Scalar).Subtract(sumOut, sumOthers)
	return masks, nil
}
