// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transaction

import (
	"github.com/umbranet/core/address"
	"github.com/umbranet/core/curve"
	"github.com/umbranet/core/keccak"
)

// keyImage computes I = x * H_p(compress(X)) for an ephemeral keypair
// (x, X = x*G) — the double-spend tag spec.md §4.9 derives per input.
func keyImage(secret *curve.Scalar, public *curve.Point) *curve.Point {
	compressed := curve.PointCompress(public)
	digest := keccak.Sum256(compressed[:])
	hp := curve.HashToPoint(digest)
	return new(curve.Point).ScalarMult(secret, hp)
}

// generateKeyImage regenerates the ephemeral secret for source's real
// output and, if it indeed belongs to accountKeys, returns its key
// image alongside the ephemeral keypair used to sign for it.
func generateKeyImage(accountKeys address.AccountKeys, source Source) (*curve.Point, address.OutputKeyPair, bool) {
	realOutput := source.Outputs[source.RealOutputIndex]

	secret, ok := GetOutputSecretKey(
		accountKeys,
		source.SubaddressIndex,
		source.RealOutputTxIndex,
		realOutput.Destination,
		source.RealOutputTxPublicKeys,
	)
	if !ok {
		return nil, address.OutputKeyPair{}, false
	}

	ephemeral := address.OutputKeyPair{
		Secret: secret,
		Public: new(curve.Point).ScalarBaseMult(secret),
	}
	if ephemeral.Public.Equal(realOutput.Destination) != 1 {
		return nil, address.OutputKeyPair{}, false
	}

	return keyImage(secret, ephemeral.Public), ephemeral, true
}
